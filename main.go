package main

import (
	"log"
	"os"

	"MenteSana/Controllers"
	"MenteSana/CronJobs"
	"MenteSana/Email"
	"MenteSana/Models"
	"MenteSana/Reimbursement"
	"MenteSana/Routes"
	"MenteSana/Utils/Logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	Models.ConnectDataBase()

	logger, err := Logger.NewFromEnv()
	if err != nil {
		log.Fatal("logger init error:", err)
	}
	defer logger.Sync()

	mailer := Email.NewClient(logger)

	kitRoot := os.Getenv("KIT_STORAGE_ROOT")
	if kitRoot == "" {
		kitRoot = "./ReimbursementKits"
	}
	kitStorage := Reimbursement.NewLocalKitStorage(kitRoot, "/api/protected/ReimbursementKits")

	reimbursements := Reimbursement.NewService(
		Reimbursement.NewGormStore(Models.DB),
		kitStorage,
		Reimbursement.NewPDFBuilder,
		Reimbursement.LoadPolicies(),
		logger,
	)

	Controllers.Setup(reimbursements, mailer, logger, kitRoot)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://mentesana.cl", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	},
	))
	Routes.ConfigRoutes(router)

	reminderService := CronJobs.NewAppointmentReminder(Models.DB, mailer, logger)
	reminderService.StartReminderCron()

	router.Run(":3005")
}
