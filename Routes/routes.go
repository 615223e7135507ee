package Routes

import (
	"MenteSana/Controllers"
	"MenteSana/Middleware"
	"MenteSana/Models"
	"MenteSana/SSE"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func ConfigRoutes(router *gin.Engine) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/login", Controllers.Login)
		public.POST("/register", Controllers.Register)
		public.POST("/register/Professional", Controllers.RegisterProfessional)
		public.GET("/SearchProfessionals", Controllers.SearchProfessionals)
		public.POST("/GetProfessionalSchedule", Controllers.GetProfessionalSchedule)
		public.GET("/ReimbursementGuide/:provider", Controllers.ReimbursementGuide)
	}

	// Authorized routes
	authorized := router.Group("/api/protected")
	authorized.Use(Middleware.JwtAuthMiddleware())
	{
		// User-related routes
		authorized.GET("/user", Controllers.CurrentUser)
		authorized.POST("/logout", Controllers.Logout)

		// Patient-related routes
		authorized.GET("/FetchMyProfile", Controllers.FetchMyProfile)
		authorized.POST("/UpdatePatient", Controllers.UpdatePatient)
		authorized.POST("/FetchPatientFilesURLs", Controllers.FetchPatientFilesURLs)
		authorized.POST("/UploadPatientRecord", Controllers.UploadPatientRecord)
		authorized.POST("/DeletePatientRecord", Controllers.DeletePatientRecord)

		// Consent-related routes
		authorized.POST("/SignConsent", Controllers.SignConsent)
		authorized.GET("/FetchMyConsents", Controllers.FetchMyConsents)

		// Appointment-related routes
		authorized.POST("/RequestAppointment", Controllers.RequestAppointment)
		authorized.POST("/FetchAppointmentsByPatient", Controllers.FetchAppointmentsByPatient)

		// Reimbursement-related routes
		authorized.GET("/reimbursements/EligibleSessions", Controllers.FetchEligibleSessions)
		authorized.POST("/reimbursements", Controllers.CreateReimbursementRequest)
		authorized.GET("/reimbursements", Controllers.FetchMyReimbursements)
		authorized.GET("/reimbursements/:id", Controllers.GetReimbursementRequest)
		authorized.POST("/reimbursements/:id/GenerateKit", Controllers.GenerateKit)
		authorized.PATCH("/reimbursements/:id", Controllers.UpdateReimbursementStatus)

		// Kits hold medical data; downloads are ownership-checked
		authorized.GET("/ReimbursementKits/:patient_id/:filename", Controllers.ServeKitFile)
	}

	// Professional-only routes
	professional := router.Group("/api/professional")
	professional.Use(Middleware.JwtAuthMiddleware())
	professional.Use(Middleware.RequireRole(Models.RoleProfessional))
	{
		professional.GET("/FetchRequestedAppointments", Controllers.FetchRequestedAppointments)
		professional.POST("/AcceptAppointment", Controllers.AcceptAppointment)
		professional.POST("/RejectAppointment", Controllers.RejectAppointment)
		professional.POST("/CompleteAppointment", Controllers.CompleteAppointment)
		professional.POST("/CancelAppointment", Controllers.CancelAppointment)
		professional.POST("/MarkNoShow", Controllers.MarkNoShow)
		professional.POST("/AddProfessionalTimeBlocks", Controllers.AddProfessionalTimeBlocks)

		// SSE (Server-Sent Events) route
		professional.GET("/RequestSSE", SSE.RequestSSE)
	}

	// Admin-only routes
	admin := router.Group("/api/admin")
	admin.Use(Middleware.JwtAuthMiddleware())
	admin.Use(Middleware.RequireRole(Models.RoleAdmin))
	{
		admin.GET("/FetchPatients", Controllers.FetchPatients)
		admin.GET("/GetProfessionals", Controllers.GetProfessionals)
		admin.POST("/ConfirmPayment", Controllers.ConfirmPayment)
		admin.POST("/ExportReimbursementsTable", Controllers.ExportReimbursementsTable)
	}

	// Static file serving
	authorized.Static("/PatientRecords", "./PatientRecords")
}
