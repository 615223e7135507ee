package CronJobs

import (
	"fmt"
	"time"

	"MenteSana/Email"
	"MenteSana/Models"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppointmentReminder emails patients a few hours before their session.
type AppointmentReminder struct {
	DB     *gorm.DB
	Mailer *Email.Client
	Log    *zap.Logger
}

func NewAppointmentReminder(db *gorm.DB, mailer *Email.Client, log *zap.Logger) *AppointmentReminder {
	return &AppointmentReminder{
		DB:     db,
		Mailer: mailer,
		Log:    log,
	}
}

// StartReminderCron starts the periodic check for sessions entering the
// reminder window.
func (ar *AppointmentReminder) StartReminderCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(15).Minutes().Do(func() {
		if err := ar.SendAppointmentReminders(); err != nil {
			ar.Log.Error("appointment reminder run failed", zap.Error(err))
		}
	})

	scheduler.StartAsync()
	ar.Log.Info("appointment reminder cron started")

	return scheduler
}

func (ar *AppointmentReminder) SendAppointmentReminders() error {
	now := time.Now()

	// Window sized to the cron period so each session is caught once.
	startWindow := now.Add(2*time.Hour + 53*time.Minute)
	endWindow := now.Add(3*time.Hour + 7*time.Minute)

	var appointments []Models.Appointment

	result := ar.DB.
		Where("status = ? AND date_time BETWEEN ? AND ?",
			Models.StatusConfirmed, startWindow, endWindow).
		Find(&appointments)

	if result.Error != nil {
		return fmt.Errorf("failed to query upcoming appointments: %w", result.Error)
	}

	for _, appointment := range appointments {
		var patient Models.Patient
		if err := ar.DB.First(&patient, appointment.PatientID).Error; err != nil {
			ar.Log.Warn("patient lookup failed for reminder",
				zap.Uint("appointment_id", appointment.ID), zap.Error(err))
			continue
		}

		if patient.Email == "" {
			continue
		}

		hour := appointment.DateTime.Format("15:04")
		if err := ar.Mailer.SendAppointmentReminder(patient.Email, patient.Name, appointment.ProfessionalName, hour); err != nil {
			ar.Log.Warn("reminder send failed",
				zap.Uint("appointment_id", appointment.ID), zap.Error(err))
			continue
		}

		ar.Log.Info("reminder sent",
			zap.Uint("appointment_id", appointment.ID),
			zap.String("patient", patient.Name))
	}

	return nil
}
