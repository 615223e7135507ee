package Models

import (
	"gorm.io/gorm"
)

// Health coverage categories in the Chilean system. Only isapres reimburse
// after the fact; FONASA patients pay copay at point of sale.
const (
	HealthSystemFonasa = "FONASA"
	HealthSystemIsapre = "ISAPRE"
)

type Patient struct {
	gorm.Model
	UserID       uint                   `json:"user_id"`
	Name         string                 `json:"name"`
	Rut          string                 `json:"rut"`
	Email        string                 `json:"email"`
	Phone        string                 `json:"phone"`
	BirthDate    string                 `json:"birth_date"`
	HealthSystem string                 `json:"health_system" gorm:"default:'FONASA'"`
	IsapreCode   string                 `json:"isapre_code"`
	History      []Appointment          `json:"history"`
	Requests     []AppointmentRequest   `json:"requests"`
	Consents     []Consent              `json:"consents"`
	Claims       []ReimbursementRequest `json:"claims"`
}
