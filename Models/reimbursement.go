package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ClaimStatusDraft     = "DRAFT"
	ClaimStatusPending   = "PENDING"
	ClaimStatusSubmitted = "SUBMITTED"
)

// ReimbursementRequest batches a patient's eligible sessions for one
// reimbursement cycle against their isapre.
type ReimbursementRequest struct {
	gorm.Model
	PatientID              uint          `json:"patient_id"`
	Month                  int           `json:"month"`
	Year                   int           `json:"year"`
	HealthSystem           string        `json:"health_system"`
	IsapreCode             string        `json:"isapre_code"`
	TotalAmount            float64       `json:"total_amount"`
	EstimatedReimbursement float64       `json:"estimated_reimbursement"`
	HasMedicalReferral     bool          `json:"has_medical_referral"`
	Status                 string        `json:"status" gorm:"default:'PENDING'"`
	KitURL                 *string       `json:"kit_url" gorm:"default:null"`
	TrackingNumber         *string       `json:"tracking_number" gorm:"default:null"`
	SubmittedAt            *time.Time    `json:"submitted_at" gorm:"default:null"`
	Sessions               []Appointment `json:"sessions" gorm:"foreignKey:ReimbursementRequestID"`
}
