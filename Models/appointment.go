package Models

import (
	"time"

	"gorm.io/gorm"
)

// Wire format used by the booking frontend for slots and requests.
const DateTimeLayout = "2006/01/02 & 3:04 PM"

// Session lifecycle. Transitions are driven by booking, attendance and
// payment events; only COMPLETED sessions can ever be reimbursed.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusNoShow    = "NO_SHOW"
)

const (
	ModalityOnline   = "ONLINE"
	ModalityInPerson = "IN_PERSON"
)

type Appointment struct {
	gorm.Model
	DateTime         time.Time `json:"date_time"`
	Duration         int       `json:"duration" gorm:"default:50"` // minutes
	Status           string    `json:"status" gorm:"default:'CONFIRMED'"`
	Modality         string    `json:"modality" gorm:"default:'ONLINE'"`
	Reason           string    `json:"reason"`
	TimeBlockID      uint
	ProfessionalID   uint     `json:"professional_id"`
	ProfessionalName string   `json:"professional_name"`
	ProfessionalRut  string   `json:"professional_rut"`
	PatientID        uint     `json:"patient_id"`
	PatientName      string   `json:"patient_name"`
	Price            float64  `json:"price"`
	Invoice          *Invoice `json:"invoice"`
	Payment          *Payment `json:"payment"`

	// Back-reference set when the session joins a reimbursement claim.
	// A session belongs to at most one request at a time.
	ReimbursementRequestID *uint `json:"reimbursement_request_id" gorm:"default:null"`
}

type AppointmentRequest struct {
	gorm.Model
	DateTime         string `json:"date_time"`
	ProfessionalID   uint   `json:"professional_id"`
	ProfessionalName string `json:"professional_name"`
	PatientName      string `json:"patient_name"`
	PatientID        uint   `json:"patient_id"`
	PhoneNumber      string `json:"phone_number"`
	Modality         string `json:"modality"`
	Reason           string `json:"reason"`
	IsExisting       bool   `json:"is_existing" gorm:"-"`
}
