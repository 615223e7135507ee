package Models

import (
	"time"

	"gorm.io/gorm"
)

// Consent records the informed-consent acceptance a patient signs before
// starting treatment with a professional.
type Consent struct {
	gorm.Model
	PatientID      uint      `json:"patient_id"`
	ProfessionalID uint      `json:"professional_id"`
	Version        string    `json:"version"`
	Accepted       bool      `json:"accepted"`
	SignedAt       time.Time `json:"signed_at"`
}

func HasConsent(patientID, professionalID uint) (bool, error) {
	var count int64
	err := DB.Model(&Consent{}).
		Where("patient_id = ? AND professional_id = ? AND accepted = ?", patientID, professionalID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
