package Controllers

import (
	"net/http"
	"time"

	"MenteSana/Models"

	"github.com/gin-gonic/gin"
)

// Current text version of the informed-consent document patients sign.
const consentVersion = "2026-01"

func SignConsent(c *gin.Context) {
	patient, err := currentPatient(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input struct {
		ProfessionalID uint `json:"professional_id" binding:"required"`
		Accepted       bool `json:"accepted"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !input.Accepted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El consentimiento debe ser aceptado para continuar"})
		return
	}

	exists, err := Models.HasConsent(patient.ID, input.ProfessionalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if exists {
		c.JSON(http.StatusOK, gin.H{"message": "Consent Already Signed"})
		return
	}

	consent := Models.Consent{
		PatientID:      patient.ID,
		ProfessionalID: input.ProfessionalID,
		Version:        consentVersion,
		Accepted:       true,
		SignedAt:       time.Now(),
	}
	if err := Models.DB.Create(&consent).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Record Consent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Consent Signed", "data": consent})
}

func FetchMyConsents(c *gin.Context) {
	patient, err := currentPatient(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var consents []Models.Consent
	if err := Models.DB.Model(&Models.Consent{}).
		Where("patient_id = ?", patient.ID).
		Find(&consents).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": consents})
}
