package Controllers

import (
	"fmt"
	"net/http"
	"time"

	"MenteSana/Models"
	"MenteSana/SSE"
	"MenteSana/Utils/Token"

	"github.com/gin-gonic/gin"
)

// RequestAppointment creates a pending booking request against one of the
// professional's open time blocks. Professionals see it in their dashboard
// and accept or reject it.
func RequestAppointment(c *gin.Context) {
	var input Models.AppointmentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := currentPatient(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	tx := Models.DB.Begin()

	var professional Models.Professional
	if err := tx.Model(&Models.Professional{}).Where("id = ?", input.ProfessionalID).Preload("Schedule.TimeBlocks").First(&professional).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user_id, _ := Token.ExtractTokenID(c)
	var user Models.User
	if user_id != 0 {
		user, _ = Models.GetUserByID(user_id)
	}

	if user.Role < Models.RoleAdmin {

		layoutWithLeadingZero := "2006/01/02 & 03:04 PM"
		layoutWithoutLeadingZero := Models.DateTimeLayout

		var parsedTime time.Time
		var err error

		parsedTime, err = time.Parse(layoutWithLeadingZero, input.DateTime)
		if err != nil {
			parsedTime, err = time.Parse(layoutWithoutLeadingZero, input.DateTime)
			if err != nil {
				tx.Rollback()
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
				return
			}
		}

		timeDifference := parsedTime.Sub(time.Now())

		twoWeeks := 14 * 24 * time.Hour

		if timeDifference > twoWeeks {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Time Block Not Allowed, Can't Book More Than 14 days ahead"})
			return
		}
	}

	// A taken block cannot be requested again
	available := false
	for _, timeblock := range professional.Schedule.TimeBlocks {
		if timeblock.DateTime == input.DateTime {
			if !timeblock.IsAvailable {
				tx.Rollback()
				c.JSON(http.StatusBadRequest, gin.H{"error": "Time Block already booked"})
				return
			}
			available = true
		}
	}
	if !available {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Time Block not offered by this professional"})
		return
	}

	hasConsent, err := Models.HasConsent(patient.ID, professional.ID)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check consent"})
		return
	}
	if !hasConsent {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Debe firmar el consentimiento informado antes de agendar"})
		return
	}

	input.ProfessionalName = professional.Name
	input.ProfessionalID = professional.ID
	input.PatientID = patient.ID
	input.PatientName = patient.Name
	input.PhoneNumber = patient.Phone
	if input.Modality == "" {
		input.Modality = Models.ModalityOnline
	}

	// One request per patient per day
	var existingAppointmentRequests []Models.AppointmentRequest
	var existingAppointments []Models.Appointment

	if err := tx.Model(&Models.AppointmentRequest{}).
		Where("patient_id = ? AND DATE(date_time) = ?", input.PatientID, input.DateTime).
		Find(&existingAppointmentRequests).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to check existing appointments"})
		return
	}

	if err := tx.Model(&Models.Appointment{}).
		Where("patient_id = ? AND DATE(date_time) = ?", input.PatientID, input.DateTime).
		Find(&existingAppointments).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to check existing appointments"})
		return
	}

	if len(existingAppointmentRequests) > 0 || len(existingAppointments) > 0 {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Patient can only book one appointment per day"})
		return
	}

	if err := tx.Create(&input).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Create Appointment Request"})
		return
	}

	tx.Commit()

	SSE.Broadcaster.Broadcast(SSE.EventBookingRequest)

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Request for %s submitted", input.DateTime)})
}

func FetchRequestedAppointments(c *gin.Context) {
	professional, err := currentProfessional(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var requests []Models.AppointmentRequest
	if err := Models.DB.Model(&Models.AppointmentRequest{}).
		Where("professional_id = ?", professional.ID).
		Order("id desc").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": requests})
}

func FetchAppointmentsByPatient(c *gin.Context) {
	patient, err := currentPatient(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var appointments []Models.Appointment
	if err := Models.DB.Model(&Models.Appointment{}).
		Preload("Invoice").
		Preload("Payment").
		Where("patient_id = ?", patient.ID).
		Order("date_time desc").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": appointments})
}
