package Controllers

import (
	"net/http"
	"time"

	"MenteSana/Models"
	"MenteSana/SSE"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AcceptAppointment turns a pending booking request into a confirmed
// session and claims the professional's time block.
func AcceptAppointment(c *gin.Context) {
	var input struct {
		RequestID uint `json:"request_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := Models.DB.Begin()

	var request Models.AppointmentRequest
	if err := tx.Model(&Models.AppointmentRequest{}).Where("id = ?", input.RequestID).First(&request).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request not found"})
		return
	}

	var professional Models.Professional
	if err := tx.Model(&Models.Professional{}).Where("id = ?", request.ProfessionalID).Preload("Schedule.TimeBlocks").First(&professional).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var block Models.TimeBlock
	found := false
	for _, timeblock := range professional.Schedule.TimeBlocks {
		if timeblock.DateTime == request.DateTime {
			block = timeblock
			found = true
			break
		}
	}
	if !found || !block.IsAvailable {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Time Block no longer available"})
		return
	}

	dateTime, err := time.Parse(Models.DateTimeLayout, request.DateTime)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request date"})
		return
	}

	appointment := Models.Appointment{
		DateTime:         dateTime,
		Status:           Models.StatusConfirmed,
		Modality:         request.Modality,
		Reason:           request.Reason,
		TimeBlockID:      block.ID,
		ProfessionalID:   professional.ID,
		ProfessionalName: professional.Name,
		ProfessionalRut:  professional.Rut,
		PatientID:        request.PatientID,
		PatientName:      request.PatientName,
		Price:            professional.SessionPrice,
	}

	if err := tx.Create(&appointment).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Create Appointment"})
		return
	}

	if err := tx.Model(&Models.TimeBlock{}).Where("id = ?", block.ID).Update("is_available", false).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Claim Time Block"})
		return
	}

	if err := tx.Delete(&request).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Remove Request"})
		return
	}

	tx.Commit()

	SSE.Broadcaster.Broadcast(SSE.EventBookingUpdated)

	var patient Models.Patient
	if err := Models.DB.First(&patient, request.PatientID).Error; err == nil && patient.Email != "" {
		go Mailer.SendBookingConfirmation(patient.Email, patient.Name, professional.Name, request.DateTime)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment Accepted", "data": appointment})
}

func RejectAppointment(c *gin.Context) {
	var input struct {
		RequestID uint `json:"request_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Models.DB.Delete(&Models.AppointmentRequest{}, input.RequestID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	SSE.Broadcaster.Broadcast(SSE.EventBookingUpdated)

	c.JSON(http.StatusOK, gin.H{"message": "Appointment Rejected"})
}

// setAppointmentStatus applies a lifecycle transition scoped to the owning
// professional.
func setAppointmentStatus(c *gin.Context, status string) {
	professional, err := currentProfessional(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input struct {
		AppointmentID uint `json:"appointment_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := Models.DB.Model(&Models.Appointment{}).
		Where("id = ? AND professional_id = ?", input.AppointmentID, professional.ID).
		Update("status", status)
	if result.Error != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment " + status})
}

func CompleteAppointment(c *gin.Context) {
	setAppointmentStatus(c, Models.StatusCompleted)
}

func CancelAppointment(c *gin.Context) {
	setAppointmentStatus(c, Models.StatusCancelled)
}

func MarkNoShow(c *gin.Context) {
	setAppointmentStatus(c, Models.StatusNoShow)
}

// ConfirmPayment records the completed payment for a session and issues its
// boleta. Invoices are immutable: confirming twice is rejected.
func ConfirmPayment(c *gin.Context) {
	var input struct {
		AppointmentID uint   `json:"appointment_id" binding:"required"`
		Method        string `json:"method"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := Models.DB.Begin()

	var appointment Models.Appointment
	if err := tx.Model(&Models.Appointment{}).Preload("Invoice").Where("id = ?", input.AppointmentID).First(&appointment).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Appointment not found"})
		return
	}

	if appointment.Invoice != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment already confirmed"})
		return
	}

	now := time.Now()

	payment := Models.Payment{
		AppointmentID: appointment.ID,
		Amount:        appointment.Price,
		Method:        input.Method,
		Status:        Models.PaymentCompleted,
		TransactionID: uuid.NewString(),
		PaidAt:        now,
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Record Payment"})
		return
	}

	var sequence int64
	if err := tx.Model(&Models.Invoice{}).Count(&sequence).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Assign Invoice Number"})
		return
	}

	invoice := Models.IssueInvoice(appointment, uint(sequence)+1, now)
	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Issue Invoice"})
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Payment Confirmed", "data": gin.H{
		"payment": payment,
		"invoice": invoice,
	}})
}
