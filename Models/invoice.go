package Models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SII retention on boletas de honorarios for the current tax year.
const WithholdingRate = 0.1525

const PaymentCompleted = "COMPLETED"

// Invoice is the boleta issued for a paid, completed session. It is created
// once at payment confirmation and never mutated afterwards.
type Invoice struct {
	gorm.Model
	AppointmentID     uint      `json:"appointment_id"`
	Number            string    `json:"number" gorm:"unique"`
	IssuedAt          time.Time `json:"issued_at"`
	GrossAmount       float64   `json:"gross_amount"`
	WithholdingAmount float64   `json:"withholding_amount"`
	NetAmount         float64   `json:"net_amount"`
}

type Payment struct {
	gorm.Model
	AppointmentID uint      `json:"appointment_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	PaidAt        time.Time `json:"paid_at"`
}

// IssueInvoice builds the boleta for a session, splitting gross into the
// SII withholding and the professional's net. Amounts are whole pesos.
func IssueInvoice(appointment Appointment, sequence uint, issuedAt time.Time) Invoice {
	gross := appointment.Price
	withholding := float64(int64(gross*WithholdingRate + 0.5))
	return Invoice{
		AppointmentID:     appointment.ID,
		Number:            fmt.Sprintf("B-%06d", sequence),
		IssuedAt:          issuedAt,
		GrossAmount:       gross,
		WithholdingAmount: withholding,
		NetAmount:         gross - withholding,
	}
}
