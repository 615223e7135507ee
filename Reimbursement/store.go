package Reimbursement

import (
	"errors"

	"MenteSana/Models"

	"gorm.io/gorm"
)

// Store is the persistence surface the reimbursement subsystem depends on.
// Controllers wire the gorm implementation; tests use an in-memory fake.
type Store interface {
	// SessionsByIDs returns the patient's sessions for the given ids with
	// invoice and payment loaded.
	SessionsByIDs(patientID uint, ids []uint) ([]Models.Appointment, error)
	// EligibleSessions returns completed, invoiced, paid sessions not yet
	// attached to any request.
	EligibleSessions(patientID uint) ([]Models.Appointment, error)
	PatientByID(id uint) (*Models.Patient, error)
	// CreateRequest persists the request and claims its sessions in one
	// transaction. Returns ErrSessionsClaimed if any session was already
	// taken by a concurrent request.
	CreateRequest(req *Models.ReimbursementRequest, sessionIDs []uint) error
	// RequestByID loads the request with its sessions (and their invoices)
	// ordered by scheduled time ascending. Returns ErrRequestNotFound when
	// the id does not resolve.
	RequestByID(id uint) (*Models.ReimbursementRequest, error)
	SaveKitURL(requestID uint, url string) error
	UpdateStatus(requestID uint, status string, trackingNumber *string) error
	RequestsByPatient(patientID uint) ([]Models.ReimbursementRequest, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) SessionsByIDs(patientID uint, ids []uint) ([]Models.Appointment, error) {
	var sessions []Models.Appointment
	err := g.db.Model(&Models.Appointment{}).
		Preload("Invoice").
		Preload("Payment").
		Where("patient_id = ? AND id IN ?", patientID, ids).
		Order("date_time asc").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (g *GormStore) EligibleSessions(patientID uint) ([]Models.Appointment, error) {
	var sessions []Models.Appointment
	err := g.db.Model(&Models.Appointment{}).
		Preload("Invoice").
		Preload("Payment").
		Joins("JOIN invoices ON invoices.appointment_id = appointments.id").
		Joins("JOIN payments ON payments.appointment_id = appointments.id").
		Where("appointments.patient_id = ? AND appointments.status = ? AND payments.status = ? AND appointments.reimbursement_request_id IS NULL",
			patientID, Models.StatusCompleted, Models.PaymentCompleted).
		Order("appointments.date_time asc").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (g *GormStore) PatientByID(id uint) (*Models.Patient, error) {
	var patient Models.Patient
	if err := g.db.First(&patient, id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (g *GormStore) CreateRequest(req *Models.ReimbursementRequest, sessionIDs []uint) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}

		// Conditional bulk update is the claim: a session that gained a
		// request id since validation is simply not matched, and the
		// count mismatch rolls everything back.
		res := tx.Model(&Models.Appointment{}).
			Where("id IN ? AND reimbursement_request_id IS NULL", sessionIDs).
			Update("reimbursement_request_id", req.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(sessionIDs)) {
			return ErrSessionsClaimed
		}
		return nil
	})
}

func (g *GormStore) RequestByID(id uint) (*Models.ReimbursementRequest, error) {
	var req Models.ReimbursementRequest
	err := g.db.
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("appointments.date_time asc")
		}).
		Preload("Sessions.Invoice").
		First(&req, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (g *GormStore) SaveKitURL(requestID uint, url string) error {
	return g.db.Model(&Models.ReimbursementRequest{}).
		Where("id = ?", requestID).
		Update("kit_url", url).Error
}

func (g *GormStore) UpdateStatus(requestID uint, status string, trackingNumber *string) error {
	updates := map[string]interface{}{"status": status}
	if status == Models.ClaimStatusSubmitted {
		updates["submitted_at"] = g.db.NowFunc()
	}
	if trackingNumber != nil {
		updates["tracking_number"] = *trackingNumber
	}
	return g.db.Model(&Models.ReimbursementRequest{}).
		Where("id = ?", requestID).
		Updates(updates).Error
}

func (g *GormStore) RequestsByPatient(patientID uint) ([]Models.ReimbursementRequest, error) {
	var requests []Models.ReimbursementRequest
	err := g.db.Model(&Models.ReimbursementRequest{}).
		Preload("Sessions").
		Where("patient_id = ?", patientID).
		Order("created_at desc").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
