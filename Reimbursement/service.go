package Reimbursement

import (
	"errors"
	"time"

	"MenteSana/Models"

	"go.uber.org/zap"
)

// Service runs the reimbursement pipeline: eligibility validation, payout
// estimation, request creation, kit generation and read-side formatting.
type Service struct {
	store      Store
	storage    KitStorage
	newBuilder func() DocumentBuilder
	policies   PolicyTable
	log        *zap.Logger
	now        func() time.Time
}

func NewService(store Store, storage KitStorage, newBuilder func() DocumentBuilder, policies PolicyTable, log *zap.Logger) *Service {
	return &Service{
		store:      store,
		storage:    storage,
		newBuilder: newBuilder,
		policies:   policies,
		log:        log,
		now:        time.Now,
	}
}

// EligibleSummary is the aggregate returned alongside the eligible-session
// listing.
type EligibleSummary struct {
	Sessions    []Models.Appointment `json:"sessions"`
	Count       int                  `json:"count"`
	TotalAmount float64              `json:"total_amount"`
}

func (s *Service) EligibleSessions(patientID uint) (*EligibleSummary, error) {
	sessions, err := s.store.EligibleSessions(patientID)
	if err != nil {
		return nil, err
	}

	summary := &EligibleSummary{Sessions: sessions, Count: len(sessions)}
	for _, session := range sessions {
		if session.Invoice != nil {
			summary.TotalAmount += session.Invoice.GrossAmount
		}
	}
	return summary, nil
}

type CreateInput struct {
	SessionIDs         []uint `json:"session_ids" binding:"required"`
	HasMedicalReferral bool   `json:"has_medical_referral"`
}

// CreateRequest validates the batch, computes total and estimate, and
// persists the request while atomically claiming its sessions. The target
// period is the cycle in which the claim is filed.
func (s *Service) CreateRequest(patientID uint, input CreateInput) (*Models.ReimbursementRequest, error) {
	result := s.ValidateSessions(patientID, input.SessionIDs)
	if !result.Valid {
		return nil, &ValidationError{Violations: result.Violations}
	}

	patient, err := s.store.PatientByID(patientID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, session := range result.Sessions {
		total += session.Invoice.GrossAmount
	}

	now := s.now()
	req := &Models.ReimbursementRequest{
		PatientID:              patientID,
		Month:                  int(now.Month()),
		Year:                   now.Year(),
		HealthSystem:           patient.HealthSystem,
		IsapreCode:             patient.IsapreCode,
		TotalAmount:            total,
		EstimatedReimbursement: Estimate(total, patient.HealthSystem, patient.IsapreCode, s.policies),
		HasMedicalReferral:     input.HasMedicalReferral,
		Status:                 Models.ClaimStatusPending,
	}

	if err := s.store.CreateRequest(req, input.SessionIDs); err != nil {
		if errors.Is(err, ErrSessionsClaimed) {
			// A concurrent submission won the claim between validation
			// and creation.
			return nil, &ValidationError{Violations: []string{violationAlreadyClaimedBatch}}
		}
		s.log.Error("reimbursement request creation failed",
			zap.Uint("patient_id", patientID), zap.Error(err))
		return nil, err
	}

	s.log.Info("reimbursement request created",
		zap.Uint("request_id", req.ID),
		zap.Uint("patient_id", patientID),
		zap.Int("sessions", len(input.SessionIDs)),
		zap.Float64("total_amount", total))

	return req, nil
}

// MarkSubmitted transitions the request after the patient files the kit
// with their isapre. The tracking number comes from the insurer.
func (s *Service) MarkSubmitted(requestID uint, trackingNumber *string) error {
	if _, err := s.store.RequestByID(requestID); err != nil {
		return err
	}
	return s.store.UpdateStatus(requestID, Models.ClaimStatusSubmitted, trackingNumber)
}
