package Reimbursement

import (
	"fmt"

	"MenteSana/Models"

	"go.uber.org/zap"
)

// Date format shown to patients in violation messages.
const violationDateLayout = "02-01-2006"

const (
	violationBatchFetch          = "Error al validar las sesiones"
	violationAlreadyClaimedBatch = "Una o más sesiones ya están incluidas en otra solicitud de reembolso"
)

// ValidationResult is the all-or-nothing verdict over a requested batch.
// A single session may contribute more than one violation.
type ValidationResult struct {
	Valid      bool
	Violations []string
	Sessions   []Models.Appointment
}

// ValidateSessions checks every requested session against the four
// eligibility rules: completed, invoiced, paid, and not already claimed.
// A fetch failure collapses to one generic violation rather than
// per-session detail.
func (s *Service) ValidateSessions(patientID uint, sessionIDs []uint) ValidationResult {
	sessions, err := s.store.SessionsByIDs(patientID, sessionIDs)
	if err != nil {
		s.log.Error("session batch fetch failed",
			zap.Uint("patient_id", patientID), zap.Error(err))
		return ValidationResult{Valid: false, Violations: []string{violationBatchFetch}}
	}

	violations := []string{}

	if len(sessions) != len(sessionIDs) {
		violations = append(violations, violationBatchFetch)
	}

	for _, session := range sessions {
		date := session.DateTime.Format(violationDateLayout)

		if session.Status != Models.StatusCompleted {
			violations = append(violations, fmt.Sprintf("La sesión del %s no está marcada como realizada", date))
		}
		if session.Invoice == nil {
			violations = append(violations, fmt.Sprintf("La sesión del %s no tiene boleta emitida", date))
		}
		if session.Payment == nil || session.Payment.Status != Models.PaymentCompleted {
			violations = append(violations, fmt.Sprintf("La sesión del %s no tiene el pago confirmado", date))
		}
		if session.ReimbursementRequestID != nil {
			violations = append(violations, fmt.Sprintf("La sesión del %s ya está incluida en otra solicitud de reembolso", date))
		}
	}

	return ValidationResult{
		Valid:      len(violations) == 0,
		Violations: violations,
		Sessions:   sessions,
	}
}
