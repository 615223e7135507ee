package Reimbursement

import (
	"errors"
	"strings"
)

var (
	// ErrRequestNotFound signals a stale or foreign request id, not a
	// business-rule rejection.
	ErrRequestNotFound = errors.New("solicitud de reembolso no encontrada")

	// ErrKitGeneration is the only error the kit pipeline exposes for
	// rendering or storage faults. The cause goes to the log.
	ErrKitGeneration = errors.New("no se pudo generar el kit de reembolso")

	// ErrSessionsClaimed is returned by the store when the atomic claim
	// finds a session already attached to another request.
	ErrSessionsClaimed = errors.New("una o más sesiones ya pertenecen a otra solicitud")
)

// ValidationError carries the per-session rule violations of an eligibility
// check. The whole batch is rejected; no partial request is created.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "las sesiones seleccionadas no cumplen los requisitos de reembolso"
	}
	return strings.Join(e.Violations, "; ")
}
