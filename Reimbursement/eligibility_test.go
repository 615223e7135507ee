package Reimbursement

import (
	"strings"
	"testing"
	"time"

	"MenteSana/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eligibilityFixture() (*fakeStore, *Service) {
	store := newFakeStore()
	store.patients[1] = Models.Patient{
		Name:         "Camila Rojas",
		Email:        "camila@example.cl",
		HealthSystem: Models.HealthSystemIsapre,
		IsapreCode:   "colmena",
	}
	service := newTestService(store, &fakeStorage{}, newFakeBuilder())
	return store, service
}

func TestValidateSessionsAllRulesPass(t *testing.T) {
	store, service := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	store.sessions[10] = completedSession(10, 1, day, 30000, "Dra. Paz Soto")
	store.sessions[11] = completedSession(11, 1, day.AddDate(0, 0, 7), 40000, "Dra. Paz Soto")

	result := service.ValidateSessions(1, []uint{10, 11})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Violations)
	require.Len(t, result.Sessions, 2)
	// ascending chronological order
	assert.True(t, result.Sessions[0].DateTime.Before(result.Sessions[1].DateTime))
}

func TestValidateSessionsNotCompleted(t *testing.T) {
	store, service := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	session := completedSession(10, 1, day, 30000, "Dra. Paz Soto")
	session.Status = Models.StatusConfirmed
	store.sessions[10] = session

	result := service.ValidateSessions(1, []uint{10})

	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 1)
	assert.Contains(t, result.Violations[0], "05-03-2026")
	assert.Contains(t, result.Violations[0], "no está marcada como realizada")
}

func TestValidateSessionsMissingInvoice(t *testing.T) {
	store, service := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	session := completedSession(10, 1, day, 30000, "Dra. Paz Soto")
	session.Invoice = nil
	store.sessions[10] = session

	result := service.ValidateSessions(1, []uint{10})

	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 1)
	assert.Contains(t, result.Violations[0], "no tiene boleta emitida")
}

func TestValidateSessionsUnpaid(t *testing.T) {
	store, service := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	session := completedSession(10, 1, day, 30000, "Dra. Paz Soto")
	session.Payment.Status = "PENDING"
	store.sessions[10] = session

	result := service.ValidateSessions(1, []uint{10})

	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 1)
	assert.Contains(t, result.Violations[0], "no tiene el pago confirmado")
}

func TestValidateSessionsAlreadyClaimed(t *testing.T) {
	store, service := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	session := completedSession(10, 1, day, 30000, "Dra. Paz Soto")
	otherRequest := uint(99)
	session.ReimbursementRequestID = &otherRequest
	store.sessions[10] = session

	result := service.ValidateSessions(1, []uint{10})

	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 1)
	assert.Contains(t, result.Violations[0], "ya está incluida en otra solicitud")
}

func TestValidateSessionsOneBadSessionFailsBatch(t *testing.T) {
	store, service := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	store.sessions[10] = completedSession(10, 1, day, 30000, "Dra. Paz Soto")
	store.sessions[11] = completedSession(11, 1, day.AddDate(0, 0, 7), 40000, "Dra. Paz Soto")
	bad := completedSession(12, 1, day.AddDate(0, 0, 14), 40000, "Dra. Paz Soto")
	bad.Status = Models.StatusNoShow
	store.sessions[12] = bad

	result := service.ValidateSessions(1, []uint{10, 11, 12})

	assert.False(t, result.Valid)
	found := false
	for _, violation := range result.Violations {
		if strings.Contains(violation, "19-03-2026") {
			found = true
		}
	}
	assert.True(t, found, "violation list should reference the failing session's date")
}

func TestValidateSessionsMultipleViolationsPerSession(t *testing.T) {
	store, service := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	session := completedSession(10, 1, day, 30000, "Dra. Paz Soto")
	session.Status = Models.StatusConfirmed
	session.Invoice = nil
	session.Payment = nil
	store.sessions[10] = session

	result := service.ValidateSessions(1, []uint{10})

	assert.False(t, result.Valid)
	assert.Len(t, result.Violations, 3)
}

func TestValidateSessionsFetchFailureCollapses(t *testing.T) {
	store, service := eligibilityFixture()
	store.failFetch = true

	result := service.ValidateSessions(1, []uint{10, 11, 12})

	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "Error al validar las sesiones", result.Violations[0])
}

func TestValidateSessionsUnresolvedIDs(t *testing.T) {
	store, service := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	store.sessions[10] = completedSession(10, 1, day, 30000, "Dra. Paz Soto")

	result := service.ValidateSessions(1, []uint{10, 999})

	assert.False(t, result.Valid)
	assert.Contains(t, result.Violations, "Error al validar las sesiones")
}
