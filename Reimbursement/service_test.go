package Reimbursement

import (
	"errors"
	"strings"
	"testing"
	"time"

	"MenteSana/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequestEndToEnd(t *testing.T) {
	store, service := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	store.sessions[10] = completedSession(10, 1, day, 30000, "Dra. Paz Soto")
	store.sessions[11] = completedSession(11, 1, day.AddDate(0, 0, 7), 40000, "Dra. Paz Soto")

	req, err := service.CreateRequest(1, CreateInput{SessionIDs: []uint{10, 11}, HasMedicalReferral: false})

	require.NoError(t, err)
	assert.Equal(t, 70000.0, req.TotalAmount)
	// colmena reimburses 60%
	assert.Equal(t, 42000.0, req.EstimatedReimbursement)
	assert.Equal(t, Models.ClaimStatusPending, req.Status)
	assert.False(t, req.HasMedicalReferral)
	assert.Equal(t, int(time.Now().Month()), req.Month)
	assert.Equal(t, time.Now().Year(), req.Year)

	// both sessions now carry the back-reference
	for _, id := range []uint{10, 11} {
		require.NotNil(t, store.sessions[id].ReimbursementRequestID)
		assert.Equal(t, req.ID, *store.sessions[id].ReimbursementRequestID)
	}
}

func TestCreateRequestRefusedOnViolation(t *testing.T) {
	store, service := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	store.sessions[10] = completedSession(10, 1, day, 30000, "Dra. Paz Soto")
	bad := completedSession(11, 1, day.AddDate(0, 0, 7), 40000, "Dra. Paz Soto")
	bad.Invoice = nil
	store.sessions[11] = bad

	req, err := service.CreateRequest(1, CreateInput{SessionIDs: []uint{10, 11}})

	require.Error(t, err)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.NotEmpty(t, validationErr.Violations)
	assert.Nil(t, req)
	// nothing was claimed
	assert.Nil(t, store.sessions[10].ReimbursementRequestID)
	assert.Empty(t, store.requests)
}

func TestCreateRequestNoDoubleClaim(t *testing.T) {
	store, service := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	store.sessions[10] = completedSession(10, 1, day, 30000, "Dra. Paz Soto")
	store.sessions[11] = completedSession(11, 1, day.AddDate(0, 0, 7), 40000, "Dra. Paz Soto")

	first, err := service.CreateRequest(1, CreateInput{SessionIDs: []uint{10}})
	require.NoError(t, err)
	require.NotNil(t, first)

	// second batch including the claimed session must fail validation
	_, err = service.CreateRequest(1, CreateInput{SessionIDs: []uint{10, 11}})
	require.Error(t, err)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))

	found := false
	for _, violation := range validationErr.Violations {
		if strings.Contains(violation, "ya está incluida en otra solicitud") {
			found = true
		}
	}
	assert.True(t, found, "expected an already-claimed violation, got %v", validationErr.Violations)

	// session 11 stays unclaimed
	assert.Nil(t, store.sessions[11].ReimbursementRequestID)
}

func TestCreateRequestRaceCollapsesToValidationError(t *testing.T) {
	store, _ := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	store.sessions[10] = completedSession(10, 1, day, 30000, "Dra. Paz Soto")

	// claim sneaks in after validation would have passed: simulate by
	// marking the session claimed through a store that reports it free
	// during fetch but refuses the claim.
	raceStore := &claimRacingStore{fakeStore: store}
	racingService := newTestService(raceStore, &fakeStorage{}, newFakeBuilder())

	_, err := racingService.CreateRequest(1, CreateInput{SessionIDs: []uint{10}})

	require.Error(t, err)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{violationAlreadyClaimedBatch}, validationErr.Violations)
}

// claimRacingStore passes validation but loses the atomic claim, as when a
// concurrent request takes the sessions between read and write.
type claimRacingStore struct {
	*fakeStore
}

func (s *claimRacingStore) CreateRequest(req *Models.ReimbursementRequest, sessionIDs []uint) error {
	return ErrSessionsClaimed
}

func TestEligibleSessionsSummary(t *testing.T) {
	store, service := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	store.sessions[10] = completedSession(10, 1, day, 30000, "Dra. Paz Soto")
	store.sessions[11] = completedSession(11, 1, day.AddDate(0, 0, 7), 40000, "Dra. Paz Soto")
	// not eligible: unpaid
	unpaid := completedSession(12, 1, day.AddDate(0, 0, 14), 35000, "Dra. Paz Soto")
	unpaid.Payment.Status = "PENDING"
	store.sessions[12] = unpaid
	// not eligible: claimed elsewhere
	claimed := completedSession(13, 1, day.AddDate(0, 0, 21), 35000, "Dra. Paz Soto")
	other := uint(5)
	claimed.ReimbursementRequestID = &other
	store.sessions[13] = claimed

	summary, err := service.EligibleSessions(1)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 70000.0, summary.TotalAmount)
}

func TestMarkSubmitted(t *testing.T) {
	store, service := eligibilityFixture()
	day := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	store.sessions[10] = completedSession(10, 1, day, 30000, "Dra. Paz Soto")

	req, err := service.CreateRequest(1, CreateInput{SessionIDs: []uint{10}})
	require.NoError(t, err)

	tracking := "ISA-2026-000123"
	require.NoError(t, service.MarkSubmitted(req.ID, &tracking))

	stored := store.requests[req.ID]
	assert.Equal(t, Models.ClaimStatusSubmitted, stored.Status)
	require.NotNil(t, stored.TrackingNumber)
	assert.Equal(t, tracking, *stored.TrackingNumber)
	assert.NotNil(t, stored.SubmittedAt)
}

func TestMarkSubmittedUnknownRequest(t *testing.T) {
	_, service := eligibilityFixture()

	err := service.MarkSubmitted(404, nil)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
