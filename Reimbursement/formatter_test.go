package Reimbursement

import (
	"testing"

	"MenteSana/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRequestProjectsFullGraph(t *testing.T) {
	store, req := kitFixture(2)
	service := newTestService(store, &fakeStorage{}, newFakeBuilder())

	view, err := service.FormatRequest(req.ID)

	require.NoError(t, err)
	require.NotNil(t, view)

	assert.Equal(t, req.ID, view.ID)
	assert.Equal(t, "Camila Rojas", view.Patient.Name)
	assert.Equal(t, "camila@example.cl", view.Patient.Email)
	assert.Equal(t, "12.345.678-5", view.Patient.Rut)
	assert.Equal(t, "Marzo 2026", view.PeriodLabel)
	assert.Equal(t, Models.HealthSystemIsapre, view.HealthSystem)

	require.NotNil(t, view.Isapre)
	assert.Equal(t, "colmena", view.Isapre.Code)
	assert.Equal(t, "Isapre Colmena Golden Cross", view.Isapre.Name)

	assert.Equal(t, 70000.0, view.TotalAmount)
	assert.Equal(t, 42000.0, view.EstimatedReimbursement)
	assert.Equal(t, Models.ClaimStatusPending, view.Status)
	assert.Nil(t, view.KitURL)
	assert.Nil(t, view.TrackingNumber)
	assert.Nil(t, view.SubmittedAt)

	require.Len(t, view.Sessions, 2)
	// the store hands sessions over oldest first and the view keeps that order
	assert.True(t, view.Sessions[0].DateTime.Before(view.Sessions[1].DateTime))

	first := view.Sessions[0]
	assert.Equal(t, "Dra. Paz Soto", first.ProfessionalName)
	assert.Equal(t, 50, first.Duration)
	assert.Equal(t, Models.ModalityOnline, first.Modality)
	require.NotNil(t, first.Invoice)
	assert.Equal(t, "B-000010", first.Invoice.Number)
	assert.Equal(t, 35000.0, first.Invoice.GrossAmount)
	assert.Equal(t, first.Invoice.GrossAmount-first.Invoice.WithholdingAmount, first.Invoice.NetAmount)
}

func TestFormatRequestNilWhenMissing(t *testing.T) {
	store, _ := kitFixture(1)
	service := newTestService(store, &fakeStorage{}, newFakeBuilder())

	view, err := service.FormatRequest(999)

	assert.NoError(t, err)
	assert.Nil(t, view)
}

func TestFormatRequestFonasaHasNoIsapre(t *testing.T) {
	store, req := kitFixture(1)
	req.HealthSystem = Models.HealthSystemFonasa
	req.IsapreCode = ""
	service := newTestService(store, &fakeStorage{}, newFakeBuilder())

	view, err := service.FormatRequest(req.ID)

	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, Models.HealthSystemFonasa, view.HealthSystem)
	assert.Nil(t, view.Isapre)
}

func TestFormatRequestCarriesKitURLAndTracking(t *testing.T) {
	store, req := kitFixture(1)
	url := "/kits/1/Kit-Reembolso-marzo-2026.pdf"
	tracking := "RB-2026-0042"
	req.KitURL = &url
	req.TrackingNumber = &tracking
	service := newTestService(store, &fakeStorage{}, newFakeBuilder())

	view, err := service.FormatRequest(req.ID)

	require.NoError(t, err)
	require.NotNil(t, view.KitURL)
	assert.Equal(t, url, *view.KitURL)
	require.NotNil(t, view.TrackingNumber)
	assert.Equal(t, tracking, *view.TrackingNumber)
}
