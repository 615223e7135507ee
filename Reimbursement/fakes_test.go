package Reimbursement

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"MenteSana/Models"

	"go.uber.org/zap"
)

// fakeStore is the in-memory Store used across the package tests.
type fakeStore struct {
	patients  map[uint]Models.Patient
	sessions  map[uint]*Models.Appointment
	requests  map[uint]*Models.ReimbursementRequest
	nextReqID uint

	failFetch   bool
	failSaveURL bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		patients: make(map[uint]Models.Patient),
		sessions: make(map[uint]*Models.Appointment),
		requests: make(map[uint]*Models.ReimbursementRequest),
	}
}

func (f *fakeStore) SessionsByIDs(patientID uint, ids []uint) ([]Models.Appointment, error) {
	if f.failFetch {
		return nil, errors.New("connection refused")
	}
	var out []Models.Appointment
	for _, id := range ids {
		session, ok := f.sessions[id]
		if !ok || session.PatientID != patientID {
			continue
		}
		out = append(out, *session)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out, nil
}

func (f *fakeStore) EligibleSessions(patientID uint) ([]Models.Appointment, error) {
	if f.failFetch {
		return nil, errors.New("connection refused")
	}
	var out []Models.Appointment
	for _, session := range f.sessions {
		if session.PatientID != patientID {
			continue
		}
		if session.Status != Models.StatusCompleted || session.Invoice == nil {
			continue
		}
		if session.Payment == nil || session.Payment.Status != Models.PaymentCompleted {
			continue
		}
		if session.ReimbursementRequestID != nil {
			continue
		}
		out = append(out, *session)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out, nil
}

func (f *fakeStore) PatientByID(id uint) (*Models.Patient, error) {
	patient, ok := f.patients[id]
	if !ok {
		return nil, errors.New("patient not found")
	}
	return &patient, nil
}

func (f *fakeStore) CreateRequest(req *Models.ReimbursementRequest, sessionIDs []uint) error {
	for _, id := range sessionIDs {
		session, ok := f.sessions[id]
		if !ok || session.ReimbursementRequestID != nil {
			return ErrSessionsClaimed
		}
	}
	f.nextReqID++
	req.ID = f.nextReqID
	req.CreatedAt = time.Now()
	for _, id := range sessionIDs {
		requestID := req.ID
		f.sessions[id].ReimbursementRequestID = &requestID
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeStore) RequestByID(id uint) (*Models.ReimbursementRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	loaded := *req
	loaded.Sessions = nil
	for _, session := range f.sessions {
		if session.ReimbursementRequestID != nil && *session.ReimbursementRequestID == id {
			loaded.Sessions = append(loaded.Sessions, *session)
		}
	}
	sort.Slice(loaded.Sessions, func(i, j int) bool {
		return loaded.Sessions[i].DateTime.Before(loaded.Sessions[j].DateTime)
	})
	return &loaded, nil
}

func (f *fakeStore) SaveKitURL(requestID uint, url string) error {
	if f.failSaveURL {
		return errors.New("write failed")
	}
	req, ok := f.requests[requestID]
	if !ok {
		return ErrRequestNotFound
	}
	req.KitURL = &url
	return nil
}

func (f *fakeStore) UpdateStatus(requestID uint, status string, trackingNumber *string) error {
	req, ok := f.requests[requestID]
	if !ok {
		return ErrRequestNotFound
	}
	req.Status = status
	if trackingNumber != nil {
		req.TrackingNumber = trackingNumber
	}
	if status == Models.ClaimStatusSubmitted {
		now := time.Now()
		req.SubmittedAt = &now
	}
	return nil
}

func (f *fakeStore) RequestsByPatient(patientID uint) ([]Models.ReimbursementRequest, error) {
	var out []Models.ReimbursementRequest
	for _, req := range f.requests {
		if req.PatientID == patientID {
			out = append(out, *req)
		}
	}
	return out, nil
}

// fakeBuilder records rendered lines per page. When content exceeds the
// page it rolls over like the real renderer would, so a block that was not
// preceded by a space check ends up split and the tests can see it.
type fakeBuilder struct {
	pageHeight float64
	spaceLeft  float64
	pageLines  [][]string
	footers    []string
	failOutput bool
}

func newFakeBuilder() *fakeBuilder {
	return &fakeBuilder{
		pageHeight: 220,
		spaceLeft:  220,
		pageLines:  [][]string{{}},
	}
}

func (b *fakeBuilder) write(height float64, text string) {
	if b.spaceLeft < height {
		b.NewPage()
	}
	current := len(b.pageLines) - 1
	b.pageLines[current] = append(b.pageLines[current], text)
	b.spaceLeft -= height
}

func (b *fakeBuilder) NewPage() {
	b.pageLines = append(b.pageLines, []string{})
	b.spaceLeft = b.pageHeight
}

func (b *fakeBuilder) Title(text string) { b.write(12, text) }

func (b *fakeBuilder) Heading(text string) { b.write(9, text) }

func (b *fakeBuilder) Text(text string) { b.write(6, text) }

func (b *fakeBuilder) Bold(text string) { b.write(6, text) }

func (b *fakeBuilder) Spacer(height float64) { b.spaceLeft -= height }

func (b *fakeBuilder) Table(header []string, widths []float64, rows [][]string) {
	b.write(7, fmt.Sprintf("table:%v", header))
	for _, row := range rows {
		b.write(7, fmt.Sprintf("row:%v", row))
	}
	b.spaceLeft -= 2
}

func (b *fakeBuilder) SpaceLeft() float64 { return b.spaceLeft }

func (b *fakeBuilder) Finalize() ([]byte, int, error) {
	if b.failOutput {
		return nil, 0, errors.New("render error")
	}
	total := len(b.pageLines)
	b.footers = b.footers[:0]
	for i := 1; i <= total; i++ {
		b.footers = append(b.footers, fmt.Sprintf("Página %d de %d", i, total))
	}
	return []byte("%PDF-fake"), total, nil
}

// fakeStorage remembers the last stored artifact.
type fakeStorage struct {
	data     []byte
	filename string
	stores   int
	fail     bool
}

func (s *fakeStorage) Store(data []byte, patientID uint, filename string) (string, error) {
	if s.fail {
		return "", errors.New("disk full")
	}
	s.data = data
	s.filename = filename
	s.stores++
	return fmt.Sprintf("/kits/%d/%s", patientID, filename), nil
}

func newTestService(store Store, storage KitStorage, builder *fakeBuilder) *Service {
	return NewService(store, storage, func() DocumentBuilder { return builder }, DefaultPolicies(), zap.NewNop())
}

func completedSession(id uint, patientID uint, day time.Time, gross float64, professional string) *Models.Appointment {
	withholding := float64(int64(gross*Models.WithholdingRate + 0.5))
	session := &Models.Appointment{
		DateTime:         day,
		Duration:         50,
		Status:           Models.StatusCompleted,
		Modality:         Models.ModalityOnline,
		PatientID:        patientID,
		ProfessionalName: professional,
		ProfessionalRut:  "9.876.543-2",
		Price:            gross,
		Invoice: &Models.Invoice{
			AppointmentID:     id,
			Number:            fmt.Sprintf("B-%06d", id),
			IssuedAt:          day,
			GrossAmount:       gross,
			WithholdingAmount: withholding,
			NetAmount:         gross - withholding,
		},
		Payment: &Models.Payment{
			AppointmentID: id,
			Amount:        gross,
			Status:        Models.PaymentCompleted,
			PaidAt:        day,
		},
	}
	session.ID = id
	return session
}
