package Reimbursement

import "time"

// RequestView is the flat client-facing projection of a request's graph.
type RequestView struct {
	ID                     uint          `json:"id"`
	Patient                PatientView   `json:"patient"`
	PeriodLabel            string        `json:"period_label"`
	HealthSystem           string        `json:"health_system"`
	Isapre                 *IsapreView   `json:"isapre"`
	Sessions               []SessionView `json:"sessions"`
	TotalAmount            float64       `json:"total_amount"`
	EstimatedReimbursement float64       `json:"estimated_reimbursement"`
	HasMedicalReferral     bool          `json:"has_medical_referral"`
	Status                 string        `json:"status"`
	KitURL                 *string       `json:"kit_url"`
	TrackingNumber         *string       `json:"tracking_number"`
	SubmittedAt            *time.Time    `json:"submitted_at"`
	CreatedAt              time.Time     `json:"created_at"`
}

type PatientView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Rut   string `json:"rut,omitempty"`
}

type IsapreView struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type SessionView struct {
	ID               uint         `json:"id"`
	DateTime         time.Time    `json:"date_time"`
	ProfessionalName string       `json:"professional_name"`
	Duration         int          `json:"duration"`
	Modality         string       `json:"modality"`
	Invoice          *InvoiceView `json:"invoice"`
}

type InvoiceView struct {
	Number            string    `json:"number"`
	IssuedAt          time.Time `json:"issued_at"`
	GrossAmount       float64   `json:"gross_amount"`
	WithholdingAmount float64   `json:"withholding_amount"`
	NetAmount         float64   `json:"net_amount"`
}

// FormatRequest projects a request into its client view. Returns nil (not
// an error) when the request does not exist; "not found" handling belongs
// to the caller.
func (s *Service) FormatRequest(requestID uint) (*RequestView, error) {
	req, err := s.store.RequestByID(requestID)
	if err != nil {
		if err == ErrRequestNotFound {
			return nil, nil
		}
		return nil, err
	}

	patient, err := s.store.PatientByID(req.PatientID)
	if err != nil {
		return nil, err
	}

	view := &RequestView{
		ID: req.ID,
		Patient: PatientView{
			Name:  patient.Name,
			Email: patient.Email,
			Rut:   patient.Rut,
		},
		PeriodLabel:            PeriodLabel(req.Month, req.Year),
		HealthSystem:           req.HealthSystem,
		TotalAmount:            req.TotalAmount,
		EstimatedReimbursement: req.EstimatedReimbursement,
		HasMedicalReferral:     req.HasMedicalReferral,
		Status:                 req.Status,
		KitURL:                 req.KitURL,
		TrackingNumber:         req.TrackingNumber,
		SubmittedAt:            req.SubmittedAt,
		CreatedAt:              req.CreatedAt,
	}

	if isapre, ok := IsapreByCode(req.IsapreCode); ok {
		view.Isapre = &IsapreView{Code: isapre.Code, Name: isapre.Name}
	}

	view.Sessions = make([]SessionView, 0, len(req.Sessions))
	for _, session := range req.Sessions {
		sessionView := SessionView{
			ID:               session.ID,
			DateTime:         session.DateTime,
			ProfessionalName: session.ProfessionalName,
			Duration:         session.Duration,
			Modality:         session.Modality,
		}
		if session.Invoice != nil {
			sessionView.Invoice = &InvoiceView{
				Number:            session.Invoice.Number,
				IssuedAt:          session.Invoice.IssuedAt,
				GrossAmount:       session.Invoice.GrossAmount,
				WithholdingAmount: session.Invoice.WithholdingAmount,
				NetAmount:         session.Invoice.NetAmount,
			}
		}
		view.Sessions = append(view.Sessions, sessionView)
	}

	return view, nil
}
