package Reimbursement

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"MenteSana/Models"

	"go.uber.org/zap"
)

var monthNames = []string{"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// PeriodLabel is the human label of a claim cycle, e.g. "Marzo 2026".
func PeriodLabel(month, year int) string {
	return fmt.Sprintf("%s %d", MonthName(month), year)
}

// KitFilename derives the artifact name from the claim period. Same month
// name as the period label, lower-cased; independent of display locale.
func KitFilename(month, year int) string {
	return fmt.Sprintf("Kit-Reembolso-%s-%d.pdf", strings.ToLower(MonthName(month)), year)
}

// Vertical room one itemized invoice block needs. A block is never split
// across a page boundary; when the current page cannot fit one, the
// assembler opens a new page first.
const invoiceBlockHeight = 66.0

const kitDateLayout = "02-01-2006"

type KitResult struct {
	URL      string `json:"kit_url"`
	Filename string `json:"filename"`
	Pages    int    `json:"pages"`
}

// GenerateKit assembles the reimbursement kit for a request, stores the
// artifact and records its URL on the request. Regeneration overwrites the
// previous artifact; it never duplicates the request or its sessions.
func (s *Service) GenerateKit(requestID uint) (*KitResult, error) {
	req, err := s.store.RequestByID(requestID)
	if err != nil {
		if err == ErrRequestNotFound {
			return nil, err
		}
		s.log.Error("kit request load failed", zap.Uint("request_id", requestID), zap.Error(err))
		return nil, ErrKitGeneration
	}

	patient, err := s.store.PatientByID(req.PatientID)
	if err != nil {
		s.log.Error("kit patient load failed", zap.Uint("request_id", requestID), zap.Error(err))
		return nil, ErrKitGeneration
	}

	builder := s.newBuilder()
	buildKit(builder, req, patient, s.policies, s.now())

	data, pages, err := builder.Finalize()
	if err != nil {
		s.log.Error("kit rendering failed", zap.Uint("request_id", requestID), zap.Error(err))
		return nil, ErrKitGeneration
	}

	filename := KitFilename(req.Month, req.Year)
	url, err := s.storage.Store(data, req.PatientID, filename)
	if err != nil {
		s.log.Error("kit storage failed", zap.Uint("request_id", requestID), zap.Error(err))
		return nil, ErrKitGeneration
	}

	if err := s.store.SaveKitURL(req.ID, url); err != nil {
		s.log.Error("kit url persist failed", zap.Uint("request_id", requestID), zap.Error(err))
		return nil, ErrKitGeneration
	}

	s.log.Info("reimbursement kit generated",
		zap.Uint("request_id", req.ID),
		zap.String("filename", filename),
		zap.Int("pages", pages))

	return &KitResult{URL: url, Filename: filename, Pages: pages}, nil
}

func buildKit(doc DocumentBuilder, req *Models.ReimbursementRequest, patient *Models.Patient, policies PolicyTable, generatedAt time.Time) {
	sessions := make([]Models.Appointment, len(req.Sessions))
	copy(sessions, req.Sessions)
	// Chronological order is a document contract, not a query convenience.
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].DateTime.Before(sessions[j].DateTime)
	})

	writeSummarySection(doc, req, patient, sessions, generatedAt)
	writeInvoiceSection(doc, sessions)
	writeCertificateSection(doc, req, patient, sessions)
}

func writeSummarySection(doc DocumentBuilder, req *Models.ReimbursementRequest, patient *Models.Patient, sessions []Models.Appointment, generatedAt time.Time) {
	doc.Title("Kit de Reembolso")

	coverage := "FONASA"
	if isapre, ok := IsapreByCode(req.IsapreCode); ok {
		coverage = isapre.Name
	}

	doc.Bold(fmt.Sprintf("Paciente: %s", patient.Name))
	if patient.Rut != "" {
		doc.Text(fmt.Sprintf("RUT: %s", patient.Rut))
	}
	doc.Text(fmt.Sprintf("Previsión: %s", coverage))
	doc.Text(fmt.Sprintf("Período: %s", PeriodLabel(req.Month, req.Year)))
	// Regeneration stamps the new assembly date, not the request's age.
	doc.Text(fmt.Sprintf("Fecha de emisión: %s", generatedAt.Format(kitDateLayout)))
	doc.Spacer(6)

	rows := make([][]string, 0, len(sessions))
	for _, session := range sessions {
		number := "-"
		amount := "-"
		if session.Invoice != nil {
			number = session.Invoice.Number
			amount = formatPesos(session.Invoice.GrossAmount)
		}
		rows = append(rows, []string{
			session.DateTime.Format(kitDateLayout),
			session.ProfessionalName,
			number,
			fmt.Sprintf("%d min", session.Duration),
			amount,
		})
	}
	doc.Table(
		[]string{"Fecha", "Profesional", "N° Boleta", "Duración", "Monto"},
		[]float64{28, 62, 30, 24, 32},
		rows,
	)

	doc.Bold(fmt.Sprintf("Total de sesiones: %d", len(sessions)))
	doc.Bold(fmt.Sprintf("Monto total: %s", formatPesos(req.TotalAmount)))
	doc.Bold(fmt.Sprintf("Reembolso estimado: %s", formatPesos(req.EstimatedReimbursement)))
	doc.Spacer(2)
	doc.Text("El monto de reembolso es una estimación y puede variar según el plan de salud contratado.")
}

func writeInvoiceSection(doc DocumentBuilder, sessions []Models.Appointment) {
	doc.NewPage()
	doc.Heading("Detalle de Boletas de Honorarios")
	doc.Spacer(2)

	for _, session := range sessions {
		// Only invoiced sessions render a block. The eligibility gate
		// should make this unconditional, but a missing invoice must not
		// break assembly.
		if session.Invoice == nil {
			continue
		}

		if doc.SpaceLeft() < invoiceBlockHeight {
			doc.NewPage()
		}

		inv := session.Invoice
		doc.Bold(fmt.Sprintf("Boleta N° %s", inv.Number))
		doc.Text(fmt.Sprintf("Fecha de emisión: %s", inv.IssuedAt.Format(kitDateLayout)))
		doc.Text(fmt.Sprintf("Profesional: %s", session.ProfessionalName))
		doc.Text(fmt.Sprintf("RUT profesional: %s", session.ProfessionalRut))
		doc.Text("Prestación: Psicoterapia Individual")
		doc.Text(fmt.Sprintf("Duración: %d minutos", session.Duration))
		doc.Text(fmt.Sprintf("Monto bruto: %s", formatPesos(inv.GrossAmount)))
		doc.Text(fmt.Sprintf("Retención SII: %s", formatPesos(inv.WithholdingAmount)))
		doc.Text(fmt.Sprintf("Monto líquido: %s", formatPesos(inv.NetAmount)))
		doc.Spacer(8)
	}
}

func writeCertificateSection(doc DocumentBuilder, req *Models.ReimbursementRequest, patient *Models.Patient, sessions []Models.Appointment) {
	doc.NewPage()
	doc.Heading("Certificado de Asistencia")
	doc.Spacer(2)

	doc.Text(fmt.Sprintf(
		"Se certifica que %s asistió a las sesiones de psicoterapia que se detallan a continuación, correspondientes al período %s.",
		patient.Name, PeriodLabel(req.Month, req.Year)))
	doc.Spacer(4)

	for i, session := range sessions {
		doc.Text(fmt.Sprintf("%d. %s, %s (%d minutos)",
			i+1,
			session.DateTime.Format(kitDateLayout),
			session.ProfessionalName,
			session.Duration))
	}

	doc.Spacer(4)
	doc.Bold(fmt.Sprintf("Total de sesiones certificadas: %d", len(sessions)))
	doc.Spacer(6)
	doc.Text("Documento generado electrónicamente por la plataforma MenteSana. No requiere firma manuscrita.")
}

func formatPesos(amount float64) string {
	value := int64(amount)
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	digits := fmt.Sprintf("%d", value)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	return sign + "$" + strings.Join(parts, ".")
}
