package Controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"MenteSana/Models"
	"MenteSana/Reimbursement"
	"MenteSana/Utils/Token"

	"github.com/gin-gonic/gin"
)

// FetchEligibleSessions lists the patient's sessions that can join a new
// reimbursement request, with count and total.
func FetchEligibleSessions(c *gin.Context) {
	patient, err := currentPatient(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := Reimbursements.EligibleSessions(patient.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener las sesiones"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": summary})
}

// CreateReimbursementRequest validates the selected sessions and opens the
// claim. Validation failures return the full violation list; nothing is
// created partially.
func CreateReimbursementRequest(c *gin.Context) {
	patient, err := currentPatient(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input Reimbursement.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := Reimbursements.CreateRequest(patient.ID, input)
	if err != nil {
		var validationErr *Reimbursement.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "violations": validationErr.Violations})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la solicitud de reembolso"})
		return
	}

	output := gin.H{"id": req.ID}
	if isapre, ok := Reimbursement.IsapreByCode(req.IsapreCode); ok {
		output["isapre_provider_name"] = isapre.Name
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": output})
}

// GenerateKit builds the PDF kit for a request and returns its location.
func GenerateKit(c *gin.Context) {
	requestID, err := requestIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	if !ownsRequest(c, requestID) {
		c.JSON(http.StatusNotFound, gin.H{"error": Reimbursement.ErrRequestNotFound.Error()})
		return
	}

	result, err := Reimbursements.GenerateKit(requestID)
	if err != nil {
		if errors.Is(err, Reimbursement.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": Reimbursement.ErrKitGeneration.Error()})
		return
	}

	go notifyKitReady(requestID, result)

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": gin.H{
		"kit_url":  result.URL,
		"filename": result.Filename,
	}})
}

// GetReimbursementRequest returns the client view of one request.
func GetReimbursementRequest(c *gin.Context) {
	requestID, err := requestIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	if !ownsRequest(c, requestID) {
		c.JSON(http.StatusNotFound, gin.H{"error": Reimbursement.ErrRequestNotFound.Error()})
		return
	}

	view, err := Reimbursements.FormatRequest(requestID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener la solicitud"})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": Reimbursement.ErrRequestNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": view})
}

func FetchMyReimbursements(c *gin.Context) {
	patient, err := currentPatient(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var requests []Models.ReimbursementRequest
	if err := Models.DB.Model(&Models.ReimbursementRequest{}).
		Preload("Sessions").
		Where("patient_id = ?", patient.ID).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": requests})
}

// UpdateReimbursementStatus marks a request submitted once the patient
// files the kit with their isapre.
func UpdateReimbursementStatus(c *gin.Context) {
	requestID, err := requestIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	if !ownsRequest(c, requestID) {
		c.JSON(http.StatusNotFound, gin.H{"error": Reimbursement.ErrRequestNotFound.Error()})
		return
	}

	var input struct {
		Status         string  `json:"status" binding:"required"`
		TrackingNumber *string `json:"tracking_number"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Status != Models.ClaimStatusSubmitted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported status transition"})
		return
	}

	if err := Reimbursements.MarkSubmitted(requestID, input.TrackingNumber); err != nil {
		if errors.Is(err, Reimbursement.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la solicitud"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request Submitted"})
}

// Static guide content, one entry per isapre plus the FONASA explainer.
var reimbursementGuides = map[string]string{
	"fonasa":     "FONASA no contempla reembolso retroactivo por consultas de salud mental. Las atenciones con profesionales en convenio se pagan con copago según tramo mediante bono.",
	"banmedica":  "Presenta tu kit en una sucursal de Banmédica o en su app. Adjunta las boletas y el certificado de asistencia incluidos en el kit. El reembolso demora entre 5 y 10 días hábiles.",
	"vidatres":   "Vida Tres recibe reembolsos por su sucursal virtual. Sube el kit completo en un solo archivo PDF y conserva el número de seguimiento.",
	"cruzblanca": "Cruz Blanca exige boleta y certificado de asistencia por cada sesión. El kit incluye ambos; preséntalo en sucursal o por la app móvil.",
	"consalud":   "Consalud permite reembolso en línea adjuntando el kit en formato PDF. Si tu plan incluye cobertura preferente de salud mental, el monto puede superar la estimación.",
	"colmena":    "Colmena procesa reembolsos desde su portal web. Adjunta el kit y verifica en tu plan el tope anual de sesiones de psicoterapia.",
}

// ReimbursementGuide serves the informational page for one provider.
func ReimbursementGuide(c *gin.Context) {
	slug := c.Param("provider")

	content, ok := reimbursementGuides[slug]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Guía no disponible para este proveedor"})
		return
	}

	output := gin.H{"provider": slug, "content": content}
	if isapre, ok := Reimbursement.IsapreByCode(slug); ok {
		output["name"] = isapre.Name
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": output})
}

// ServeKitFile streams a stored kit to the patient it belongs to. Admins
// may fetch any patient's kit for back-office support.
func ServeKitFile(c *gin.Context) {
	requested, err := strconv.ParseUint(c.Param("patient_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient id"})
		return
	}

	patient, err := currentPatient(c)
	isOwner := err == nil && patient.ID == uint(requested)
	if !isOwner && !isAdmin(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Archivo no encontrado"})
		return
	}

	path, ok := kitFilePath(kitRoot, uint(requested), c.Param("filename"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Archivo no encontrado"})
		return
	}

	c.File(path)
}

func isAdmin(c *gin.Context) bool {
	user_id, err := Token.ExtractTokenID(c)
	if err != nil {
		return false
	}
	user, err := Models.GetUserByID(user_id)
	return err == nil && user.Role >= Models.RoleAdmin
}

// kitFilePath resolves a kit under the storage root. Names that would
// escape the patient's directory are refused.
func kitFilePath(root string, patientID uint, filename string) (string, bool) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", false
	}
	return filepath.Join(root, fmt.Sprintf("%v", patientID), filename), true
}

func requestIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// ownsRequest hides other patients' requests behind a not-found, so ids
// cannot be probed.
func ownsRequest(c *gin.Context, requestID uint) bool {
	patient, err := currentPatient(c)
	if err != nil {
		return false
	}

	var count int64
	if err := Models.DB.Model(&Models.ReimbursementRequest{}).
		Where("id = ? AND patient_id = ?", requestID, patient.ID).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

func notifyKitReady(requestID uint, result *Reimbursement.KitResult) {
	view, err := Reimbursements.FormatRequest(requestID)
	if err != nil || view == nil || view.Patient.Email == "" {
		return
	}
	Mailer.SendKitReady(view.Patient.Email, view.Patient.Name, view.PeriodLabel, result.URL)
}
