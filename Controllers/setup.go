package Controllers

import (
	"errors"

	"MenteSana/Email"
	"MenteSana/Models"
	"MenteSana/Reimbursement"
	"MenteSana/Utils/Token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	Reimbursements *Reimbursement.Service
	Mailer         *Email.Client
	Log            *zap.Logger
	kitRoot        string
)

// Setup wires the controller package's collaborators. Called once from main.
func Setup(service *Reimbursement.Service, mailer *Email.Client, log *zap.Logger, kitStorageRoot string) {
	Reimbursements = service
	Mailer = mailer
	Log = log
	kitRoot = kitStorageRoot
}

// currentPatient resolves the authenticated user's patient profile.
func currentPatient(c *gin.Context) (Models.Patient, error) {
	user_id, err := Token.ExtractTokenID(c)
	if err != nil {
		return Models.Patient{}, err
	}

	var patient Models.Patient
	if err := Models.DB.Model(&Models.Patient{}).Where("user_id = ?", user_id).First(&patient).Error; err != nil {
		return Models.Patient{}, errors.New("Patient profile not found")
	}
	return patient, nil
}

// currentProfessional resolves the authenticated user's professional profile.
func currentProfessional(c *gin.Context) (Models.Professional, error) {
	user_id, err := Token.ExtractTokenID(c)
	if err != nil {
		return Models.Professional{}, err
	}

	var professional Models.Professional
	if err := Models.DB.Model(&Models.Professional{}).Where("user_id = ?", user_id).First(&professional).Error; err != nil {
		return Models.Professional{}, errors.New("Professional profile not found")
	}
	return professional, nil
}
