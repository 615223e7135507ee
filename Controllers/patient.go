package Controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"MenteSana/Models"

	"github.com/gin-gonic/gin"
)

func FetchMyProfile(c *gin.Context) {
	patient, err := currentPatient(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "data": patient})
}

func FetchPatients(c *gin.Context) {
	var patients []Models.Patient
	if err := Models.DB.Model(&Models.Patient{}).Order("id desc").Find(&patients).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "data": patients})
}

func UpdatePatient(c *gin.Context) {
	patient, err := currentPatient(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input struct {
		Name         string `json:"name"`
		Rut          string `json:"rut"`
		Phone        string `json:"phone"`
		BirthDate    string `json:"birth_date"`
		HealthSystem string `json:"health_system"`
		IsapreCode   string `json:"isapre_code"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.HealthSystem != "" &&
		input.HealthSystem != Models.HealthSystemFonasa &&
		input.HealthSystem != Models.HealthSystemIsapre {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown health system"})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Rut != "" {
		updates["rut"] = input.Rut
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.BirthDate != "" {
		updates["birth_date"] = input.BirthDate
	}
	if input.HealthSystem != "" {
		updates["health_system"] = input.HealthSystem
		if input.HealthSystem == Models.HealthSystemFonasa {
			updates["isapre_code"] = ""
		}
	}
	if input.IsapreCode != "" {
		updates["isapre_code"] = input.IsapreCode
	}

	if err := Models.DB.Model(&Models.Patient{}).Where("id = ?", patient.ID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile Updated"})
}

func FetchPatientFilesURLs(c *gin.Context) {
	type FileInfo struct {
		Name string  `json:"name"`
		Size float64 `json:"size"`
	}

	var FileUrls []FileInfo
	var input struct {
		ID uint `json:"id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := os.ReadDir(fmt.Sprintf("./PatientRecords/%v/", input.ID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for _, entry := range entries {
		fileInfo, err := entry.Info()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if fileInfo.Name() != ".DS_Store" {
			FileUrls = append(FileUrls, FileInfo{
				Name: entry.Name(),
				Size: float64(fileInfo.Size()),
			})
		}
	}

	c.JSON(http.StatusOK, FileUrls)
}

func UploadPatientRecord(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to parse form"})
		return
	}

	patientID := c.PostForm("id")
	if patientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Patient ID is required"})
		return
	}

	patientDir := fmt.Sprintf("./PatientRecords/%s/", patientID)
	if err := os.MkdirAll(patientDir, os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create patient directory"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to retrieve files from form data"})
		return
	}

	files := form.File["files"]
	for _, file := range files {
		filePath := fmt.Sprintf("%s%s", patientDir, file.Filename)
		out, err := os.Create(filePath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create the file"})
			return
		}
		defer out.Close()

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to open the file"})
			return
		}
		defer src.Close()

		if _, err := io.Copy(out, src); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save the file"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Files uploaded successfully"})
}

func DeletePatientRecord(c *gin.Context) {
	var input struct {
		ID       uint   `json:"id"`
		FileName string `json:"file_name"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	filePath := fmt.Sprintf("./PatientRecords/%v/%s", input.ID, input.FileName)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if err := os.Remove(filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}
