package Controllers

import (
	"net/http"
	"strings"

	"MenteSana/Models"

	"github.com/gin-gonic/gin"
)

// SearchProfessionals is the public marketplace listing, filterable by
// specialty, modality and title.
func SearchProfessionals(c *gin.Context) {
	query := Models.DB.Model(&Models.Professional{})

	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("specialties LIKE ?", "%"+strings.ToLower(specialty)+"%")
	}
	if title := c.Query("title"); title != "" {
		query = query.Where("title = ?", title)
	}
	switch c.Query("modality") {
	case Models.ModalityOnline:
		query = query.Where("attends_online = ?", true)
	case Models.ModalityInPerson:
		query = query.Where("attends_in_person = ?", true)
	}

	var professionals []Models.Professional
	if err := query.Order("name asc").Find(&professionals).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": professionals})
}

type RegisterProfessionalInput struct {
	Email           string  `json:"email" binding:"required"`
	Password        string  `json:"password" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	Rut             string  `json:"rut"`
	Title           string  `json:"title" binding:"required"`
	Specialties     string  `json:"specialties"`
	RegistryNumber  string  `json:"registry_number"`
	SessionPrice    float64 `json:"session_price"`
	AttendsOnline   bool    `json:"attends_online"`
	AttendsInPerson bool    `json:"attends_in_person"`
	Bio             string  `json:"bio"`
}

func RegisterProfessional(c *gin.Context) {
	var input RegisterProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := Models.User{
		Email:    input.Email,
		Password: input.Password,
		Role:     Models.RoleProfessional,
	}

	savedUser, err := user.SaveUser()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Create User"})
		return
	}

	professional := Models.Professional{
		UserID:          savedUser.ID,
		Name:            input.Name,
		Rut:             input.Rut,
		Title:           input.Title,
		Specialties:     strings.ToLower(input.Specialties),
		RegistryNumber:  input.RegistryNumber,
		SessionPrice:    input.SessionPrice,
		AttendsOnline:   input.AttendsOnline,
		AttendsInPerson: input.AttendsInPerson,
		Bio:             input.Bio,
		Schedule:        Models.Schedule{},
	}

	if err := Models.DB.Create(&professional).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Create Professional"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Professional Registered"})
}

func GetProfessionalSchedule(c *gin.Context) {
	var input struct {
		ProfessionalID uint `json:"professional_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var professional Models.Professional
	if err := Models.DB.Model(&Models.Professional{}).
		Where("id = ?", input.ProfessionalID).
		Preload("Schedule.TimeBlocks").
		First(&professional).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": professional.Schedule})
}

func AddProfessionalTimeBlocks(c *gin.Context) {
	professional, err := currentProfessional(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input struct {
		DateTimes []string `json:"date_times" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var schedule Models.Schedule
	if err := Models.DB.Model(&Models.Schedule{}).
		Where("professional_id = ?", professional.ID).
		Preload("TimeBlocks").
		First(&schedule).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing := make(map[string]bool, len(schedule.TimeBlocks))
	for _, block := range schedule.TimeBlocks {
		existing[block.DateTime] = true
	}

	for _, dateTime := range input.DateTimes {
		if existing[dateTime] {
			continue
		}
		block := Models.TimeBlock{ScheduleID: schedule.ID, DateTime: dateTime, IsAvailable: true}
		if err := Models.DB.Create(&block).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Time Blocks Added"})
}

func GetProfessionals(c *gin.Context) {
	var professionals []Models.Professional
	if err := Models.DB.Model(&Models.Professional{}).
		Preload("Schedule.TimeBlocks").
		Find(&professionals).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "data": professionals})
}
