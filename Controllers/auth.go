package Controllers

import (
	"net/http"
	"time"

	"MenteSana/Models"
	"MenteSana/Utils/Token"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

func CurrentUser(c *gin.Context) {
	user_id, err := Token.ExtractTokenID(c)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := Models.GetUserByID(user_id)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var output struct {
		ID    uint   `json:"ID"`
		Email string `json:"email"`
		Role  int    `json:"role"`
	}
	output.ID = user_id
	output.Email = user.Email
	output.Role = user.Role
	c.JSON(http.StatusOK, gin.H{"message": "success", "data": output})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, token, err := Models.LoginCheck(input.Email, input.Password)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email or password is incorrect."})
		return
	}

	user, _ := Models.GetUserByID(uid)

	if user.IsFrozen {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User Frozen"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login Successful", "jwt": token, "role": user.Role})
}

func Logout(c *gin.Context) {
	token, err := Token.ExtractJWT(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	claims := jwt.MapClaims{}
	claims["authorized"] = false
	claims["exp"] = time.Now()
	token2 := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Claims = token2.Claims
	c.JSON(http.StatusOK, gin.H{"message": "Logged Out"})
}

type RegisterInput struct {
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Rut          string `json:"rut"`
	Phone        string `json:"phone"`
	HealthSystem string `json:"health_system"`
	IsapreCode   string `json:"isapre_code"`
}

// Register creates the account and its patient profile in one step.
// Professionals are onboarded separately through RegisterProfessional.
func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := Models.User{
		Email:    input.Email,
		Password: input.Password,
		Role:     Models.RolePatient,
	}

	savedUser, err := user.SaveUser()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Create User"})
		return
	}

	healthSystem := input.HealthSystem
	if healthSystem == "" {
		healthSystem = Models.HealthSystemFonasa
	}

	patient := Models.Patient{
		UserID:       savedUser.ID,
		Name:         input.Name,
		Rut:          input.Rut,
		Email:        savedUser.Email,
		Phone:        input.Phone,
		HealthSystem: healthSystem,
		IsapreCode:   input.IsapreCode,
	}

	if err := Models.DB.Create(&patient).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Create Patient Profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration Successful"})
}
