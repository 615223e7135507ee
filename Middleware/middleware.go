package Middleware

import (
	"net/http"

	"MenteSana/Models"
	"MenteSana/Utils/Token"

	"github.com/gin-gonic/gin"
)

func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := Token.TokenValid(c)
		if err != nil {
			c.String(http.StatusUnauthorized, "Unauthorized Token Invalid")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole gates a route group to users at or above the given role.
func RequireRole(minimum int) gin.HandlerFunc {
	return func(c *gin.Context) {
		user_id, err := Token.ExtractTokenID(c)

		if err != nil {
			c.String(http.StatusUnauthorized, "Unauthorized Token Extraction")
			c.Abort()
			return
		}

		user, err := Models.GetUserByID(user_id)
		if err != nil {
			c.String(http.StatusUnauthorized, "Unauthorized User Extraction")
			c.Abort()
			return
		}

		if user.Role >= minimum {
			c.Set("userID", user.ID)
			c.Set("role", user.Role)
			c.Next()
		} else {
			c.String(http.StatusForbidden, "Unauthorized Not Enough Permission")
			c.Abort()
		}
	}
}
