package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	utils "github.com/eventhive/eventhive-go/utils"
)

// RequireRoles rejects requests whose identity's role is not in the
// allow-list. It assumes AuthMiddleware ran first; the missing-identity check
// is defensive.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		for _, role := range allowedRoles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		utils.Error(c, http.StatusForbidden, "You do not have permission")
	}
}
