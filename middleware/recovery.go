package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	utils "github.com/eventhive/eventhive-go/utils"
)

// Recovery converts any panic into the uniform 500 error envelope so
// unanticipated failures never leak stack details to clients.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Msg("recovered from panic")
				utils.Error(c, http.StatusInternalServerError, "Something went wrong")
			}
		}()
		c.Next()
	}
}
