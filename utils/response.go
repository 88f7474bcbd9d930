package utils

import "github.com/gin-gonic/gin"

// APIResponse is the uniform envelope every endpoint returns.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// Respond writes a success envelope.
func Respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Error writes an error envelope and aborts the handler chain.
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, APIResponse{
		StatusCode: status,
		Data:       nil,
		Message:    message,
		Success:    false,
	})
}
