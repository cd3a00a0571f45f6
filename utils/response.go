package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/tau-lavender/graffity-report/apperrors"
)

// Response is the standard API envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SendSuccess sends a success response
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SendError sends an error response
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   message,
	})
}

// SendServiceError maps a service error to its HTTP status. 5xx
// details stay in the logs, the client gets a generic message.
func SendServiceError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if status >= 500 {
		LogError(err, "Internal error in "+c.FullPath())
		message = "internal server error"
	}
	SendError(c, status, message)
}

// ValidateRequestBody binds the JSON body into obj, rejecting
// malformed input with a 400 before the pipeline runs
func ValidateRequestBody(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		SendError(c, 400, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
