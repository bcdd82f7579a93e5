package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docchat-backend/models"
)

// ErrorResponse is the wire shape of every error the API returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondWithError sends an error response with the given status
func RespondWithError(c *gin.Context, statusCode int, message string, details any) {
	c.JSON(statusCode, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// RespondWithBadRequest sends a 400 Bad Request error
func RespondWithBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, message, nil)
}

// RespondWithAppError maps a pipeline error onto its HTTP status. Unknown
// error values become opaque 500s.
func RespondWithAppError(c *gin.Context, err error, fallbackMessage string) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		RespondWithError(c, appErr.HTTPStatus(), appErr.Message, appErr.Details)
		return
	}
	RespondWithError(c, http.StatusInternalServerError, fallbackMessage, err.Error())
}
