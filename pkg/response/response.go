package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/fleetops/fleet-analytics/internal/errors"
)

// Response represents a standard API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Unprocessable sends a 422 unprocessable entity response
func Unprocessable(c *gin.Context, message string) {
	Error(c, http.StatusUnprocessableEntity, message)
}

// InternalError sends a 500 internal server error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// FromError maps an engine failure to its HTTP status: unknown
// analyses are 404, missing or malformed input is 422, anything
// untyped is a 500.
func FromError(c *gin.Context, err error) {
	switch {
	case apperrors.IsUnknownAnalysis(err):
		NotFound(c, err.Error())
	case apperrors.IsMissingRequiredInput(err), apperrors.IsMalformedColumn(err):
		Unprocessable(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}
