package utils

import (
	"errors"
	"net/http"
	"strings"

	"kacchi/model"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Production hides raw error text from 500 responses.
var Production bool

type Response struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	Data         any      `json:"data,omitempty"`
	Count        *int     `json:"count,omitempty"`
	Total        *float64 `json:"total,omitempty"`
	TotalResults *int     `json:"totalResults,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Success responses
func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, &Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func List(c *gin.Context, message string, data any, count int) {
	c.JSON(http.StatusOK, &Response{
		Success: true,
		Message: message,
		Data:    data,
		Count:   &count,
	})
}

func ListWithTotal(c *gin.Context, message string, data any, count int, total float64) {
	c.JSON(http.StatusOK, &Response{
		Success: true,
		Message: message,
		Data:    data,
		Count:   &count,
		Total:   &total,
	})
}

func Results(c *gin.Context, message string, data any, totalResults int) {
	c.JSON(http.StatusOK, &Response{
		Success:      true,
		Message:      message,
		Data:         data,
		TotalResults: &totalResults,
	})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, &Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error responses
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, &Response{
		Success: false,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func TooManyRequests(c *gin.Context, message string) {
	Fail(c, http.StatusTooManyRequests, message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	Fail(c, http.StatusServiceUnavailable, message)
}

func InternalError(c *gin.Context, message string, err error) {
	resp := &Response{
		Success: false,
		Message: message,
	}
	if err != nil && !Production {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
}

// RespondError maps service errors onto the response envelope. resource
// names the entity in not-found messages, e.g. "Note".
func RespondError(c *gin.Context, err error, resource string) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		TrackError("validation")
		BadRequest(c, ve.Message)
	case errors.Is(err, model.ErrNotFound):
		NotFound(c, resource+" not found")
	case errors.Is(err, model.ErrForbidden):
		Forbidden(c, "You can only access your own "+strings.ToLower(resource))
	case errors.Is(err, model.ErrInvalidCredentials):
		Unauthorized(c, "Invalid email or password")
	case errors.Is(err, model.ErrTooManyAttempts):
		TooManyRequests(c, "Too many login attempts. Please try again later")
	case errors.Is(err, model.ErrStorageDisabled):
		ServiceUnavailable(c, "Media uploads are not configured")
	default:
		TrackError("internal")
		log.Error("request failed", "path", c.FullPath(), "err", err)
		InternalError(c, "Something went wrong. Please try again", err)
	}
}
