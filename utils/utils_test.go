package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"kacchi/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"secret1!", true},
		{"abc", false},
		{"abcdefg", false},
		{"abcdef1", false},
		{"abcdef!", false},
		{"p@ss1", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidatePassword(tt.password), tt.password)
	}
}

func TestBindingMessage(t *testing.T) {
	v := validator.New()
	RegisterCustomValidators(v)

	type payload struct {
		Email    string `validate:"required,email"`
		Category string `validate:"category"`
	}

	err := v.Struct(payload{Email: "nope", Category: "Yachts"})
	require.Error(t, err)

	msg := BindingMessage(err)
	assert.Contains(t, msg, "Please provide a valid email")
	assert.Contains(t, msg, "Invalid category. Choose from: Food, Transport")

	assert.Equal(t, "Invalid request body", BindingMessage(errors.New("EOF")))
}

func TestRespondError(t *testing.T) {
	Production = true
	defer func() { Production = false }()

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", model.NewValidationError("Title is required"), http.StatusBadRequest, "Title is required"},
		{"not found", fmt.Errorf("load: %w", model.ErrNotFound), http.StatusNotFound, "Note not found"},
		{"forbidden", model.ErrForbidden, http.StatusForbidden, "You can only access your own note"},
		{"credentials", model.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"throttled", model.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts. Please try again later"},
		{"storage", model.ErrStorageDisabled, http.StatusServiceUnavailable, "Media uploads are not configured"},
		{"internal", errors.New("socket closed"), http.StatusInternalServerError, "Something went wrong. Please try again"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondError(c, tt.err, "Note")

			assert.Equal(t, tt.status, w.Code)
			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
			assert.Empty(t, resp.Error)
		})
	}
}

func TestDeviceName(t *testing.T) {
	assert.Equal(t, "Unknown Browser on Unknown OS (Desktop)", DeviceName(""))

	chrome := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	assert.Equal(t, "Chrome on Windows (Desktop)", DeviceName(chrome))
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("KACCHI_INT", "42")
	t.Setenv("KACCHI_BAD", "forty")

	assert.Equal(t, 42, GetEnvAsInt("KACCHI_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("KACCHI_BAD", 1))
	assert.Equal(t, "fallback", GetEnvAsString("KACCHI_UNSET", "fallback"))
}
