package utils

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"kacchi/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("password", ValidatePasswordRule)
	v.RegisterValidation("roomtype", func(fl validator.FieldLevel) bool {
		return model.RoomType(fl.Field().String()).Valid()
	})
	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.ExpenseCategory(fl.Field().String()).Valid()
	})
	v.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
		return model.Mood(fl.Field().String()).Valid()
	})
}

// InitValidator registers the custom rules on gin's binding engine.
func InitValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustomValidators(v)
	}
}

func ValidatePasswordRule(fl validator.FieldLevel) bool {
	return ValidatePassword(fl.Field().String())
}

func ValidatePassword(password string) bool {
	// Password must:
	// - Be at least 6 characters long
	// - Contain at least one number
	// - Contain at least one special character

	hasNumber := false
	hasSpecial := false

	if len(password) < 6 {
		return false
	}

	for _, char := range password {
		switch {
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasNumber && hasSpecial
}

// BindingMessage turns a gin binding error into a client-facing message.
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Please provide a valid email"
	case "password":
		return "Password must be at least 6 characters and contain a number and a special character"
	case "roomtype":
		return fmt.Sprintf("Invalid room type. Choose from: %s", joinValues(model.RoomTypes))
	case "category":
		return fmt.Sprintf("Invalid category. Choose from: %s", joinValues(model.ExpenseCategories))
	case "mood":
		return fmt.Sprintf("Invalid mood. Choose from: %s", joinValues(model.Moods))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
