package handlers

import (
	"github.com/go-playground/validator/v10"

	"github.com/esti34/capsule/internal/authflow"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// AuthFormRequest binds any of the three auth forms. Inputs a form does not
// have stay empty. Field validation is left to the auth flow controller so the
// messages can be shown next to each input.
type AuthFormRequest struct {
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
	FirstName       string `form:"firstName"`
	LastName        string `form:"lastName"`
	NationalID      string `form:"nationalId"`
	Remember        bool   `form:"remember"`
}

// Fields converts the request into controller input.
func (r AuthFormRequest) Fields() authflow.Fields {
	return authflow.Fields{
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		NationalID:      r.NationalID,
		Remember:        r.Remember,
	}
}

// LanguageRequest is posted by the language switcher.
type LanguageRequest struct {
	Lang string `form:"lang" validate:"required,oneof=he en ar"`
	Next string `form:"next"`
}
