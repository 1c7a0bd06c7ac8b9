package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/esti34/capsule/internal/i18n"
	"github.com/go-playground/validator/v10"
)

// Field names a form input. The values match the keys the views use.
type Field string

const (
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldFirstName       Field = "firstName"
	FieldLastName        Field = "lastName"
	FieldNationalID      Field = "nationalId"
)

// Message keys. They double as the English text.
const (
	MsgEmailRequired      = "Please enter an email address"
	MsgEmailInvalid       = "The email address is not valid"
	MsgPasswordRequired   = "Please enter a password"
	MsgPasswordTooShort   = "Password must contain at least 6 characters"
	MsgConfirmRequired    = "Please confirm the password"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgFirstNameRequired  = "Please enter a first name"
	MsgLastNameRequired   = "Please enter a last name"
	MsgNationalIDRequired = "Please enter a national ID number"
	MsgNationalIDInvalid  = "National ID must contain 9 digits"
	msgFallback           = "The value is not valid"
)

// messages maps a failing rule on a field to the message shown for it.
var messages = map[Field]map[string]string{
	FieldEmail:           {"required": MsgEmailRequired, "email_shape": MsgEmailInvalid},
	FieldPassword:        {"required": MsgPasswordRequired, "password_len": MsgPasswordTooShort},
	FieldConfirmPassword: {"required": MsgConfirmRequired, "eqfield": MsgPasswordMismatch},
	FieldFirstName:       {"required": MsgFirstNameRequired},
	FieldLastName:        {"required": MsgLastNameRequired},
	FieldNationalID:      {"required": MsgNationalIDRequired, "national_id": MsgNationalIDInvalid},
}

// Errors maps a field to its message. A missing key means the field is valid.
type Errors map[Field]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool { return len(e) == 0 }

// Has reports whether the field failed.
func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// LoginForm is the input of the login form.
type LoginForm struct {
	Email    string `field:"email" validate:"required,email_shape"`
	Password string `field:"password" validate:"required"`
}

// RegisterForm is the input of the registration form.
type RegisterForm struct {
	FirstName       string `field:"firstName" validate:"required"`
	LastName        string `field:"lastName" validate:"required"`
	Email           string `field:"email" validate:"required,email_shape"`
	NationalID      string `field:"nationalId" validate:"required,national_id"`
	Password        string `field:"password" validate:"required,password_len"`
	ConfirmPassword string `field:"confirmPassword" validate:"required,eqfield=Password"`
}

// ForgotPasswordForm is the input of the password-reset request form.
type ForgotPasswordForm struct {
	Email string `field:"email" validate:"required,email_shape"`
}

// Validator runs the form rules. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("field")
	})
	mustRegister(v, "email_shape", ValidateEmail)
	mustRegister(v, "password_len", ValidatePassword)
	mustRegister(v, "national_id", ValidateNationalID)
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// Login validates the login form.
func (v *Validator) Login(t i18n.Translator, f LoginForm) (Errors, bool) {
	return v.check(t, f)
}

// Register validates the registration form.
func (v *Validator) Register(t i18n.Translator, f RegisterForm) (Errors, bool) {
	return v.check(t, f)
}

// ForgotPassword validates the password-reset request form.
func (v *Validator) ForgotPassword(t i18n.Translator, f ForgotPasswordForm) (Errors, bool) {
	return v.check(t, f)
}

// check always returns a fresh map; validator stops at the first failing rule
// per field, so "required" wins over a format rule.
func (v *Validator) check(t i18n.Translator, form any) (Errors, bool) {
	errs := Errors{}
	err := v.validate.Struct(form)
	if err == nil {
		return errs, true
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		panic(fmt.Sprintf("validation: %T is not a form struct: %v", form, err))
	}
	for _, fe := range fieldErrs {
		field := Field(fe.Field())
		key, ok := messages[field][fe.Tag()]
		if !ok {
			key = msgFallback
		}
		errs[field] = t.Sprintf(key)
	}
	return errs, false
}
