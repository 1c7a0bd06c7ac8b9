package authflow

import (
	"fmt"

	"github.com/esti34/capsule/internal/validation"
)

// Mode is the form currently on screen.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
	ModeForgotPassword
)

var modeNames = [...]string{
	ModeLogin:          "login",
	ModeRegister:       "register",
	ModeForgotPassword: "forgot-password",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode is the inverse of String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeLogin, fmt.Errorf("authflow: unknown mode %q", s)
}

// Fields are the values typed into the forms. One set is shared by all modes.
type Fields struct {
	Email           string `json:"email"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	NationalID      string `json:"nationalId"`
	Remember        bool   `json:"remember"`
}

// WithoutSecrets returns a copy with both password fields emptied.
func (f Fields) WithoutSecrets() Fields {
	f.Password = ""
	f.ConfirmPassword = ""
	return f
}

// State is a snapshot of the controller.
type State struct {
	Mode             Mode              `json:"mode"`
	Fields           Fields            `json:"fields"`
	Error            string            `json:"error,omitempty"`
	Success          string            `json:"success,omitempty"`
	Loading          bool              `json:"-"`
	ValidationErrors validation.Errors `json:"validationErrors,omitempty"`
}
