package auth

import (
	"github.com/esti34/capsule/internal/authflow"
	"github.com/esti34/capsule/internal/i18n"
	"github.com/esti34/capsule/internal/validation"
)

// FormData is the view model of the auth page. One page renders all three
// forms; State.Mode picks which.
type FormData struct {
	State authflow.State
	T     i18n.Translator
}

// FieldError returns the message for f, or "" when it passed validation.
func (d FormData) FieldError(f validation.Field) string {
	return d.State.ValidationErrors[f]
}
