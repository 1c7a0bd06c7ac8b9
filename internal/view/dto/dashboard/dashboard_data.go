package dashboard

import (
	"github.com/esti34/capsule/internal/i18n"
	"github.com/esti34/capsule/internal/session"
)

// Page names the dashboard section on screen.
type Page string

const (
	PageProfile     Page = "profile"
	PageCitizenInfo Page = "citizenInfo"
)

// ParsePage falls back to the profile page for unknown values.
func ParsePage(s string) Page {
	if Page(s) == PageCitizenInfo {
		return PageCitizenInfo
	}
	return PageProfile
}

// Data is the view model of the dashboard.
type Data struct {
	Page Page
	// Claims is nil when the token could not be decoded.
	Claims *session.Claims
	T      i18n.Translator
}
