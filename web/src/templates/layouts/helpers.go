package layouts

import "github.com/esti34/capsule/internal/i18n"

// CalculateTitle builds the document title from the localized page title.
func CalculateTitle(t i18n.Translator, title string) string {
	app := t.Sprintf("Capsule")
	if title != "" {
		return t.Sprintf(title) + " - " + app
	}
	return app
}
