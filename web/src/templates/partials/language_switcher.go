package partials

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/esti34/capsule/internal/i18n"
)

// LanguageSwitcher posts the chosen language as soon as it changes. Without
// JavaScript the submit button does the same.
func LanguageSwitcher(current i18n.Language, t i18n.Translator, next string) cmp.Node {
	return g.Form(
		g.Class("language-switcher"),
		g.Method("post"),
		g.Action("/language"),
		g.Input(g.Type("hidden"), g.Name("next"), g.Value(next)),
		g.Label(g.For("language-select"), g.Class("visually-hidden"), cmp.Text(t.Sprintf("Language"))),
		g.Select(
			g.ID("language-select"),
			g.Name("lang"),
			g.Class("form-select form-select-sm"),
			hx.Post("/language"),
			hx.Trigger("change"),
			cmp.Map(i18n.Languages, func(l i18n.Language) cmp.Node {
				return g.Option(
					g.Value(l.Code),
					cmp.Attr("lang", l.Code),
					cmp.If(l.Code == current.Code, g.Selected()),
					cmp.Text(l.Name),
				)
			}),
		),
		g.NoScript(g.Button(g.Type("submit"), g.Class("btn btn-sm btn-outline-secondary"), cmp.Text(t.Sprintf("Language")))),
	)
}
