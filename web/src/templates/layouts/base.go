package layouts

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/esti34/capsule/internal/i18n"
	"github.com/esti34/capsule/internal/view"
	"github.com/esti34/capsule/web/src/templates/partials"
)

// Meta describes the page being wrapped.
type Meta struct {
	// Title is a message key; it is translated here.
	Title string
	Lang  i18n.Language
	T     i18n.Translator
	// Path is where the language switcher returns to.
	Path string
	// Wide drops the centered card layout, for the dashboard.
	Wide bool
}

// Base wraps content in the HTML document. lang and dir follow the request
// language, so Hebrew and Arabic render right to left.
func Base(meta Meta, flashes view.FlashData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mainClass := "container py-4 auth-container"
		if meta.Wide {
			mainClass = "container-fluid p-0"
		}
		return g.Doctype(
			g.HTML(
				g.Lang(meta.Lang.Code),
				cmp.Attr("dir", meta.Lang.Dir),
				g.Head(
					g.Meta(g.Charset("utf-8")),
					g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
					g.TitleEl(cmp.Text(CalculateTitle(meta.T, meta.Title))),
					g.Link(g.Rel("stylesheet"), g.Href("/static/css/app.css")),
					g.Script(g.Src("https://unpkg.com/htmx.org@2.0.4"), g.Defer()),
				),
				g.Body(
					hx.Boost("true"),
					header(meta),
					g.Main(
						g.Class(mainClass),
						partials.Flashes(flashes),
						view.AdaptTemplToGomponent(ctx, content),
					),
					footer(meta.T),
				),
			),
		).Render(w)
	})
}

func header(meta Meta) cmp.Node {
	return g.Header(
		g.Class("app-header d-flex justify-content-between align-items-center p-3"),
		g.A(g.Href("/"), g.Class("app-title"), cmp.Text(meta.T.Sprintf("Capsule"))),
		partials.LanguageSwitcher(meta.Lang, meta.T, meta.Path),
	)
}

func footer(t i18n.Translator) cmp.Node {
	return g.Footer(
		g.Class("app-footer text-center p-3"),
		cmp.Textf("© %d %s. %s", time.Now().Year(), t.Sprintf("Capsule"), t.Sprintf("All rights reserved")),
	)
}
