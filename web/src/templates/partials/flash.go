package partials

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/esti34/capsule/internal/view"
)

// Flashes renders one alert per flash message.
func Flashes(f view.FlashData) cmp.Node {
	if f.Empty() {
		return nil
	}
	return g.Div(
		g.Class("flashes"),
		cmp.Map(f.Success, func(msg string) cmp.Node { return Alert("success", msg) }),
		cmp.Map(f.Error, func(msg string) cmp.Node { return Alert("danger", msg) }),
	)
}

// Alert is a single status message.
func Alert(kind, msg string) cmp.Node {
	return g.Div(g.Class("alert alert-"+kind), g.Role("alert"), cmp.Text(msg))
}
