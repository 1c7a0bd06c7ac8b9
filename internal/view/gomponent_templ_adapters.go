package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// GomponentToTemplAdapter lets a gomponents page be passed where a templ
// layout expects a templ.Component.
type GomponentToTemplAdapter struct {
	Node gomponents.Node
}

// Render ignores ctx; gomponents nodes do not take one.
func (a *GomponentToTemplAdapter) Render(ctx context.Context, w io.Writer) error {
	return a.Node.Render(w)
}

// AdaptGomponentToTempl wraps node as a templ.Component.
func AdaptGomponentToTempl(node gomponents.Node) templ.Component {
	return &GomponentToTemplAdapter{Node: node}
}

// TemplToGomponentAdapter embeds a templ.Component in a gomponents tree. The
// request context is captured up front because gomponents renders without one.
type TemplToGomponentAdapter struct {
	Ctx       context.Context
	Component templ.Component
}

func (a *TemplToGomponentAdapter) Render(w io.Writer) error {
	return a.Component.Render(a.Ctx, w)
}

// AdaptTemplToGomponent wraps component as a gomponents.Node rendered with ctx.
func AdaptTemplToGomponent(ctx context.Context, component templ.Component) gomponents.Node {
	return &TemplToGomponentAdapter{Ctx: ctx, Component: component}
}
