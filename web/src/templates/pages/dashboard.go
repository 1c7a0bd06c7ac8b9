package pages

import (
	"time"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/esti34/capsule/internal/view/dto/dashboard"
)

// Dashboard renders the signed-in shell: sidebar navigation and the selected
// page.
func Dashboard(d dashboard.Data) cmp.Node {
	return g.Div(
		g.Class("dashboard-container"),
		g.Div(
			g.Class("dashboard-header bg-primary text-white p-3"),
			g.H3(g.Class("m-0"), cmp.Text(d.T.Sprintf("Dashboard"))),
			identity(d),
		),
		g.Div(
			g.Class("row g-0 flex-nowrap"),
			g.Aside(
				g.Class("col-md-3 col-lg-2 bg-light sidebar p-3"),
				g.Aria("label", d.T.Sprintf("Menu")),
				sidebar(d),
			),
			g.Section(
				g.Class("col-md-9 col-lg-10 main-content p-3"),
				pageContent(d),
			),
		),
	)
}

func identity(d dashboard.Data) cmp.Node {
	if d.Claims == nil {
		return nil
	}
	return g.Div(
		g.Class("identity small"),
		cmp.If(d.Claims.Subject != "", g.Span(cmp.Text(d.T.Sprintf("Signed in as %s", d.Claims.Subject)))),
		cmp.If(!d.Claims.ExpiresAt.IsZero(), g.Span(
			g.Class("ms-3"),
			cmp.Text(d.T.Sprintf("Session expires at %s", d.Claims.ExpiresAt.Local().Format(time.DateTime))),
		)),
	)
}

func sidebar(d dashboard.Data) cmp.Node {
	return g.Nav(
		g.Class("nav flex-column"),
		navLink(d, dashboard.PageProfile, "Profile"),
		navLink(d, dashboard.PageCitizenInfo, "Citizen information"),
		g.Hr(),
		g.Form(
			g.Method("post"),
			g.Action("/auth/logout"),
			g.Button(g.Type("submit"), g.Class("nav-link text-danger btn btn-link"), cmp.Text(d.T.Sprintf("Log out"))),
		),
	)
}

func navLink(d dashboard.Data, page dashboard.Page, label string) cmp.Node {
	class := "nav-link sidebar-link"
	if d.Page == page {
		class += " active"
	}
	return g.A(
		g.Href("/dashboard?page="+string(page)),
		g.Class(class),
		cmp.If(d.Page == page, g.Aria("current", "page")),
		cmp.Text(d.T.Sprintf(label)),
	)
}

func pageContent(d dashboard.Data) cmp.Node {
	title, description := "Personal profile", "View and update your personal details."
	if d.Page == dashboard.PageCitizenInfo {
		title, description = "Citizen information management", "Manage the citizen information linked to your account."
	}
	return g.Div(
		g.H3(cmp.Text(d.T.Sprintf(title))),
		g.P(cmp.Text(d.T.Sprintf(description))),
	)
}
