package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/esti34/capsule/internal/authflow"
	"github.com/esti34/capsule/internal/validation"
	"github.com/esti34/capsule/internal/view/dto/auth"
	"github.com/esti34/capsule/web/src/templates/partials"
)

// AuthTitle is the title key for each form.
func AuthTitle(m authflow.Mode) string {
	switch m {
	case authflow.ModeRegister:
		return "Register"
	case authflow.ModeForgotPassword:
		return "Forgot password"
	default:
		return "Login"
	}
}

// Auth renders the card holding the form for the current mode, plus the
// controller's error and success messages.
func Auth(d auth.FormData) cmp.Node {
	st := d.State
	var form cmp.Node
	switch st.Mode {
	case authflow.ModeRegister:
		form = registerForm(d)
	case authflow.ModeForgotPassword:
		form = forgotPasswordForm(d)
	default:
		form = loginForm(d)
	}

	return g.Div(
		g.Class("card auth-card shadow-sm"),
		g.Div(
			g.Class("card-body p-4"),
			g.H2(g.Class("card-title text-center mb-4"), cmp.Text(d.T.Sprintf(AuthTitle(st.Mode)))),
			cmp.If(st.Error != "", partials.Alert("danger", st.Error)),
			cmp.If(st.Success != "", partials.Alert("success", st.Success)),
			form,
		),
	)
}

func loginForm(d auth.FormData) cmp.Node {
	f := d.State.Fields
	return authForm("/auth/login",
		input(d, validation.FieldEmail, "email", "Email address", "Enter email address", f.Email),
		input(d, validation.FieldPassword, "password", "Password", "Enter password", ""),
		g.Div(
			g.Class("mb-3 d-flex justify-content-between align-items-center"),
			g.Div(
				g.Class("form-check"),
				g.Input(g.Type("checkbox"), g.Class("form-check-input"), g.ID("remember"), g.Name("remember"), g.Value("true"),
					cmp.If(f.Remember, g.Checked())),
				g.Label(g.For("remember"), g.Class("form-check-label"), cmp.Text(d.T.Sprintf("Remember me"))),
			),
			g.A(g.Href("/auth/forgot-password"), cmp.Text(d.T.Sprintf("Forgot your password?"))),
		),
		submit(d, "Log in"),
		switchLink(d, "Don't have an account?", "/auth/register", "Register now"),
	)
}

func registerForm(d auth.FormData) cmp.Node {
	f := d.State.Fields
	return authForm("/auth/register",
		input(d, validation.FieldFirstName, "text", "First name", "Enter first name", f.FirstName),
		input(d, validation.FieldLastName, "text", "Last name", "Enter last name", f.LastName),
		input(d, validation.FieldEmail, "email", "Email address", "Enter email address", f.Email),
		input(d, validation.FieldNationalID, "text", "National ID", "Enter national ID (9 digits)", f.NationalID),
		input(d, validation.FieldPassword, "password", "Password", "Enter password (at least 6 characters)", ""),
		input(d, validation.FieldConfirmPassword, "password", "Confirm password", "Enter password again", ""),
		submit(d, "Sign up"),
		switchLink(d, "Already have an account?", "/auth/login", "Log in now"),
	)
}

func forgotPasswordForm(d auth.FormData) cmp.Node {
	return authForm("/auth/forgot-password",
		input(d, validation.FieldEmail, "email", "Email address", "Enter your email address", d.State.Fields.Email),
		submit(d, "Send password reset instructions"),
		g.Div(g.Class("text-center mt-3"), g.A(g.Href("/auth/login"), cmp.Text(d.T.Sprintf("Back to login")))),
	)
}

// authForm disables its submit button while htmx has the request in flight.
func authForm(action string, children ...cmp.Node) cmp.Node {
	return g.Form(
		g.Method("post"),
		g.Action(action),
		cmp.Attr("novalidate"),
		cmp.Attr("hx-disabled-elt", "find button[type='submit']"),
		cmp.Group(children),
	)
}

func input(d auth.FormData, f validation.Field, typ, label, placeholder, value string) cmp.Node {
	id := "field-" + string(f)
	msg := d.FieldError(f)
	class := "form-control"
	if msg != "" {
		class += " is-invalid"
	}
	return g.Div(
		g.Class("mb-3"),
		g.Label(g.For(id), g.Class("form-label"), cmp.Text(d.T.Sprintf(label))),
		g.Input(
			g.Type(typ),
			g.ID(id),
			g.Name(string(f)),
			g.Class(class),
			g.Placeholder(d.T.Sprintf(placeholder)),
			cmp.If(value != "", g.Value(value)),
			cmp.If(msg != "", g.Aria("invalid", "true")),
		),
		cmp.If(msg != "", g.Div(g.Class("invalid-feedback"), cmp.Text(msg))),
	)
}

func submit(d auth.FormData, label string) cmp.Node {
	return g.Button(
		g.Type("submit"),
		g.Class("btn btn-primary w-100"),
		cmp.If(d.State.Loading, g.Disabled()),
		g.Span(g.Class("label"), cmp.Text(d.T.Sprintf(label))),
		g.Span(g.Class("htmx-indicator"), cmp.Text(d.T.Sprintf("Loading..."))),
	)
}

func switchLink(d auth.FormData, prompt, href, label string) cmp.Node {
	return g.P(
		g.Class("text-center mt-3 mb-0"),
		cmp.Text(d.T.Sprintf(prompt)+" "),
		g.A(g.Href(href), cmp.Text(d.T.Sprintf(label))),
	)
}
