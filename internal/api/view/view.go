// Package view renders the few server-side pages the API still serves:
// sign-in, verification results, and the password reset forms.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

const (
	Login          = "login"
	Home           = "home"
	VerifySuccess  = "verify_success"
	VerifyFailure  = "verify_failure"
	ForgotPassword = "forgot_password"
	ResetPassword  = "reset_password"
)

//go:embed templates/*.html
var files embed.FS

// Page is the data passed to every template.
type Page struct {
	Title   string
	Message string
	Error   string
	Token   string
	User    any
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{Login, Home, VerifySuccess, VerifyFailure, ForgotPassword, ResetPassword} {
		t, err := template.ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render satisfies echo.Renderer. Data may be a Page or a map with an
// "Error" entry, which is what middleware passes for the login page.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", normalize(data))
}

func normalize(data any) Page {
	switch d := data.(type) {
	case Page:
		return d
	case *Page:
		if d != nil {
			return *d
		}
	case map[string]any:
		var p Page
		p.Error, _ = d["Error"].(string)
		p.Message, _ = d["Message"].(string)
		p.Token, _ = d["Token"].(string)
		p.User = d["User"]
		return p
	}
	return Page{}
}
