// Package view renders the console pages from embedded html/template files.
// Every page is parsed together with the shared layout.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
)

//go:embed templates
var files embed.FS

// Page is the data every template receives.
type Page struct {
	Title   string
	Active  string
	Session *domain.Session
	// Alert is shown in a banner above the content, like a browser alert.
	Alert string
	Data  any
}

type NavItem struct {
	Key   string
	Path  string
	Label string
}

var (
	commonNav = []NavItem{
		{Key: "dashboard", Path: "/", Label: "Tableau de bord"},
		{Key: "exams", Path: "/examens", Label: "Examens"},
	}
	adminNav = []NavItem{
		{Key: "users", Path: "/utilisateurs", Label: "Utilisateurs"},
		{Key: "subjects", Path: "/matieres", Label: "Matières"},
		{Key: "rooms", Path: "/salles", Label: "Salles"},
		{Key: "streams", Path: "/filieres", Label: "Filières"},
	}
)

// Nav returns the sidebar entries the session's role may follow. A role
// outside the console roles only gets the dashboard.
func (p Page) Nav() []NavItem {
	if !domain.ValidRole(p.Session.Role()) {
		return commonNav[:1]
	}
	if !p.Session.HasRole(domain.RoleAdmin) {
		return commonNav
	}
	return append(append([]NavItem{}, commonNav...), adminNav...)
}

// Renderer implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

var funcs = template.FuncMap{
	"idstr": func(id int64) string {
		if id == 0 {
			return ""
		}
		return strconv.FormatInt(id, 10)
	},
	"roleLabel":  RoleLabel,
	"streamName": domain.StreamName,
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
}

// RoleLabel returns the French label of a role.
func RoleLabel(role string) string {
	switch role {
	case domain.RoleAdmin:
		return "Admin"
	case domain.RoleTeacher:
		return "Enseignant"
	case domain.RoleStudent:
		return "Étudiant"
	}
	return role
}

// New parses the layout and every page template.
func New() (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse layout: %w", err)
	}

	entries, err := fs.Glob(files, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: list pages: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(entries))}
	for _, file := range entries {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("view: clone layout: %w", err)
		}
		if _, err := t.ParseFS(files, file); err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", file, err)
		}
		r.pages[strings.TrimSuffix(path.Base(file), ".html")] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
