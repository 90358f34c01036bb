package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
)

type examForm struct {
	SubjectID, RoomID, TeacherID, StreamID, Date, Time string
}

type examsData struct {
	Exams    []domain.Exam
	Admin    bool
	FormOpen bool
	EditID   int64
	Form     examForm
	Options  *domain.ExamFormOptions
}

func render(t *testing.T, r *Renderer, name string, p Page) string {
	t.Helper()
	var buf bytes.Buffer
	if err := r.Render(&buf, name, p, nil); err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return buf.String()
}

func TestRenderer_AnonymousPages(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	out := render(t, r, "login", Page{Title: "Connexion", Alert: "Identifiants invalides.", Data: struct{ Email string }{"x@uni.ma"}})
	if !strings.Contains(out, "Identifiants invalides.") || !strings.Contains(out, `value="x@uni.ma"`) {
		t.Fatalf("login page misses alert or email:\n%s", out)
	}
	if strings.Contains(out, "Se déconnecter") {
		t.Fatal("anonymous pages have no sidebar")
	}

	out = render(t, r, "error", Page{Data: struct {
		Code    int
		Message string
	}{404, "Page introuvable."}})
	if !strings.Contains(out, "Erreur 404") {
		t.Fatalf("unexpected error page:\n%s", out)
	}
}

func TestRenderer_NavFollowsRole(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	dashboard := func(role string) string {
		sess := domain.NewSession("sid", "tok", domain.Identity{Role: role, DisplayName: "Nadia"})
		return render(t, r, "dashboard", Page{
			Active:  "dashboard",
			Session: sess,
			Data:    domain.DashboardSummary{Role: role, DisplayName: "Nadia", ExamCount: 4, UserCount: 12},
		})
	}

	admin := dashboard(domain.RoleAdmin)
	for _, want := range []string{`href="/utilisateurs"`, `href="/salles"`, "12 au total", "Se déconnecter"} {
		if !strings.Contains(admin, want) {
			t.Fatalf("admin dashboard misses %q", want)
		}
	}

	student := dashboard(domain.RoleStudent)
	if strings.Contains(student, `href="/utilisateurs"`) || !strings.Contains(student, "Vos examens") {
		t.Fatalf("unexpected student dashboard:\n%s", student)
	}
}

func TestRenderer_ExamsPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	sess := domain.NewSession("sid", "tok", domain.Identity{Role: domain.RoleAdmin})
	data := examsData{
		Exams: []domain.Exam{
			{ID: 7, SubjectID: 4, StreamID: 3, Date: "2025-06-02", Time: "09:00", Subject: &domain.Subject{ID: 4, Name: "Analyse"}},
			{ID: 8, SubjectID: 5, RoomID: 2, StreamID: 4},
		},
		Admin:    true,
		FormOpen: true,
		EditID:   7,
		Form:     examForm{StreamID: "4", SubjectID: "", Date: "2025-06-02"},
		Options: &domain.ExamFormOptions{
			Streams:  []domain.Stream{{ID: 3, Name: "SMI"}, {ID: 4, Name: "SMA"}},
			Subjects: []domain.Subject{{ID: 9, Name: "Probabilités", StreamID: 4}},
		},
	}

	out := render(t, r, "exams", Page{Active: "exams", Session: sess, Data: data})
	for _, want := range []string{
		`<option value="4" selected>SMA</option>`,
		"Probabilités",
		"Analyse",
		`href="/examens/7/convocation"`,
		`action="/examens/7"`,
		`<input type="hidden" name="edit" value="7">`,
		`formaction="/examens"`,
		`href="/examens/export.xlsx"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("exams page misses %q:\n%s", want, out)
		}
	}
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := r.Render(&bytes.Buffer{}, "missing", Page{}, nil); err == nil {
		t.Fatal("expected an error for an unknown page")
	}
}

func TestPage_Nav(t *testing.T) {
	if n := len((Page{}).Nav()); n != 1 {
		t.Fatalf("anonymous nav: expected the dashboard only, got %d entries", n)
	}
	guest := Page{Session: domain.NewSession("sid", "tok", domain.Identity{Role: "guest"})}
	if nav := guest.Nav(); len(nav) != 1 || nav[0].Path != "/" {
		t.Fatalf("unknown role nav: expected the dashboard only, got %+v", nav)
	}
	student := Page{Session: domain.NewSession("sid", "tok", domain.Identity{Role: domain.RoleStudent})}
	if n := len(student.Nav()); n != len(commonNav) {
		t.Fatalf("student nav: expected %d entries, got %d", len(commonNav), n)
	}
	admin := Page{Session: domain.NewSession("sid", "tok", domain.Identity{Role: domain.RoleAdmin})}
	if n := len(admin.Nav()); n != len(commonNav)+len(adminNav) {
		t.Fatalf("admin nav: expected %d entries, got %d", len(commonNav)+len(adminNav), n)
	}
}
