package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/view"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

// captureRenderer keeps the last rendered page instead of executing
// templates.
type captureRenderer struct {
	name string
	page view.Page
}

func (r *captureRenderer) Render(_ io.Writer, name string, data any, _ echo.Context) error {
	r.name = name
	r.page, _ = data.(view.Page)
	return nil
}

func newTestEcho() (*echo.Echo, *captureRenderer) {
	e := echo.New()
	r := &captureRenderer{}
	e.Renderer = r
	e.Validator = NewValidator()
	return e, r
}

// newFormContext builds a context for a form submission made by sess.
func newFormContext(e *echo.Echo, method, target string, form url.Values, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	if sess != nil {
		req = req.WithContext(domain.ContextWithSession(req.Context(), sess))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func adminSession() *domain.Session {
	return domain.NewSession("sid-admin", "tok", domain.Identity{Role: domain.RoleAdmin, DisplayName: "Admin", UserID: 1, StreamID: 2})
}

func studentSession() *domain.Session {
	return domain.NewSession("sid-student", "tok", domain.Identity{Role: domain.RoleStudent, DisplayName: "Yassine", UserID: 12, StreamID: 3})
}

type stubAuthService struct {
	loginFn    func(ctx context.Context, email, password string) (string, domain.Identity, error)
	registered []domain.Registration
	registerFn func(reg domain.Registration) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, domain.Identity, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Register(_ context.Context, reg domain.Registration) error {
	s.registered = append(s.registered, reg)
	if s.registerFn != nil {
		return s.registerFn(reg)
	}
	return nil
}

type stubSessions struct {
	established []domain.Identity
	destroyed   []string
}

func (s *stubSessions) Load(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessions) Establish(_ context.Context, token string, identity domain.Identity) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	s.established = append(s.established, identity)
	return domain.NewSession("new-sid", token, identity), nil
}

func (s *stubSessions) Destroy(_ context.Context, id string) error {
	s.destroyed = append(s.destroyed, id)
	return nil
}

// stubResource records mutations and serves a fixed list.
type stubResource[T, In any] struct {
	items   []T
	listErr error
	err     error
	created []In
	updated map[int64]In
	deleted []int64
}

func (s *stubResource[T, In]) List(context.Context) ([]T, error) {
	return s.items, s.listErr
}

func (s *stubResource[T, In]) Create(_ context.Context, in In) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, in)
	return nil
}

func (s *stubResource[T, In]) Update(_ context.Context, id int64, in In) error {
	if s.err != nil {
		return s.err
	}
	if s.updated == nil {
		s.updated = make(map[int64]In)
	}
	s.updated[id] = in
	return nil
}

func (s *stubResource[T, In]) Delete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type stubStreams struct {
	stubResource[domain.Stream, domain.StreamInput]
}

func (s *stubStreams) Get(_ context.Context, id int64) (*domain.Stream, error) {
	for _, st := range s.items {
		if st.ID == id {
			return &st, nil
		}
	}
	return nil, &domain.BackendError{Status: 404, Detail: "Not Found"}
}

type stubExams struct {
	stubResource[domain.Exam, domain.ExamInput]
	optionStreams []int64
	download      *ports.Download
	downloadErr   error
	convocations  [][2]int64
}

func (s *stubExams) Visible(_ context.Context, sess *domain.Session) ([]domain.Exam, error) {
	return domain.VisibleExams(s.items, sess), s.listErr
}

func (s *stubExams) FormOptions(_ context.Context, streamID int64) (*domain.ExamFormOptions, error) {
	s.optionStreams = append(s.optionStreams, streamID)
	opts := &domain.ExamFormOptions{Streams: []domain.Stream{{ID: 3, Name: "SMI"}, {ID: 4, Name: "SMA"}}}
	if streamID != 0 {
		opts.Subjects = []domain.Subject{{ID: 40 + streamID, Name: "Matière", StreamID: streamID}}
	}
	return opts, nil
}

func (s *stubExams) Convocation(_ context.Context, examID, studentID int64) (*ports.Download, error) {
	s.convocations = append(s.convocations, [2]int64{examID, studentID})
	return s.download, s.downloadErr
}
