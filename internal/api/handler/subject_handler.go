package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/view"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

const subjectsPath = "/matieres"

type SubjectHandler struct {
	subjects ports.SubjectService
	streams  ports.StreamService
	log      zerolog.Logger
}

func NewSubjectHandler(subjects ports.SubjectService, streams ports.StreamService, log zerolog.Logger) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, streams: streams, log: log}
}

type subjectForm struct {
	Name     string `form:"name"`
	StreamID string `form:"stream_id"`
}

func (f subjectForm) input() domain.SubjectInput {
	return domain.SubjectInput{Name: f.Name, StreamID: toNumber(f.StreamID)}
}

type subjectsPage struct {
	Groups   []domain.SubjectGroup
	Streams  []domain.Stream
	Subjects []domain.Subject
	Form     subjectForm
	EditID   int64
}

// List handles GET /matieres. Subjects are shown grouped by stream.
func (h *SubjectHandler) List(c echo.Context) error {
	page := h.load(c)
	if s, ok := find(page.Subjects, queryID(c, "edit"), func(s domain.Subject) int64 { return s.ID }); ok {
		page.EditID = s.ID
		page.Form = subjectForm{Name: s.Name, StreamID: idText(s.StreamID)}
	}
	return h.render(c, http.StatusOK, page, "")
}

func (h *SubjectHandler) Create(c echo.Context) error {
	var form subjectForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, form, 0, alertMessage(err, msgCreateFailed))
	}
	if err := h.subjects.Create(reqCtx(c), form.input()); err != nil {
		return h.fail(c, form, 0, alertMessage(err, msgCreateFailed))
	}
	return seeOther(c, subjectsPath)
}

func (h *SubjectHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form subjectForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, form, id, alertMessage(err, msgUpdateFailed))
	}
	if err := h.subjects.Update(reqCtx(c), id, form.input()); err != nil {
		return h.fail(c, form, id, alertMessage(err, msgUpdateFailed))
	}
	return seeOther(c, subjectsPath)
}

func (h *SubjectHandler) ConfirmDelete(c echo.Context) error {
	return confirmDelete(c, "subjects", "Supprimer cette matière ?", subjectsPath)
}

func (h *SubjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.subjects.Delete(reqCtx(c), id); err != nil {
		return h.fail(c, subjectForm{}, 0, alertMessage(err, msgDeleteFailed))
	}
	return seeOther(c, subjectsPath)
}

// load fetches subjects and streams concurrently. A failed fetch leaves only
// its own list empty.
func (h *SubjectHandler) load(c echo.Context) subjectsPage {
	var page subjectsPage
	var g errgroup.Group
	ctx := reqCtx(c)
	g.Go(func() error {
		subjects, err := h.subjects.List(ctx)
		page.Subjects = subjects
		return err
	})
	g.Go(func() error {
		streams, err := h.streams.List(ctx)
		page.Streams = streams
		return err
	})
	if err := g.Wait(); err != nil {
		h.log.Error().Err(err).Msg("subjects page not fully loaded")
	}
	page.Groups = domain.GroupSubjects(page.Streams, page.Subjects)
	return page
}

func (h *SubjectHandler) fail(c echo.Context, form subjectForm, editID int64, alert string) error {
	page := h.load(c)
	page.Form = form
	page.EditID = editID
	return h.render(c, http.StatusUnprocessableEntity, page, alert)
}

func (h *SubjectHandler) render(c echo.Context, status int, page subjectsPage, alert string) error {
	return renderPage(c, status, "subjects", view.Page{
		Title:  "Matières",
		Active: "subjects",
		Alert:  alert,
		Data:   page,
	})
}
