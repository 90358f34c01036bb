package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/view"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/infrastructure/export"
)

const (
	examsPath = "/examens"

	msgConvocationFailed = "Téléchargement de la convocation impossible."
	msgExportFailed      = "Export des examens impossible."

	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ExamHandler struct {
	exams ports.ExamService
	users ports.UserService
	log   zerolog.Logger
}

func NewExamHandler(exams ports.ExamService, users ports.UserService, log zerolog.Logger) *ExamHandler {
	return &ExamHandler{exams: exams, users: users, log: log}
}

type examForm struct {
	SubjectID string `form:"subject_id"`
	RoomID    string `form:"room_id"`
	TeacherID string `form:"teacher_id"`
	StreamID  string `form:"stream_id"`
	Date      string `form:"date"`
	Time      string `form:"time"`
}

// input coerces the selector values to numbers. No teacher selected is sent
// as null.
func (f examForm) input() domain.ExamInput {
	in := domain.ExamInput{
		SubjectID: toNumber(f.SubjectID),
		RoomID:    toNumber(f.RoomID),
		StreamID:  toNumber(f.StreamID),
		Date:      f.Date,
		Time:      f.Time,
	}
	if id := toNumber(f.TeacherID); id != 0 {
		in.TeacherID = &id
	}
	return in
}

// carry keeps the fields already entered when the form is reloaded for
// another stream.
func (f *examForm) carry(q url.Values) {
	for name, field := range map[string]*string{
		"room_id":    &f.RoomID,
		"teacher_id": &f.TeacherID,
		"date":       &f.Date,
		"time":       &f.Time,
	} {
		if q.Has(name) {
			*field = q.Get(name)
		}
	}
}

func examFormOf(e domain.Exam) examForm {
	return examForm{
		SubjectID: idText(e.SubjectID),
		RoomID:    idText(e.RoomID),
		TeacherID: idText(e.TeacherID),
		StreamID:  idText(e.StreamID),
		Date:      e.Date,
		Time:      e.Time,
	}
}

type examsPage struct {
	Exams    []domain.Exam
	Admin    bool
	FormOpen bool
	EditID   int64
	Form     examForm
	Options  *domain.ExamFormOptions
}

// List handles GET /examens. Each role only sees its own exams. Admins may
// open the form with ?new=1 or ?edit=<id>; ?stream_id= switches the form's
// stream and reloads the subject selector with that stream's subjects,
// keeping the room, teacher, date and time sent along with it.
func (h *ExamHandler) List(c echo.Context) error {
	sess := currentSession(c)
	page := examsPage{
		Exams: h.load(c),
		Admin: sess.HasRole(domain.RoleAdmin),
	}
	if !page.Admin {
		return h.render(c, http.StatusOK, page, "")
	}

	if c.QueryParam("new") != "" {
		page.FormOpen = true
		page.Form.StreamID = idText(sess.StreamID())
	}
	if exam, ok := find(page.Exams, queryID(c, "edit"), func(e domain.Exam) int64 { return e.ID }); ok {
		page.FormOpen = true
		page.EditID = exam.ID
		page.Form = examFormOf(exam)
	}
	if q := c.QueryParams(); q.Has("stream_id") {
		page.Form.StreamID = idText(queryID(c, "stream_id"))
		page.Form.SubjectID = ""
		page.Form.carry(q)
	}

	page.Options = h.options(c, page.Form.StreamID)
	return h.render(c, http.StatusOK, page, "")
}

// Create handles POST /examens.
func (h *ExamHandler) Create(c echo.Context) error {
	var form examForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, form, 0, alertMessage(err, msgCreateFailed))
	}
	if err := h.exams.Create(reqCtx(c), form.input()); err != nil {
		return h.fail(c, form, 0, alertMessage(err, msgCreateFailed))
	}
	return seeOther(c, examsPath)
}

// Update handles POST /examens/:id.
func (h *ExamHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form examForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, form, id, alertMessage(err, msgUpdateFailed))
	}
	if err := h.exams.Update(reqCtx(c), id, form.input()); err != nil {
		return h.fail(c, form, id, alertMessage(err, msgUpdateFailed))
	}
	return seeOther(c, examsPath)
}

func (h *ExamHandler) ConfirmDelete(c echo.Context) error {
	return confirmDelete(c, "exams", "Supprimer cet examen ?", examsPath)
}

func (h *ExamHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.exams.Delete(reqCtx(c), id); err != nil {
		return h.alert(c, alertMessage(err, msgDeleteFailed))
	}
	return seeOther(c, examsPath)
}

// Convocation handles GET /examens/:id/convocation. The backend PDF is sent
// as an attachment, byte for byte.
func (h *ExamHandler) Convocation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	dl, err := h.exams.Convocation(reqCtx(c), id, currentSession(c).UserID())
	if err != nil {
		h.log.Warn().Err(err).Int64("exam_id", id).Msg("convocation download failed")
		return h.alert(c, alertMessage(err, msgConvocationFailed))
	}

	contentType := dl.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=convocation_%d.pdf", id))
	return c.Blob(http.StatusOK, contentType, dl.Data)
}

// Export handles GET /examens/export.xlsx.
func (h *ExamHandler) Export(c echo.Context) error {
	exams, err := h.exams.List(reqCtx(c))
	if err != nil {
		return h.alert(c, alertMessage(err, msgExportFailed))
	}
	users, err := h.users.List(reqCtx(c))
	if err != nil {
		h.log.Warn().Err(err).Msg("export: teacher names not loaded")
	}

	var buf bytes.Buffer
	if err := export.ExamWorkbook(&buf, exams, domain.Teachers(users)); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=examens.xlsx")
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

func (h *ExamHandler) load(c echo.Context) []domain.Exam {
	exams, err := h.exams.Visible(reqCtx(c), currentSession(c))
	if err != nil {
		h.log.Error().Err(err).Msg("exams not loaded")
	}
	return exams
}

// options loads the admin form selectors. A failure leaves them empty.
func (h *ExamHandler) options(c echo.Context, streamID string) *domain.ExamFormOptions {
	opts, err := h.exams.FormOptions(reqCtx(c), toNumber(streamID))
	if err != nil {
		h.log.Error().Err(err).Msg("exam form options not loaded")
		return &domain.ExamFormOptions{}
	}
	return opts
}

// fail re-renders the list with the admin form left open.
func (h *ExamHandler) fail(c echo.Context, form examForm, editID int64, alert string) error {
	page := examsPage{
		Exams:    h.load(c),
		Admin:    true,
		FormOpen: true,
		EditID:   editID,
		Form:     form,
		Options:  h.options(c, form.StreamID),
	}
	return h.render(c, http.StatusUnprocessableEntity, page, alert)
}

// alert re-renders the plain list with a message.
func (h *ExamHandler) alert(c echo.Context, msg string) error {
	page := examsPage{
		Exams: h.load(c),
		Admin: currentSession(c).HasRole(domain.RoleAdmin),
	}
	return h.render(c, http.StatusUnprocessableEntity, page, msg)
}

func (h *ExamHandler) render(c echo.Context, status int, page examsPage, alert string) error {
	if page.Options == nil {
		page.Options = &domain.ExamFormOptions{}
	}
	return renderPage(c, status, "exams", view.Page{
		Title:  "Examens",
		Active: "exams",
		Alert:  alert,
		Data:   page,
	})
}
