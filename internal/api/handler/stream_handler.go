package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/view"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

const streamsPath = "/filieres"

type StreamHandler struct {
	streams ports.StreamService
	log     zerolog.Logger
}

func NewStreamHandler(streams ports.StreamService, log zerolog.Logger) *StreamHandler {
	return &StreamHandler{streams: streams, log: log}
}

type streamForm struct {
	Name string `form:"nom"`
}

type streamsPage struct {
	Streams []domain.Stream
	Form    streamForm
	EditID  int64
}

// List handles GET /filieres.
func (h *StreamHandler) List(c echo.Context) error {
	page := streamsPage{Streams: h.load(c)}
	if st, ok := find(page.Streams, queryID(c, "edit"), func(s domain.Stream) int64 { return s.ID }); ok {
		page.EditID = st.ID
		page.Form = streamForm{Name: st.Name}
	}
	return h.render(c, http.StatusOK, page, "")
}

// Create handles POST /filieres.
func (h *StreamHandler) Create(c echo.Context) error {
	var form streamForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, form, 0, alertMessage(err, msgCreateFailed))
	}
	if err := h.streams.Create(reqCtx(c), domain.StreamInput{Name: form.Name}); err != nil {
		return h.fail(c, form, 0, alertMessage(err, msgCreateFailed))
	}
	return seeOther(c, streamsPath)
}

// Update handles POST /filieres/:id.
func (h *StreamHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form streamForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, form, id, alertMessage(err, msgUpdateFailed))
	}
	if err := h.streams.Update(reqCtx(c), id, domain.StreamInput{Name: form.Name}); err != nil {
		return h.fail(c, form, id, alertMessage(err, msgUpdateFailed))
	}
	return seeOther(c, streamsPath)
}

func (h *StreamHandler) ConfirmDelete(c echo.Context) error {
	return confirmDelete(c, "streams", "Supprimer cette filière ?", streamsPath)
}

func (h *StreamHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.streams.Delete(reqCtx(c), id); err != nil {
		return h.fail(c, streamForm{}, 0, alertMessage(err, msgDeleteFailed))
	}
	return seeOther(c, streamsPath)
}

func (h *StreamHandler) load(c echo.Context) []domain.Stream {
	streams, err := h.streams.List(reqCtx(c))
	if err != nil {
		h.log.Error().Err(err).Msg("streams not loaded")
	}
	return streams
}

func (h *StreamHandler) fail(c echo.Context, form streamForm, editID int64, alert string) error {
	return h.render(c, http.StatusUnprocessableEntity, streamsPage{
		Streams: h.load(c),
		Form:    form,
		EditID:  editID,
	}, alert)
}

func (h *StreamHandler) render(c echo.Context, status int, page streamsPage, alert string) error {
	return renderPage(c, status, "streams", view.Page{
		Title:  "Filières",
		Active: "streams",
		Alert:  alert,
		Data:   page,
	})
}
