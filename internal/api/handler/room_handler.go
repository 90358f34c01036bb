package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/view"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

const roomsPath = "/salles"

type RoomHandler struct {
	rooms ports.RoomService
	log   zerolog.Logger
}

func NewRoomHandler(rooms ports.RoomService, log zerolog.Logger) *RoomHandler {
	return &RoomHandler{rooms: rooms, log: log}
}

type roomForm struct {
	Name     string `form:"name"`
	Capacity string `form:"capacity" validate:"omitempty,number"`
}

func (f roomForm) input() domain.RoomInput {
	return domain.RoomInput{Name: f.Name, Capacity: int(toNumber(f.Capacity))}
}

type roomsPage struct {
	Rooms  []domain.Room
	Form   roomForm
	EditID int64
}

// List handles GET /salles. With ?edit=<id> the form is pre-filled with
// that room.
func (h *RoomHandler) List(c echo.Context) error {
	page := roomsPage{Rooms: h.load(c)}
	if room, ok := find(page.Rooms, queryID(c, "edit"), func(r domain.Room) int64 { return r.ID }); ok {
		page.EditID = room.ID
		page.Form = roomForm{Name: room.Name, Capacity: strconv.Itoa(room.Capacity)}
	}
	return h.render(c, http.StatusOK, page, "")
}

// Create handles POST /salles.
func (h *RoomHandler) Create(c echo.Context) error {
	var form roomForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, form, 0, alertMessage(err, msgCreateFailed))
	}
	if err := h.rooms.Create(reqCtx(c), form.input()); err != nil {
		return h.fail(c, form, 0, alertMessage(err, msgCreateFailed))
	}
	return seeOther(c, roomsPath)
}

// Update handles POST /salles/:id.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form roomForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, form, id, alertMessage(err, msgUpdateFailed))
	}
	if err := h.rooms.Update(reqCtx(c), id, form.input()); err != nil {
		return h.fail(c, form, id, alertMessage(err, msgUpdateFailed))
	}
	return seeOther(c, roomsPath)
}

// ConfirmDelete handles GET /salles/:id/delete.
func (h *RoomHandler) ConfirmDelete(c echo.Context) error {
	return confirmDelete(c, "rooms", "Supprimer cette salle ?", roomsPath)
}

// Delete handles POST /salles/:id/delete.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.rooms.Delete(reqCtx(c), id); err != nil {
		return h.fail(c, roomForm{}, 0, alertMessage(err, msgDeleteFailed))
	}
	return seeOther(c, roomsPath)
}

func (h *RoomHandler) load(c echo.Context) []domain.Room {
	rooms, err := h.rooms.List(reqCtx(c))
	if err != nil {
		h.log.Error().Err(err).Msg("rooms not loaded")
	}
	return rooms
}

// fail re-renders the page with the alert and the submitted form kept open.
func (h *RoomHandler) fail(c echo.Context, form roomForm, editID int64, alert string) error {
	return h.render(c, http.StatusUnprocessableEntity, roomsPage{
		Rooms:  h.load(c),
		Form:   form,
		EditID: editID,
	}, alert)
}

func (h *RoomHandler) render(c echo.Context, status int, page roomsPage, alert string) error {
	return renderPage(c, status, "rooms", view.Page{
		Title:  "Salles",
		Active: "rooms",
		Alert:  alert,
		Data:   page,
	})
}
