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

const usersPath = "/utilisateurs"

type UserHandler struct {
	users   ports.UserService
	streams ports.StreamService
	log     zerolog.Logger
}

func NewUserHandler(users ports.UserService, streams ports.StreamService, log zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, streams: streams, log: log}
}

type userForm struct {
	FullName   string `form:"full_name"`
	Email      string `form:"email" validate:"omitempty,email"`
	Password   string `form:"password"`
	Role       string `form:"role" validate:"omitempty,oneof=admin teacher student"`
	StreamID   string `form:"stream_id"`
	CodeApogee string `form:"code_apoge"`
	CNE        string `form:"cne"`
}

func (f userForm) input() domain.UserInput {
	return domain.UserInput{
		FullName:   f.FullName,
		Email:      f.Email,
		Password:   f.Password,
		Role:       f.Role,
		StreamID:   toNumber(f.StreamID),
		CodeApogee: f.CodeApogee,
		CNE:        f.CNE,
	}
}

type usersPage struct {
	Students []domain.User
	Teachers []domain.User
	Streams  []domain.Stream
	Form     userForm
	EditID   int64

	all []domain.User
}

// List handles GET /utilisateurs. Students and teachers are listed in
// separate tables.
func (h *UserHandler) List(c echo.Context) error {
	page := h.load(c)
	if u, ok := find(page.all, queryID(c, "edit"), func(u domain.User) int64 { return u.ID }); ok {
		page.EditID = u.ID
		page.Form = userForm{
			FullName:   u.FullName,
			Email:      u.Email,
			Role:       u.Role,
			StreamID:   idText(u.StreamID),
			CodeApogee: u.CodeApogee,
			CNE:        u.CNE,
		}
	}
	return h.render(c, http.StatusOK, page, "")
}

// Create handles POST /utilisateurs. The role decides which backend
// endpoint registers the account.
func (h *UserHandler) Create(c echo.Context) error {
	var form userForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, form, 0, alertMessage(err, msgCreateFailed))
	}
	if err := h.users.Create(reqCtx(c), form.input()); err != nil {
		return h.fail(c, form, 0, alertMessage(err, msgCreateFailed))
	}
	return seeOther(c, usersPath)
}

// Update handles POST /utilisateurs/:id. An empty password is not sent.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form userForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, form, id, alertMessage(err, msgUpdateFailed))
	}
	if err := h.users.Update(reqCtx(c), id, form.input()); err != nil {
		return h.fail(c, form, id, alertMessage(err, msgUpdateFailed))
	}
	return seeOther(c, usersPath)
}

func (h *UserHandler) ConfirmDelete(c echo.Context) error {
	return confirmDelete(c, "users", "Supprimer cet utilisateur ?", usersPath)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(reqCtx(c), id); err != nil {
		return h.fail(c, userForm{}, 0, alertMessage(err, msgDeleteFailed))
	}
	return seeOther(c, usersPath)
}

func (h *UserHandler) load(c echo.Context) usersPage {
	var page usersPage
	var g errgroup.Group
	ctx := reqCtx(c)
	g.Go(func() error {
		users, err := h.users.List(ctx)
		page.all = users
		return err
	})
	g.Go(func() error {
		streams, err := h.streams.List(ctx)
		page.Streams = streams
		return err
	})
	if err := g.Wait(); err != nil {
		h.log.Error().Err(err).Msg("users page not fully loaded")
	}
	page.Students, page.Teachers = domain.SplitByRole(page.all)
	return page
}

func (h *UserHandler) fail(c echo.Context, form userForm, editID int64, alert string) error {
	page := h.load(c)
	form.Password = ""
	page.Form = form
	page.EditID = editID
	return h.render(c, http.StatusUnprocessableEntity, page, alert)
}

func (h *UserHandler) render(c echo.Context, status int, page usersPage, alert string) error {
	if page.Form.Role == "" {
		page.Form.Role = domain.RoleStudent
	}
	return renderPage(c, status, "users", view.Page{
		Title:  "Utilisateurs",
		Active: "users",
		Alert:  alert,
		Data:   page,
	})
}
