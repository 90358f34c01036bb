package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/view"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
)

const (
	msgCreateFailed = "Erreur lors de la création"
	msgUpdateFailed = "Erreur lors de la mise à jour"
	msgDeleteFailed = "Erreur lors de la suppression"
)

// currentSession returns the session placed in the request by the session
// middleware, or nil for anonymous requests.
func currentSession(c echo.Context) *domain.Session {
	return domain.SessionFromContext(c.Request().Context())
}

func reqCtx(c echo.Context) context.Context {
	return c.Request().Context()
}

// renderPage renders a full page for the current session.
func renderPage(c echo.Context, status int, name string, p view.Page) error {
	p.Session = currentSession(c)
	return c.Render(status, name, p)
}

func seeOther(c echo.Context, path string) error {
	return c.Redirect(http.StatusSeeOther, path)
}

// formError is a submission the console refused before calling the backend.
type formError struct {
	msg string
}

func (e *formError) Error() string { return e.msg }

// bindForm decodes and validates a submitted form.
func bindForm(c echo.Context, form any) error {
	if err := c.Bind(form); err != nil {
		return &formError{msg: "formulaire invalide"}
	}
	if err := c.Validate(form); err != nil {
		return &formError{msg: err.Error()}
	}
	return nil
}

// alertMessage picks the text shown to the user: the backend's own detail
// when it sent one, the form problem, or the generic fallback.
func alertMessage(err error, fallback string) string {
	var be *domain.BackendError
	if errors.As(err, &be) && be.Detail != "" {
		return be.Detail
	}
	var fe *formError
	if errors.As(err, &fe) {
		return fe.msg
	}
	return fallback
}

// pathID reads the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "identifiant invalide")
	}
	return id, nil
}

// queryID reads a numeric query parameter; anything unparseable is zero.
func queryID(c echo.Context, name string) int64 {
	return toNumber(c.QueryParam(name))
}

// toNumber coerces a text field to a number. Empty or non-numeric text
// becomes zero.
func toNumber(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func idText(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// find returns the record with the given id.
func find[T any](items []T, id int64, idOf func(T) int64) (T, bool) {
	i := slices.IndexFunc(items, func(v T) bool { return idOf(v) == id })
	if i < 0 {
		var zero T
		return zero, false
	}
	return items[i], true
}

type confirmPage struct {
	Message string
	Action  string
	Back    string
}

// confirmDelete renders the confirmation step that precedes a delete.
func confirmDelete(c echo.Context, active, message, base string) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return renderPage(c, http.StatusOK, "confirm", view.Page{
		Title:  "Confirmation",
		Active: active,
		Data: confirmPage{
			Message: message,
			Action:  fmt.Sprintf("%s/%d/delete", base, id),
			Back:    base,
		},
	})
}
