package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/view"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
)

// errorResponse is the JSON envelope used on machine-facing paths.
type errorResponse struct {
	Error string `json:"error"`
}

type errorPage struct {
	Code    int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps echo and backend errors to an HTTP status and a French message.
//   - Logs unexpected errors internally without leaking details to the browser.
//   - Renders the error page, or a JSON envelope on the probe and metrics paths.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if wantsJSON(c) {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}

		page := view.Page{
			Title:   "Erreur",
			Session: domain.SessionFromContext(c.Request().Context()),
			Data:    errorPage{Code: code, Message: msg},
		}
		if rerr := c.Render(code, "error", page); rerr != nil {
			log.Error().Err(rerr).Msg("error page not rendered")
			_ = c.String(code, msg)
		}
	}
}

func wantsJSON(c echo.Context) bool {
	path := c.Request().URL.Path
	return strings.HasPrefix(path, "/health") || path == "/metrics"
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (unknown route, bad id, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			return he.Code, "Page introuvable."
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// The backend refused a call that no page turned into an alert.
	var be *domain.BackendError
	if errors.As(err, &be) {
		log.Warn().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("backend error reached the error handler")
		if be.Detail != "" {
			return http.StatusBadGateway, be.Detail
		}
		return http.StatusBadGateway, "Le serveur d'examens a refusé la requête."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Erreur interne du serveur."
}
