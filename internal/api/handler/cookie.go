package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookie describes the browser cookie holding the session id.
type SessionCookie struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func (sc SessionCookie) set(c echo.Context, id string) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(sc.TTL.Seconds()),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (sc SessionCookie) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
