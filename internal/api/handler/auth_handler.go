package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/view"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

const (
	msgInvalidCredentials = "Identifiants invalides."
	msgRegisterFailed     = "Création du compte impossible."
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionService
	streams     ports.StreamService
	cookie      SessionCookie
	log         zerolog.Logger
}

func NewAuthHandler(
	authService ports.AuthService,
	sessions ports.SessionService,
	streams ports.StreamService,
	cookie SessionCookie,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		streams:     streams,
		cookie:      cookie,
		log:         log,
	}
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type loginPage struct {
	Email string
}

type registerForm struct {
	FullName   string `form:"full_name" validate:"required"`
	Email      string `form:"email" validate:"required,email"`
	Password   string `form:"password" validate:"required"`
	Role       string `form:"role" validate:"oneof=student teacher"`
	StreamID   string `form:"stream_id"`
	CodeApogee string `form:"code_apoge"`
	CNE        string `form:"cne"`
}

func (f registerForm) registration() domain.Registration {
	return domain.Registration{
		FullName:   f.FullName,
		Email:      f.Email,
		Password:   f.Password,
		Role:       f.Role,
		StreamID:   toNumber(f.StreamID),
		CodeApogee: f.CodeApogee,
		CNE:        f.CNE,
	}
}

type registerPage struct {
	Streams []domain.Stream
	Form    registerForm
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return renderPage(c, http.StatusOK, "login", view.Page{Title: "Connexion", Data: loginPage{}})
}

// Login handles POST /login. On success the session is established and the
// browser is sent to the dashboard.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := bindForm(c, &form); err != nil {
		return h.loginFailed(c, form.Email, alertMessage(err, msgInvalidCredentials))
	}

	token, identity, err := h.authService.Login(reqCtx(c), form.Email, form.Password)
	if err != nil {
		h.log.Info().Err(err).Str("email", form.Email).Msg("login refused")
		return h.loginFailed(c, form.Email, msgInvalidCredentials)
	}

	sess, err := h.sessions.Establish(reqCtx(c), token, identity)
	if err != nil {
		return err
	}
	h.cookie.set(c, sess.ID())
	return seeOther(c, "/")
}

func (h *AuthHandler) loginFailed(c echo.Context, email, alert string) error {
	return renderPage(c, http.StatusUnauthorized, "login", view.Page{
		Title: "Connexion",
		Alert: alert,
		Data:  loginPage{Email: email},
	})
}

// Logout handles POST /logout: every session key goes at once.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Destroy(reqCtx(c), currentSession(c).ID()); err != nil {
		h.log.Error().Err(err).Msg("logout failed to destroy session")
	}
	h.cookie.clear(c)
	return seeOther(c, "/login")
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return h.renderRegister(c, http.StatusOK, registerForm{Role: domain.RoleStudent}, "")
}

// Register handles POST /register.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := bindForm(c, &form); err != nil {
		return h.renderRegister(c, http.StatusUnprocessableEntity, form, alertMessage(err, msgRegisterFailed))
	}

	if err := h.authService.Register(reqCtx(c), form.registration()); err != nil {
		h.log.Info().Err(err).Str("role", form.Role).Msg("registration refused")
		return h.renderRegister(c, http.StatusUnprocessableEntity, form, alertMessage(err, msgRegisterFailed))
	}
	return seeOther(c, "/login")
}

func (h *AuthHandler) renderRegister(c echo.Context, status int, form registerForm, alert string) error {
	streams, err := h.streams.List(reqCtx(c))
	if err != nil {
		h.log.Warn().Err(err).Msg("register page: streams not loaded")
	}
	form.Password = ""
	return renderPage(c, status, "register", view.Page{
		Title: "Créer un compte",
		Alert: alert,
		Data:  registerPage{Streams: streams, Form: form},
	})
}
