package api

import (
	"fmt"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/handler"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/middleware"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/view"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
	infrahttp "github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/infrastructure/http"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/infrastructure/http/handlers"
)

const (
	loginPath = "/login"
	homePath  = "/"
)

// Dependencies is everything the router needs to build its handlers.
type Dependencies struct {
	Auth      ports.AuthService
	Sessions  ports.SessionService
	Streams   ports.StreamService
	Subjects  ports.SubjectService
	Rooms     ports.RoomService
	Users     ports.UserService
	Exams     ports.ExamService
	Dashboard ports.DashboardService

	Cookie handler.SessionCookie
	Probes []handlers.Dependency
	Log    zerolog.Logger
}

// crudPages is implemented by every list page with a create form, an edit
// form and a confirmed delete.
type crudPages interface {
	List(echo.Context) error
	Create(echo.Context) error
	Update(echo.Context) error
	ConfirmDelete(echo.Context) error
	Delete(echo.Context) error
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("examconsole"))
	e.Use(middleware.Session(deps.Sessions, deps.Cookie.Name, deps.Log))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions, deps.Streams, deps.Cookie, deps.Log)
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard)
	roomHandler := handler.NewRoomHandler(deps.Rooms, deps.Log)
	streamHandler := handler.NewStreamHandler(deps.Streams, deps.Log)
	subjectHandler := handler.NewSubjectHandler(deps.Subjects, deps.Streams, deps.Log)
	userHandler := handler.NewUserHandler(deps.Users, deps.Streams, deps.Log)
	examHandler := handler.NewExamHandler(deps.Exams, deps.Users, deps.Log)

	requireAuth := middleware.RequireAuth(loginPath)
	requireAdmin := middleware.RequireRole(homePath, domain.RoleAdmin)
	requireMember := middleware.RequireKnownRole(homePath)

	// --- Anonymous pages ---
	anonymous := middleware.AnonymousOnly(homePath)
	e.GET(loginPath, authHandler.LoginPage, anonymous)
	e.POST(loginPath, authHandler.Login, anonymous)
	e.GET("/register", authHandler.RegisterPage, anonymous)
	e.POST("/register", authHandler.Register, anonymous)

	// --- Any logged-in role ---
	e.GET(homePath, dashboardHandler.Show, requireAuth)
	e.POST("/logout", authHandler.Logout, requireAuth)

	exams := e.Group("/examens", requireAuth, requireMember)
	exams.GET("", examHandler.List)
	exams.GET("/:id/convocation", examHandler.Convocation)
	exams.GET("/export.xlsx", examHandler.Export, requireAdmin)
	exams.POST("", examHandler.Create, requireAdmin)
	exams.POST("/:id", examHandler.Update, requireAdmin)
	exams.GET("/:id/delete", examHandler.ConfirmDelete, requireAdmin)
	exams.POST("/:id/delete", examHandler.Delete, requireAdmin)

	// --- Admin pages ---
	mountPages(e.Group("/utilisateurs", requireAuth, requireAdmin), userHandler)
	mountPages(e.Group("/matieres", requireAuth, requireAdmin), subjectHandler)
	mountPages(e.Group("/salles", requireAuth, requireAdmin), roomHandler)
	mountPages(e.Group("/filieres", requireAuth, requireAdmin), streamHandler)

	// --- Probes and metrics (no session required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	infrahttp.RegisterProbes(e, deps.Probes...)

	return e, nil
}

func mountPages(g *echo.Group, h crudPages) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.POST("/:id", h.Update)
	g.GET("/:id/delete", h.ConfirmDelete)
	g.POST("/:id/delete", h.Delete)
}

// requestLogger feeds echo's request log into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
