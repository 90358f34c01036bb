// Package server wires the console together and runs its HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/handler"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/service"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/infrastructure/backend"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/infrastructure/db/mongo"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/infrastructure/db/redis"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/infrastructure/http/handlers"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/infrastructure/queue"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/infrastructure/session"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/pkg/config"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/pkg/logger"
)

const (
	shutdownTimeout = 15 * time.Second
	auditWorkers    = 2
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *echo.Echo
	logger zerolog.Logger
	http   *http.Server

	redis   *goredis.Client
	mongo   *mongo.Store
	audit   *queue.AuditDispatcher
	stopBgr context.CancelFunc
}

// New connects the configured stores and builds every service and handler.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Server, error) {
	s := &Server{config: cfg, logger: log}

	client := backend.New(backend.Config{BaseURL: cfg.Backend.URL, Timeout: cfg.Backend.Timeout}, logger.Component("backend"))
	probes := []handlers.Dependency{{Name: "backend", Check: client.Ping}}

	store, err := s.sessionStore(ctx, &probes)
	if err != nil {
		return nil, err
	}

	recorder, err := s.auditRecorder(ctx, &probes)
	if err != nil {
		s.close()
		return nil, err
	}

	svcLog := logger.Component("service")
	streams := service.NewStreamService(client, recorder, svcLog)
	subjects := service.NewSubjectService(client, recorder, svcLog)
	rooms := service.NewRoomService(client, recorder, svcLog)
	users := service.NewUserService(client, recorder, svcLog)
	exams := service.NewExamService(client, recorder, rooms, users, streams, subjects, svcLog)
	sessions := service.NewSessionService(store, cfg.Session.TTL, svcLog)

	router, err := api.NewRouter(api.Dependencies{
		Auth:      service.NewAuthService(client, svcLog),
		Sessions:  sessions,
		Streams:   streams,
		Subjects:  subjects,
		Rooms:     rooms,
		Users:     users,
		Exams:     exams,
		Dashboard: service.NewDashboardService(exams, users, subjects, rooms, streams, svcLog),
		Cookie: handler.SessionCookie{
			Name:   cfg.Session.Cookie,
			Secure: cfg.IsProduction(),
			TTL:    sessions.TTL(),
		},
		Probes: probes,
		Log:    logger.Component("http"),
	})
	if err != nil {
		s.close()
		return nil, err
	}
	s.router = router

	return s, nil
}

func (s *Server) sessionStore(ctx context.Context, probes *[]handlers.Dependency) (ports.SessionStore, error) {
	if s.config.Session.Store == config.SessionStoreMemory {
		s.logger.Warn().Msg("sessions kept in memory; they are lost on restart")
		return session.NewMemoryStore(), nil
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     s.config.Redis.Addr,
		Password: s.config.Redis.Password,
		DB:       s.config.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}
	s.redis = rdb
	*probes = append(*probes, handlers.Dependency{Name: "redis", Check: handlers.RedisCheck(rdb)})
	return redis.NewSessionStore(rdb), nil
}

func (s *Server) auditRecorder(ctx context.Context, probes *[]handlers.Dependency) (ports.AuditRecorder, error) {
	if !s.config.Mongo.AuditEnabled {
		return service.NopAudit{}, nil
	}

	store, err := mongo.Open(ctx, mongo.Config{URI: s.config.Mongo.URI, Database: s.config.Mongo.Database})
	if err != nil {
		return nil, fmt.Errorf("audit store: %w", err)
	}
	s.mongo = store
	*probes = append(*probes, handlers.Dependency{Name: "mongodb", Check: handlers.MongoCheck(store.DB)})

	repo := store.Audit()
	if err := repo.EnsureIndexes(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("audit indexes not created")
	}

	bgCtx, cancel := context.WithCancel(context.Background())
	s.stopBgr = cancel
	s.audit = queue.NewAuditDispatcher(auditWorkers, repo, logger.Component("audit"))
	s.audit.Start(bgCtx)
	return s.audit, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:              ":" + s.config.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Str("backend", s.config.Backend.URL).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.close()
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("received OS signal, shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops accepting requests, then drains the audit queue and closes
// the stores.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		if serr := s.http.Shutdown(ctx); serr != nil {
			err = fmt.Errorf("http shutdown: %w", serr)
		}
	}
	s.close()
	s.logger.Info().Msg("server stopped")
	return err
}

func (s *Server) close() {
	if s.audit != nil {
		s.audit.Close()
	}
	if s.stopBgr != nil {
		s.stopBgr()
	}
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.mongo.Close(ctx); err != nil {
			s.logger.Error().Err(err).Msg("mongo disconnect failed")
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error().Err(err).Msg("redis close failed")
		}
	}
}
