package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

// SessionService is the only writer of sessions: Establish on login
// success, Destroy on logout.
type SessionService struct {
	store ports.SessionStore
	ttl   time.Duration
	newID func() string
	log   zerolog.Logger
}

var _ ports.SessionService = (*SessionService)(nil)

func NewSessionService(store ports.SessionStore, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionService{
		store: store,
		ttl:   ttl,
		newID: func() string { return uuid.NewString() },
		log:   log,
	}
}

func (s *SessionService) Load(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}
	values, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.SessionFromValues(id, values), nil
}

// Establish stores a new session holding the token and the five identity
// keys, under a fresh random id.
func (s *SessionService) Establish(ctx context.Context, token string, identity domain.Identity) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	sess := domain.NewSession(s.newID(), token, identity)
	if err := s.store.Save(ctx, sess.ID(), sess.Values(), s.ttl); err != nil {
		return nil, fmt.Errorf("establish session: %w", err)
	}

	s.log.Info().
		Str("role", identity.Role).
		Int64("user_id", identity.UserID).
		Msg("session established")
	return sess, nil
}

// Destroy removes every key of the session at once.
func (s *SessionService) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// TTL is the lifetime given to new sessions.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}
