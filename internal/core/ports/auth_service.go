package ports

import (
	"context"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
)

type AuthService interface {
	// Login exchanges credentials for a bearer token and resolves who holds it.
	Login(ctx context.Context, email, password string) (string, domain.Identity, error)
	Register(ctx context.Context, reg domain.Registration) error
}

// SessionService is the single writer of console sessions.
type SessionService interface {
	Load(ctx context.Context, id string) (*domain.Session, error)
	Establish(ctx context.Context, token string, identity domain.Identity) (*domain.Session, error)
	Destroy(ctx context.Context, id string) error
}
