package ports

import (
	"context"
	"time"
)

// SessionStore persists session key/value fields under an opaque id.
type SessionStore interface {
	// Load returns domain.ErrSessionNotFound when the id is unknown or expired.
	Load(ctx context.Context, id string) (map[string]string, error)
	// Save replaces every field of the session and resets its expiry.
	Save(ctx context.Context, id string, values map[string]string, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
