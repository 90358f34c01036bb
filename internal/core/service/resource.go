package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/metrics"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

// resource implements the shared CRUD contract against one backend
// collection path. Lists are always fetched whole.
type resource[T, In any] struct {
	backend ports.Backend
	audit   ports.AuditRecorder
	name    string
	path    string
	log     zerolog.Logger
}

func newResource[T, In any](backend ports.Backend, audit ports.AuditRecorder, name, path string, log zerolog.Logger) *resource[T, In] {
	if audit == nil {
		audit = NopAudit{}
	}
	return &resource[T, In]{
		backend: backend,
		audit:   audit,
		name:    name,
		path:    path,
		log:     log.With().Str("resource", name).Logger(),
	}
}

func (r *resource[T, In]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.backend.Get(ctx, r.path, &out); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return out, nil
}

func (r *resource[T, In]) Get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.backend.Get(ctx, r.itemPath(id), &out); err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.name, id, err)
	}
	return &out, nil
}

func (r *resource[T, In]) Create(ctx context.Context, in In) error {
	return r.mutate(ctx, "create", 0, func() error {
		return r.backend.Post(ctx, r.path, in, nil)
	})
}

func (r *resource[T, In]) Update(ctx context.Context, id int64, in In) error {
	return r.mutate(ctx, "update", id, func() error {
		return r.backend.Put(ctx, r.itemPath(id), in, nil)
	})
}

func (r *resource[T, In]) Delete(ctx context.Context, id int64) error {
	return r.mutate(ctx, "delete", id, func() error {
		return r.backend.Delete(ctx, r.itemPath(id))
	})
}

// mutate runs one backend write, then counts and audits it. Audit failures
// never affect the result.
func (r *resource[T, In]) mutate(ctx context.Context, action string, id int64, call func() error) error {
	if err := call(); err != nil {
		metrics.MutationsTotal.WithLabelValues(r.name, action, "error").Inc()
		return fmt.Errorf("%s %s: %w", action, r.name, err)
	}
	metrics.MutationsTotal.WithLabelValues(r.name, action, "ok").Inc()

	s := domain.SessionFromContext(ctx)
	r.audit.Record(domain.AuditEntry{
		Action:     action,
		Resource:   r.name,
		ResourceID: id,
		ActorID:    s.UserID(),
		ActorName:  s.DisplayName(),
		ActorRole:  s.Role(),
		At:         time.Now().UTC(),
	})

	r.log.Info().Str("action", action).Int64("id", id).Msg("resource mutated")
	return nil
}

func (r *resource[T, In]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

// NopAudit discards audit entries. It is used when no audit store is set up.
type NopAudit struct{}

func (NopAudit) Record(domain.AuditEntry) {}
