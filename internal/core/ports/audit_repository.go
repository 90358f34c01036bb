package ports

import (
	"context"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
)

// AuditRepository persists the mutation audit trail.
type AuditRepository interface {
	InsertEntry(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditRecorder accepts audit entries without blocking the caller.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
