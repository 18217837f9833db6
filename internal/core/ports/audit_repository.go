package ports

import (
	"context"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
)

// AuditRepository persists the append-only audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	// List returns entries newest first.
	List(ctx context.Context) ([]domain.AuditEntry, error)
}

// AuditRecorder is the sink services emit audit entries to. The production
// implementation is an async dispatcher; writes are best-effort side effects
// and never fail the operation that produced them.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
