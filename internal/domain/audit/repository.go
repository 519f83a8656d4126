package audit

import "context"

type AuditRepository interface {
	Record(ctx context.Context, e Event) error
	ListByEntity(ctx context.Context, entityID string) ([]Event, error)
}
