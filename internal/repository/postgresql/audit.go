package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/audit"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

// Record implements audit.AuditRepository.
func (a *auditRepository) Record(ctx context.Context, e audit.Event) error {
	q := GetQuerier(ctx, a.db)

	detail, err := json.Marshal(e.Detail)
	if err != nil {
		return fmt.Errorf("failed to marshal audit detail: %w", err)
	}

	query := `
		INSERT INTO audit_events (
			id, actor_id, action, entity_id, detail, occurred_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	if _, err := q.Exec(ctx, query,
		uuid.New().String(), e.ActorID, e.Action, e.EntityID, detail, e.OccurredAt,
	); err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}

	return nil
}

// ListByEntity implements audit.AuditRepository.
func (a *auditRepository) ListByEntity(ctx context.Context, entityID string) ([]audit.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, actor_id, action, entity_id, detail, occurred_at
		FROM audit_events
		WHERE entity_id = $1
		ORDER BY occurred_at
	`

	rows, err := q.Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var e audit.Event
		var detail []byte
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.EntityID, &detail, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &e.Detail); err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit detail: %w", err)
			}
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit events: %w", err)
	}

	return events, nil
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}
