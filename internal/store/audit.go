package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditLog records every mutating catalog operation in PostgreSQL. A nil
// AuditLog disables auditing; Record is nil-safe.
type AuditLog struct {
	pool *pgxpool.Pool
}

func NewAuditLog(pool *pgxpool.Pool) *AuditLog {
	return &AuditLog{pool: pool}
}

// Migrate creates the audit table if it doesn't exist.
func (a *AuditLog) Migrate(ctx context.Context) error {
	_, err := a.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS audit_log (
			id          UUID PRIMARY KEY,
			actor       TEXT NOT NULL,
			action      TEXT NOT NULL,
			collection  TEXT NOT NULL,
			object_id   TEXT NOT NULL,
			recorded_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	return err
}

// Record writes one audit entry. Actor is the verified subject id, or
// "anonymous" for public routes.
func (a *AuditLog) Record(ctx context.Context, actor, action, collection, objectID string) error {
	if a == nil {
		return nil
	}
	_, err := a.pool.Exec(ctx,
		`INSERT INTO audit_log (id, actor, action, collection, object_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), actor, action, collection, objectID,
	)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}
