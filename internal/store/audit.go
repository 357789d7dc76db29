package store

import (
	"context"

	"basegraph.app/backoffice/core/db"
	"basegraph.app/backoffice/internal/model"
)

type auditStore struct {
	conn db.DBTX
}

func newAuditStore(conn db.DBTX) AuditStore {
	return &auditStore{conn: conn}
}

func (s *auditStore) Create(ctx context.Context, entry *model.AuditEntry) error {
	details := entry.Details
	if details == nil {
		details = map[string]any{}
	}
	q := psql.Insert("audit_logs").SetMap(map[string]any{
		"id":            entry.ID,
		"resource_type": entry.ResourceType,
		"resource_id":   entry.ResourceID,
		"action":        entry.Action,
		"details":       details,
		"acted_by":      entry.ActedBy,
	}).Suffix("RETURNING created_at")

	query, args, err := q.ToSql()
	if err != nil {
		return err
	}
	return mapError(s.conn.QueryRow(ctx, query, args...).Scan(&entry.CreatedAt))
}
