package service

import (
	"time"

	"github.com/google/uuid"

	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/schema"
)

// applyArchive moves a submission between live and archived and returns the
// audit action for the change. Re-archiving, or omitting the flag, leaves the
// existing metadata untouched.
func applyArchive(a *model.Archive, in schema.ArchiveFields, actor uuid.UUID, at time.Time) model.AuditAction {
	if in.Archive == nil {
		return model.AuditActionUpdate
	}

	switch {
	case *in.Archive && !a.IsArchived:
		a.IsArchived = true
		a.ArchivedAt = &at
		a.ArchivedBy = &actor
		a.ArchivedReason = in.ArchiveReason
		return model.AuditActionArchive
	case !*in.Archive && a.IsArchived:
		a.IsArchived = false
		a.ArchivedAt = nil
		a.ArchivedBy = nil
		a.ArchivedReason = nil
		return model.AuditActionUnarchive
	default:
		return model.AuditActionUpdate
	}
}
