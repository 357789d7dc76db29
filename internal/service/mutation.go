package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"basegraph.app/backoffice/common/logger"
	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/audit"
	"basegraph.app/backoffice/internal/metrics"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/store"
)

func now() time.Time {
	return time.Now().UTC()
}

// Sinks are where every write path reports: the audit trail and metrics.
// A nil Metrics is allowed.
type Sinks struct {
	Audit   audit.Recorder
	Metrics *metrics.Metrics
}

// begin opens a span for a write and tags the context with the resource.
// The returned func must be deferred with a pointer to the final action and error.
func (m Sinks) begin(ctx context.Context, resource model.ResourceType, op string, resourceID string) (context.Context, func(action *model.AuditAction, err *error)) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ResourceType: logger.Ptr(string(resource)),
	})
	if resourceID != "" {
		ctx = logger.WithLogFields(ctx, logger.LogFields{ResourceID: logger.Ptr(resourceID)})
	}

	span := logger.StartSpan(ctx, "service."+string(resource)+"."+op,
		attribute.String("resource.type", string(resource)),
		attribute.String("resource.id", resourceID))

	return span.Context(), func(action *model.AuditAction, err *error) {
		span.RecordError(*err)
		m.Metrics.Mutation(string(resource), string(*action), *err)
		span.End()
	}
}

func (m Sinks) record(ctx context.Context, actor model.Principal, resource model.ResourceType, resourceID string, action model.AuditAction, details map[string]any) {
	m.Audit.Record(ctx, audit.Entry{
		ResourceType: resource,
		ResourceID:   resourceID,
		Action:       action,
		ActedBy:      actor.ID.String(),
		Details:      details,
	})
}

// parseID turns a malformed id into the resource's not-found error.
func parseID(raw, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.NotFound(notFound)
	}
	return id, nil
}

// parseOptionalID expects an already validated value.
func parseOptionalID(raw *string) *uuid.UUID {
	if raw == nil {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}

// loadErr maps a lookup failure to a 404 or a repository error.
func loadErr(err error, notFound, failure string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(notFound)
	}
	return apperr.Repository(failure, err)
}

// writeErr maps a failed write. A missing reference points at a row named in
// the payload; any other not-found means the target itself is gone.
func writeErr(err error, notFound, missingRef, failure string) error {
	if errors.Is(err, store.ErrMissingReference) {
		return apperr.NotFound(missingRef)
	}
	return loadErr(err, notFound, failure)
}

func listParams(p schema.Pagination, sortBy, sortDir string) store.ListParams {
	return store.ListParams{
		Search:   p.Search,
		Page:     p.Page,
		PageSize: p.PageSize,
		SortBy:   sortBy,
		SortDir:  sortDir,
	}
}

func page[T any](items []T, total int64, p schema.Pagination) *model.Page[T] {
	return &model.Page[T]{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize}
}

func newID() uuid.UUID {
	return uuid.New()
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
