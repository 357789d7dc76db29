package audit

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"basegraph.app/backoffice/common/id"
	"basegraph.app/backoffice/internal/metrics"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/queue"
	"basegraph.app/backoffice/internal/store"
)

// Entry is a mutation to be recorded.
type Entry struct {
	ResourceType model.ResourceType
	ResourceID   string
	Action       model.AuditAction
	ActedBy      string
	Details      map[string]any
}

// Recorder writes audit entries. Failures are logged and counted, never returned,
// so a failed audit write cannot fail the mutation that triggered it.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

type recorder struct {
	audits   store.AuditStore
	producer queue.Producer
	metrics  *metrics.Metrics
}

// NewRecorder builds a Recorder. producer and m may be nil.
func NewRecorder(audits store.AuditStore, producer queue.Producer, m *metrics.Metrics) Recorder {
	return &recorder{audits: audits, producer: producer, metrics: m}
}

func (r *recorder) Record(ctx context.Context, e Entry) {
	entry := &model.AuditEntry{
		ID:           id.New(),
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Action:       e.Action,
		Details:      e.Details,
		ActedBy:      e.ActedBy,
	}

	if err := r.audits.Create(ctx, entry); err != nil {
		r.metrics.AuditFailure("store")
		slog.ErrorContext(ctx, "failed to write audit log",
			"error", err,
			"resource_type", e.ResourceType,
			"resource_id", e.ResourceID,
			"action", e.Action,
			"acted_by", e.ActedBy)
		return
	}

	if r.producer == nil {
		return
	}

	evt := queue.AuditEvent{
		EntryID:      entry.ID,
		ResourceType: string(e.ResourceType),
		ResourceID:   e.ResourceID,
		Action:       string(e.Action),
		ActedBy:      e.ActedBy,
		Details:      e.Details,
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		traceID := sc.TraceID().String()
		evt.TraceID = &traceID
	}

	if err := r.producer.Publish(ctx, evt); err != nil {
		r.metrics.AuditFailure("publish")
		slog.ErrorContext(ctx, "failed to publish audit event",
			"error", err,
			"audit_id", entry.ID,
			"resource_type", e.ResourceType,
			"resource_id", e.ResourceID)
	}
}
