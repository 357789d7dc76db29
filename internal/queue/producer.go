package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// AuditEvent is the stream message published after an audit row is written.
type AuditEvent struct {
	EntryID      int64
	ResourceType string
	ResourceID   string
	Action       string
	ActedBy      string
	Details      map[string]any
	TraceID      *string
}

type Producer interface {
	Publish(ctx context.Context, evt AuditEvent) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

// Fields flattens the event into stream values.
func (e AuditEvent) Fields() (map[string]any, error) {
	fields := map[string]any{
		"entry_id":      e.EntryID,
		"resource_type": e.ResourceType,
		"resource_id":   e.ResourceID,
		"action":        e.Action,
		"acted_by":      e.ActedBy,
	}

	if len(e.Details) > 0 {
		details, err := json.Marshal(e.Details)
		if err != nil {
			return nil, fmt.Errorf("encoding details: %w", err)
		}
		fields["details"] = string(details)
	}

	if e.TraceID != nil && *e.TraceID != "" {
		fields["trace_id"] = *e.TraceID
	}
	return fields, nil
}

func (p *redisProducer) Publish(ctx context.Context, evt AuditEvent) error {
	fields, err := evt.Fields()
	if err != nil {
		return err
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}

	p.logger.DebugContext(ctx, "published audit event",
		"entry_id", evt.EntryID,
		"resource_type", evt.ResourceType,
		"resource_id", evt.ResourceID,
		"action", evt.Action)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
