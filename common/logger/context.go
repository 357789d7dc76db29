package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are attached to every log line emitted with a context carrying them.
// Middleware sets the request and actor; services add the resource being mutated.
type LogFields struct {
	RequestID    *string
	ActorID      *string // acting staff member
	ResourceType *string // e.g. "user", "newsletter_submission"
	ResourceID   *string
	LandingPage  *string // public API: landing page resolved from the API key
	Component    string  // e.g. "backoffice.service.account"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, newer non-nil/non-empty values win.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.RequestID != nil {
		result.RequestID = next.RequestID
	}
	if next.ActorID != nil {
		result.ActorID = next.ActorID
	}
	if next.ResourceType != nil {
		result.ResourceType = next.ResourceType
	}
	if next.ResourceID != nil {
		result.ResourceID = next.ResourceID
	}
	if next.LandingPage != nil {
		result.LandingPage = next.LandingPage
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
func Ptr[T any](v T) *T {
	return &v
}
