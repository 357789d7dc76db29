package model

import "time"

type ResourceType string

const (
	ResourceTypeUser                  ResourceType = "user"
	ResourceTypeOrganization          ResourceType = "organization"
	ResourceTypeNewsletterSubmission  ResourceType = "newsletter_submission"
	ResourceTypeContactSubmission     ResourceType = "contact_submission"
	ResourceTypeLandingPage           ResourceType = "landing_page"
	ResourceTypeAPIKey                ResourceType = "api_key"
	ResourceTypeLandingPageSubmission ResourceType = "landing_page_submission"
)

type AuditAction string

const (
	AuditActionCreate               AuditAction = "create"
	AuditActionUpdate               AuditAction = "update"
	AuditActionDelete               AuditAction = "delete"
	AuditActionArchive              AuditAction = "archive"
	AuditActionUnarchive            AuditAction = "unarchive"
	AuditActionDisable              AuditAction = "disable"
	AuditActionLock                 AuditAction = "lock"
	AuditActionUnlock               AuditAction = "unlock"
	AuditActionPasswordReset        AuditAction = "password_reset"
	AuditActionRequirePasswordReset AuditAction = "require_password_reset"
)

// AuditEntry is an append-only record of a mutation.
type AuditEntry struct {
	ID           int64          `json:"id,string" db:"id"`
	ResourceType ResourceType   `json:"resource_type" db:"resource_type"`
	ResourceID   string         `json:"resource_id" db:"resource_id"`
	Action       AuditAction    `json:"action" db:"action"`
	Details      map[string]any `json:"details" db:"details"`
	ActedBy      string         `json:"acted_by" db:"acted_by"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}
