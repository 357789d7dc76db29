package model

import (
	"time"

	"github.com/google/uuid"
)

type NewsletterStatus string

const (
	NewsletterStatusPending      NewsletterStatus = "pending"
	NewsletterStatusSubscribed   NewsletterStatus = "subscribed"
	NewsletterStatusUnsubscribed NewsletterStatus = "unsubscribed"
	NewsletterStatusBounced      NewsletterStatus = "bounced"
)

type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusOpen       ContactStatus = "open"
	ContactStatusInProgress ContactStatus = "in_progress"
	ContactStatusResolved   ContactStatus = "resolved"
	ContactStatusArchived   ContactStatus = "archived"
)

// Archive holds the soft-archive metadata shared by submissions.
// ArchivedAt, ArchivedBy and ArchivedReason are only meaningful while IsArchived.
type Archive struct {
	IsArchived     bool       `json:"is_archived" db:"is_archived"`
	ArchivedAt     *time.Time `json:"archived_at" db:"archived_at"`
	ArchivedBy     *uuid.UUID `json:"archived_by" db:"archived_by"`
	ArchivedReason *string    `json:"archived_reason" db:"archived_reason"`
}

type NewsletterSubmission struct {
	ID                 uuid.UUID        `json:"id" db:"id"`
	OrganizationID     *uuid.UUID       `json:"organization_id" db:"organization_id"`
	Email              string           `json:"email" db:"email"`
	Name               *string          `json:"name" db:"name"`
	MarketingOptIn     bool             `json:"marketing_opt_in" db:"marketing_opt_in"`
	SubscriptionStatus NewsletterStatus `json:"subscription_status" db:"subscription_status"`
	SubmittedAt        time.Time        `json:"submitted_at" db:"submitted_at"`
	ConfirmedAt        *time.Time       `json:"confirmed_at" db:"confirmed_at"`
	UnsubscribedAt     *time.Time       `json:"unsubscribed_at" db:"unsubscribed_at"`
	BounceReason       *string          `json:"bounce_reason" db:"bounce_reason"`
	Archive
	CreatedBy *uuid.UUID `json:"created_by" db:"created_by"`
	UpdatedBy *uuid.UUID `json:"updated_by" db:"updated_by"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

type ContactSubmission struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	OrganizationID *uuid.UUID     `json:"organization_id" db:"organization_id"`
	Name           *string        `json:"name" db:"name"`
	Email          string         `json:"email" db:"email"`
	MarketingOptIn bool           `json:"marketing_opt_in" db:"marketing_opt_in"`
	Subject        string         `json:"subject" db:"subject"`
	Message        string         `json:"message" db:"message"`
	Metadata       map[string]any `json:"metadata" db:"metadata"`
	Status         ContactStatus  `json:"status" db:"status"`
	SubmittedAt    time.Time      `json:"submitted_at" db:"submitted_at"`
	RespondedAt    *time.Time     `json:"responded_at" db:"responded_at"`
	LastFollowUpAt *time.Time     `json:"last_follow_up_at" db:"last_follow_up_at"`
	Archive
	CreatedBy *uuid.UUID `json:"created_by" db:"created_by"`
	UpdatedBy *uuid.UUID `json:"updated_by" db:"updated_by"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

type SubmissionType string

const (
	SubmissionTypeNewsletter SubmissionType = "newsletter"
	SubmissionTypeContact    SubmissionType = "contact"
	SubmissionTypeAnalytics  SubmissionType = "analytics"
	SubmissionTypeCustom     SubmissionType = "custom"
)

// LandingPageSubmission is a raw payload captured through the public API.
type LandingPageSubmission struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	LandingPageID  uuid.UUID      `json:"landing_page_id" db:"landing_page_id"`
	SubmissionType SubmissionType `json:"submission_type" db:"submission_type"`
	Data           map[string]any `json:"data" db:"data"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

type SubmissionAnalytics struct {
	TotalSubmissions  int64                    `json:"total_submissions"`
	ByType            map[SubmissionType]int64 `json:"by_type"`
	RecentSubmissions []LandingPageSubmission  `json:"recent_submissions"`
}
