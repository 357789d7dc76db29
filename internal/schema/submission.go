package schema

import (
	"strings"

	"basegraph.app/backoffice/internal/model"
)

// ArchiveFields drive the soft-archive transition on submission updates.
// A nil Archive leaves the existing archive metadata untouched.
type ArchiveFields struct {
	Archive       *bool   `json:"archive"`
	ArchiveReason *string `json:"archiveReason" validate:"omitempty,max=400" msg:"max=Archive reason must be under 400 characters"`
}

type NewsletterFields struct {
	OrganizationID     *string                `json:"organizationId" validate:"omitempty,uuid"`
	Email              string                 `json:"email" validate:"min=3,email,max=255" msg:"min=Email is required;email=Enter a valid email address"`
	Name               *string                `json:"name" validate:"omitempty,min=1,max=120" msg:"max=Name must be under 120 characters"`
	MarketingOptIn     bool                   `json:"marketingOptIn"`
	SubscriptionStatus model.NewsletterStatus `json:"subscriptionStatus" validate:"required,oneof=pending subscribed unsubscribed bounced"`
	ConfirmedAt        *string                `json:"confirmedAt" validate:"omitempty,timestamp"`
	UnsubscribedAt     *string                `json:"unsubscribedAt" validate:"omitempty,timestamp"`
	BounceReason       *string                `json:"bounceReason" validate:"omitempty,max=400" msg:"max=Bounce reason is too long"`
}

func (f *NewsletterFields) normalize() {
	trimPtr(&f.OrganizationID)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	trimPtr(&f.Name)
	trimPtr(&f.ConfirmedAt)
	trimPtr(&f.UnsubscribedAt)
	trimPtr(&f.BounceReason)
}

type CreateNewsletterInput struct {
	NewsletterFields
	SubmittedAt *string `json:"submittedAt" validate:"omitempty,timestamp"`
}

func (in *CreateNewsletterInput) Normalize() {
	in.normalize()
	trimPtr(&in.SubmittedAt)
}

type UpdateNewsletterInput struct {
	ID string `json:"id" validate:"required,uuid"`
	NewsletterFields
	ArchiveFields
}

func (in *UpdateNewsletterInput) Normalize() {
	trim(&in.ID)
	in.normalize()
	trimPtr(&in.ArchiveReason)
}

type NewsletterQuery struct {
	Pagination
	DateRange
	Status          *model.NewsletterStatus `form:"status" validate:"omitempty,oneof=pending subscribed unsubscribed bounced"`
	MarketingOptIn  *bool                   `form:"marketingOptIn"`
	IncludeArchived bool                    `form:"includeArchived"`
	SortBy          string                  `form:"sortBy" validate:"oneof=submitted_at email subscription_status marketing_opt_in created_at"`
	SortDir         string                  `form:"sortDir" validate:"oneof=asc desc"`
}

func (q *NewsletterQuery) Normalize() {
	q.Pagination.normalize()
	q.DateRange.normalize()
	if q.SortBy == "" {
		q.SortBy = "submitted_at"
	}
	if q.SortDir == "" {
		q.SortDir = "desc"
	}
}

type ContactFields struct {
	OrganizationID *string             `json:"organizationId" validate:"omitempty,uuid"`
	Name           *string             `json:"name" validate:"omitempty,min=1,max=120" msg:"max=Name must be under 120 characters"`
	Email          string              `json:"email" validate:"required,email,max=255" msg:"required=Enter a valid email address;email=Enter a valid email address"`
	MarketingOptIn bool                `json:"marketingOptIn"`
	Subject        string              `json:"subject" validate:"min=1,max=180" msg:"min=Subject is required;max=Subject must be under 180 characters"`
	Message        string              `json:"message" validate:"min=1,max=5000" msg:"min=Message is required;max=Message must be under 5000 characters"`
	Metadata       map[string]any      `json:"metadata"`
	Status         model.ContactStatus `json:"status" validate:"oneof=new open in_progress resolved archived"`
	RespondedAt    *string             `json:"respondedAt" validate:"omitempty,timestamp"`
	LastFollowUpAt *string             `json:"lastFollowUpAt" validate:"omitempty,timestamp"`
}

func (f *ContactFields) normalize() {
	trimPtr(&f.OrganizationID)
	trimPtr(&f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	trim(&f.Subject)
	trim(&f.Message)
	if f.Status == "" {
		f.Status = model.ContactStatusNew
	}
	trimPtr(&f.RespondedAt)
	trimPtr(&f.LastFollowUpAt)
}

type CreateContactInput struct {
	ContactFields
	SubmittedAt *string `json:"submittedAt" validate:"omitempty,timestamp"`
}

func (in *CreateContactInput) Normalize() {
	in.normalize()
	trimPtr(&in.SubmittedAt)
}

type UpdateContactInput struct {
	ID string `json:"id" validate:"required,uuid"`
	ContactFields
	ArchiveFields
}

func (in *UpdateContactInput) Normalize() {
	trim(&in.ID)
	in.normalize()
	trimPtr(&in.ArchiveReason)
}

type ContactQuery struct {
	Pagination
	DateRange
	Status          *model.ContactStatus `form:"status" validate:"omitempty,oneof=new open in_progress resolved archived"`
	MarketingOptIn  *bool                `form:"marketingOptIn"`
	IncludeArchived bool                 `form:"includeArchived"`
	SortBy          string               `form:"sortBy" validate:"oneof=submitted_at email status created_at"`
	SortDir         string               `form:"sortDir" validate:"oneof=asc desc"`
}

func (q *ContactQuery) Normalize() {
	q.Pagination.normalize()
	q.DateRange.normalize()
	if q.SortBy == "" {
		q.SortBy = "submitted_at"
	}
	if q.SortDir == "" {
		q.SortDir = "desc"
	}
}
