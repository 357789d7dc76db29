package schema

import (
	"strings"

	"basegraph.app/backoffice/common"
	"basegraph.app/backoffice/internal/model"
)

const maxSlugLength = 100

type LandingPageFields struct {
	Name     string  `json:"name" validate:"min=1,max=200" msg:"min=Name is required;max=Name must be under 200 characters"`
	Slug     string  `json:"slug" validate:"min=1,max=100,slug" msg:"min=Slug is required;max=Slug must be under 100 characters;slug=Slug can only contain lowercase letters, numbers, and hyphens"`
	Domain   *string `json:"domain" validate:"omitempty,max=255,domain" msg:"max=Domain must be under 255 characters;domain=Enter a valid domain name"`
	IsActive *bool   `json:"isActive"`
}

func (f *LandingPageFields) normalize() {
	trim(&f.Name)
	f.Slug = strings.TrimSpace(f.Slug)
	trimPtr(&f.Domain)
}

type CreateLandingPageInput struct {
	OrganizationID string `json:"organizationId" validate:"required,uuid"`
	LandingPageFields
}

// Normalize derives the slug from the name when none is given.
func (in *CreateLandingPageInput) Normalize() {
	trim(&in.OrganizationID)
	in.normalize()
	if in.Slug == "" {
		in.Slug = common.Slugify(in.Name, maxSlugLength)
	}
	in.IsActive = defaultTrue(in.IsActive)
}

type UpdateLandingPageInput struct {
	ID string `json:"id" validate:"required,uuid"`
	LandingPageFields
}

func (in *UpdateLandingPageInput) Normalize() {
	trim(&in.ID)
	in.normalize()
}

type LandingPageQuery struct {
	Pagination
	IsActive *bool  `form:"isActive"`
	SortBy   string `form:"sortBy" validate:"oneof=name slug created_at updated_at"`
	SortDir  string `form:"sortDir" validate:"oneof=asc desc"`
}

func (q *LandingPageQuery) Normalize() {
	q.Pagination.normalize()
	if q.SortBy == "" {
		q.SortBy = "created_at"
	}
	if q.SortDir == "" {
		q.SortDir = "desc"
	}
}

type CreateAPIKeyInput struct {
	LandingPageID string  `json:"landingPageId" validate:"required,uuid"`
	Name          string  `json:"name" validate:"min=1,max=100" msg:"min=Name is required;max=Name must be under 100 characters"`
	ExpiresAt     *string `json:"expiresAt" validate:"omitempty,timestamp"`
}

func (in *CreateAPIKeyInput) Normalize() {
	trim(&in.LandingPageID)
	trim(&in.Name)
	trimPtr(&in.ExpiresAt)
}

type UpdateAPIKeyInput struct {
	ID        string  `json:"id" validate:"required,uuid"`
	Name      string  `json:"name" validate:"min=1,max=100" msg:"min=Name is required;max=Name must be under 100 characters"`
	ExpiresAt *string `json:"expiresAt" validate:"omitempty,timestamp"`
	IsActive  *bool   `json:"isActive"`
}

func (in *UpdateAPIKeyInput) Normalize() {
	trim(&in.ID)
	trim(&in.Name)
	trimPtr(&in.ExpiresAt)
}

type PublicNewsletterInput struct {
	Email          string  `json:"email" validate:"required,email,max=255" msg:"required=Enter a valid email address;email=Enter a valid email address"`
	Name           *string `json:"name" validate:"omitempty,max=120" msg:"max=Name must be under 120 characters"`
	MarketingOptIn bool    `json:"marketingOptIn"`
}

func (in *PublicNewsletterInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	trimPtr(&in.Name)
}

type PublicContactInput struct {
	Name           *string `json:"name" validate:"omitempty,max=120" msg:"max=Name must be under 120 characters"`
	Email          string  `json:"email" validate:"required,email,max=255" msg:"required=Enter a valid email address;email=Enter a valid email address"`
	Subject        string  `json:"subject" validate:"min=1,max=180" msg:"min=Subject is required;max=Subject must be under 180 characters"`
	Message        string  `json:"message" validate:"min=1,max=5000" msg:"min=Message is required;max=Message must be under 5000 characters"`
	MarketingOptIn bool    `json:"marketingOptIn"`
}

func (in *PublicContactInput) Normalize() {
	trimPtr(&in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	trim(&in.Subject)
	trim(&in.Message)
}

type PublicCustomSubmissionInput struct {
	Data           map[string]any       `json:"data" validate:"required"`
	SubmissionType model.SubmissionType `json:"submissionType" validate:"required,oneof=newsletter contact analytics custom"`
}
