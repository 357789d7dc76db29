package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"basegraph.app/backoffice/internal/model"
)

type AccountFilter struct {
	ListParams
	Role     *model.AccountRole
	Status   *model.AccountStatus
	IsLocked *bool
}

type OrganizationFilter struct {
	ListParams
	IsActive *bool
}

// SubmissionFilter is shared by newsletter and contact listings.
// Archived rows are excluded unless IncludeArchived is set.
type SubmissionFilter struct {
	ListParams
	Status          *string
	MarketingOptIn  *bool
	SubmittedFrom   *time.Time
	SubmittedTo     *time.Time
	IncludeArchived bool
}

type LandingPageFilter struct {
	ListParams
	OrganizationID uuid.UUID
	IsActive       *bool
}

// AccountStore defines the contract for account data access
type AccountStore interface {
	List(ctx context.Context, f AccountFilter) ([]model.Account, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	Create(ctx context.Context, account *model.Account) error
	Update(ctx context.Context, account *model.Account) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	List(ctx context.Context, f OrganizationFilter) ([]model.Organization, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	// FindBySubdomain ignores excludeID when it is nil.
	FindBySubdomain(ctx context.Context, subdomain string, excludeID *uuid.UUID) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewsletterStore defines the contract for newsletter submission data access
type NewsletterStore interface {
	List(ctx context.Context, f SubmissionFilter) ([]model.NewsletterSubmission, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.NewsletterSubmission, error)
	// FindActive looks up a non-archived row with the same email in the same
	// organization scope. A nil organization only matches other nil rows.
	FindActive(ctx context.Context, email string, orgID *uuid.UUID, excludeID *uuid.UUID) (*model.NewsletterSubmission, error)
	Create(ctx context.Context, sub *model.NewsletterSubmission) error
	Update(ctx context.Context, sub *model.NewsletterSubmission) error
}

// ContactStore defines the contract for contact submission data access
type ContactStore interface {
	List(ctx context.Context, f SubmissionFilter) ([]model.ContactSubmission, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ContactSubmission, error)
	Create(ctx context.Context, sub *model.ContactSubmission) error
	Update(ctx context.Context, sub *model.ContactSubmission) error
}

// LandingPageStore defines the contract for landing page data access
type LandingPageStore interface {
	List(ctx context.Context, f LandingPageFilter) ([]model.LandingPage, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.LandingPage, error)
	FindBySlug(ctx context.Context, orgID uuid.UUID, slug string, excludeID *uuid.UUID) (*model.LandingPage, error)
	Create(ctx context.Context, page *model.LandingPage) error
	Update(ctx context.Context, page *model.LandingPage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// APIKeyStore defines the contract for landing page API key data access
type APIKeyStore interface {
	ListByLandingPage(ctx context.Context, landingPageID uuid.UUID) ([]model.APIKey, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.APIKey, error)
	GetByHash(ctx context.Context, keyHash string) (*model.APIKey, error)
	Create(ctx context.Context, key *model.APIKey) error
	Update(ctx context.Context, key *model.APIKey) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByLandingPage(ctx context.Context, landingPageID uuid.UUID) error
	TouchLastUsed(ctx context.Context, id uuid.UUID, at time.Time) error
}

// SubmissionStore holds raw landing page submissions from the public API.
type SubmissionStore interface {
	Create(ctx context.Context, sub *model.LandingPageSubmission) error
	CountByType(ctx context.Context, landingPageID uuid.UUID) (map[model.SubmissionType]int64, error)
	ListRecent(ctx context.Context, landingPageID uuid.UUID, limit int) ([]model.LandingPageSubmission, error)
}

// AuditStore is append-only.
type AuditStore interface {
	Create(ctx context.Context, entry *model.AuditEntry) error
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
	Create(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id int64) error
}
