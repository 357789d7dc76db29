package model

import (
	"time"

	"github.com/google/uuid"
)

type LandingPage struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	OrganizationID uuid.UUID  `json:"organization_id" db:"organization_id"`
	Name           string     `json:"name" db:"name"`
	Slug           string     `json:"slug" db:"slug"`
	Domain         *string    `json:"domain" db:"domain"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	CreatedBy      *uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

type APIKey struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	LandingPageID uuid.UUID  `json:"landing_page_id" db:"landing_page_id"`
	Name          string     `json:"name" db:"name"`
	KeyHash       string     `json:"-" db:"key_hash"` // never expose
	ExpiresAt     *time.Time `json:"expires_at" db:"expires_at"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	LastUsedAt    *time.Time `json:"last_used_at" db:"last_used_at"`
	CreatedBy     *uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// Expired reports whether the key has an expiry at or before now.
func (k *APIKey) Expired(now time.Time) bool {
	return k.ExpiresAt != nil && !k.ExpiresAt.After(now)
}

// APIKeyContext is what a validated public API key resolves to.
type APIKeyContext struct {
	KeyID          uuid.UUID
	LandingPageID  uuid.UUID
	OrganizationID uuid.UUID
	Slug           string
}
