package model

import (
	"time"

	"github.com/google/uuid"
)

type AccountRole string

const (
	AccountRoleStaff AccountRole = "staff"
	AccountRoleUser  AccountRole = "user"
)

type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusActive   AccountStatus = "active"
	AccountStatusDisabled AccountStatus = "disabled"
)

// DefaultDisabledReason is stamped when an account is disabled without a reason.
const DefaultDisabledReason = "Account disabled by administrator without a provided reason."

// Account is a console user. IdentityUserID links it to the identity provider
// and stays nil for invited users until their first sign-in.
type Account struct {
	ID                    uuid.UUID     `json:"id" db:"id"`
	IdentityUserID        *string       `json:"identity_user_id,omitempty" db:"identity_user_id"`
	Email                 string        `json:"email" db:"email"`
	FullName              string        `json:"full_name" db:"full_name"`
	Role                  AccountRole   `json:"role" db:"role"`
	Status                AccountStatus `json:"status" db:"status"`
	IsLocked              bool          `json:"is_locked" db:"is_locked"`
	LockedAt              *time.Time    `json:"locked_at" db:"locked_at"`
	PasswordResetRequired bool          `json:"password_reset_required" db:"password_reset_required"`
	OnboardingNote        *string       `json:"onboarding_note" db:"onboarding_note"`
	DisabledReason        *string       `json:"disabled_reason" db:"disabled_reason"`
	InvitedAt             *time.Time    `json:"invited_at" db:"invited_at"`
	LastLoginAt           *time.Time    `json:"last_login_at" db:"last_login_at"`
	CreatedBy             *uuid.UUID    `json:"created_by" db:"created_by"`
	UpdatedBy             *uuid.UUID    `json:"updated_by" db:"updated_by"`
	CreatedAt             time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at" db:"updated_at"`
}

func (a *Account) IsStaff() bool {
	return a.Role == AccountRoleStaff
}
