package schema

import (
	"strings"

	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/model"
)

// AccountFields are shared by create and update; both require the full object.
type AccountFields struct {
	FullName              string              `json:"fullName" validate:"min=2,max=120" msg:"min=Name must be at least 2 characters;max=Name must be under 120 characters"`
	Email                 string              `json:"email" validate:"required,email,max=255" msg:"required=Enter a valid email address;email=Enter a valid email address"`
	Role                  model.AccountRole   `json:"role" validate:"required,oneof=staff user"`
	Status                model.AccountStatus `json:"status" validate:"required,oneof=pending active disabled"`
	IsLocked              bool                `json:"isLocked"`
	PasswordResetRequired bool                `json:"passwordResetRequired"`
	OnboardingNote        *string             `json:"onboardingNote" validate:"omitempty,max=2000" msg:"max=Onboarding note is too long"`
	DisabledReason        *string             `json:"disabledReason" validate:"omitempty,max=500" msg:"max=Disabled reason must be under 500 characters"`
	SendOnboardingEmail   bool                `json:"sendOnboardingEmail"`
	Password              *string             `json:"password" validate:"omitempty,min=12,max=128,password" msg:"min=Password must be at least 12 characters;password=Password must include a mix of uppercase, lowercase, and numbers;max=Password must be under 128 characters"`
}

func (f *AccountFields) normalize() {
	trim(&f.FullName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	trimPtr(&f.OnboardingNote)
	trimPtr(&f.DisabledReason)
	trimPtr(&f.Password)
}

type CreateAccountInput struct {
	AccountFields
}

func (in *CreateAccountInput) Normalize() {
	in.normalize()
}

func (in *CreateAccountInput) Refine(fe apperr.FieldErrors) {
	if in.SendOnboardingEmail {
		// the invitation flow lets the user pick their own password
		in.Password = nil
		return
	}
	if in.Password == nil {
		fe.Add("password", "Provide a password or enable onboarding email to send a set-password link.")
	}
}

type UpdateAccountInput struct {
	ID string `json:"id" validate:"required,uuid"`
	AccountFields
	ConfirmDestructive *bool `json:"confirmDestructive"`
}

func (in *UpdateAccountInput) Normalize() {
	trim(&in.ID)
	in.normalize()
}

// Confirmed reports whether the caller acknowledged a destructive change.
func (in *UpdateAccountInput) Confirmed() bool {
	return in.ConfirmDestructive != nil && *in.ConfirmDestructive
}

type AccountQuery struct {
	Pagination
	Role     *model.AccountRole   `form:"role" validate:"omitempty,oneof=staff user"`
	Status   *model.AccountStatus `form:"status" validate:"omitempty,oneof=pending active disabled"`
	IsLocked *bool                `form:"isLocked"`
	SortBy   string               `form:"sortBy" validate:"oneof=full_name email role status last_login_at created_at"`
	SortDir  string               `form:"sortDir" validate:"oneof=asc desc"`
}

func (q *AccountQuery) Normalize() {
	q.Pagination.normalize()
	if q.SortBy == "" {
		q.SortBy = "created_at"
	}
	if q.SortDir == "" {
		q.SortDir = "desc"
	}
}
