package identity

import (
	"context"
	"errors"
	"time"

	"basegraph.app/backoffice/internal/model"
)

var ErrInvalidCode = errors.New("invalid authorization code")

// User is the provider-side view of an account.
type User struct {
	ID           string
	Email        string
	FullName     string
	LastSignInAt *time.Time
}

type CreateUserParams struct {
	Email         string
	FullName      string
	Password      string
	EmailVerified bool
}

// UpdateUserParams leaves nil fields untouched on the provider.
type UpdateUserParams struct {
	UserID   string
	FullName *string
	Password *string
}

// Provider is the external identity system accounts are mirrored to.
type Provider interface {
	CreateUser(ctx context.Context, params CreateUserParams) (*User, error)
	SendInvitation(ctx context.Context, email string, role model.AccountRole) error
	UpdateUser(ctx context.Context, params UpdateUserParams) error
	SetRole(ctx context.Context, userID string, role model.AccountRole) error
	GetUser(ctx context.Context, userID string) (*User, error)
	DeleteUser(ctx context.Context, userID string) error

	AuthorizationURL(state string) (string, error)
	AuthenticateWithCode(ctx context.Context, code string) (*User, error)
}
