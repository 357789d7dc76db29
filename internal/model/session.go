package model

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	ID        int64     `json:"id,string" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
}

// Principal is the authenticated staff member performing a request.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  AccountRole
}

func PrincipalFor(a *Account) Principal {
	return Principal{ID: a.ID, Email: a.Email, Role: a.Role}
}
