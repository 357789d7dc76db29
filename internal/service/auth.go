package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"basegraph.app/backoffice/common/id"
	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/identity"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/store"
)

const sessionTTL = 7 * 24 * time.Hour

type AuthService interface {
	GetAuthorizationURL(state string) (string, error)
	HandleCallback(ctx context.Context, code string) (*model.Account, *model.Session, error)
	ValidateSession(ctx context.Context, sessionID int64) (*model.Account, error)
	Logout(ctx context.Context, sessionID int64) error
}

type authService struct {
	accounts store.AccountStore
	sessions store.SessionStore
	identity identity.Provider
}

func NewAuthService(accounts store.AccountStore, sessions store.SessionStore, provider identity.Provider) AuthService {
	return &authService{
		accounts: accounts,
		sessions: sessions,
		identity: provider,
	}
}

func (s *authService) GetAuthorizationURL(state string) (string, error) {
	url, err := s.identity.AuthorizationURL(state)
	if err != nil {
		return "", apperr.Repository("Failed to generate authorization URL", err)
	}
	return url, nil
}

// HandleCallback signs in an existing account. Accounts are provisioned by
// staff, so an unknown email is rejected rather than created.
func (s *authService) HandleCallback(ctx context.Context, code string) (*model.Account, *model.Session, error) {
	user, err := s.identity.AuthenticateWithCode(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to authenticate with code", "error", err)
		return nil, nil, apperr.Unauthorized("Invalid authorization code")
	}

	account, err := s.accounts.GetByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "sign-in for unknown email", "identity_user_id", user.ID)
			return nil, nil, apperr.Forbidden("No account exists for this email")
		}
		return nil, nil, apperr.Repository("Failed to load user", err)
	}

	if err := signInAllowed(account); err != nil {
		return nil, nil, err
	}

	if account.IdentityUserID == nil || account.Status == model.AccountStatusPending {
		account.IdentityUserID = &user.ID
		if account.Status == model.AccountStatusPending {
			account.Status = model.AccountStatusActive
		}
		if err := s.accounts.Update(ctx, account); err != nil {
			return nil, nil, apperr.Repository("Failed to link identity", err)
		}
		slog.InfoContext(ctx, "linked identity to account", "account_id", account.ID, "identity_user_id", user.ID)
	}

	at := now()
	if err := s.accounts.TouchLastLogin(ctx, account.ID, at); err != nil {
		slog.WarnContext(ctx, "failed to record last login", "error", err, "account_id", account.ID)
	} else {
		account.LastLoginAt = &at
	}

	session := &model.Session{
		ID:        id.New(),
		UserID:    account.ID,
		ExpiresAt: at.Add(sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session", "error", err, "account_id", account.ID)
		return nil, nil, apperr.Repository("Failed to create session", fmt.Errorf("creating session: %w", err))
	}

	slog.InfoContext(ctx, "account authenticated",
		"account_id", account.ID,
		"session_id", session.ID)

	return account, session, nil
}

func (s *authService) ValidateSession(ctx context.Context, sessionID int64) (*model.Account, error) {
	session, err := s.sessions.GetValid(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthorized("Session expired")
		}
		return nil, apperr.Repository("Failed to load session", err)
	}

	account, err := s.accounts.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthorized("Unauthorized")
		}
		return nil, apperr.Repository("Failed to load user", err)
	}

	if err := signInAllowed(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *authService) Logout(ctx context.Context, sessionID int64) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperr.Repository("Failed to delete session", err)
	}
	return nil
}

func signInAllowed(a *model.Account) error {
	switch {
	case a.Status == model.AccountStatusDisabled:
		return apperr.Forbidden("Account is disabled")
	case a.IsLocked:
		return apperr.Forbidden("Account is locked")
	default:
		return nil
	}
}
