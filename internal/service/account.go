package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/identity"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/store"
)

const (
	accountNotFound    = "User not found"
	emailTaken         = "Email address already in use"
	emailTakenDetail   = "This email address is already associated with an account."
	emailImmutable     = "Email address cannot be changed once the account is created."
	confirmDestructive = "Confirm destructive changes before continuing."
)

type AccountService interface {
	List(ctx context.Context, q schema.AccountQuery) (*model.Page[model.Account], error)
	Get(ctx context.Context, id string) (*model.Account, error)
	Create(ctx context.Context, actor model.Principal, in schema.CreateAccountInput) (*model.Account, error)
	Update(ctx context.Context, actor model.Principal, in schema.UpdateAccountInput) (*model.Account, error)
}

type accountService struct {
	Sinks
	accounts         store.AccountStore
	identity         identity.Provider
	lastLoginWorkers int
}

func NewAccountService(accounts store.AccountStore, provider identity.Provider, lastLoginWorkers int, sinks Sinks) AccountService {
	if lastLoginWorkers <= 0 {
		lastLoginWorkers = defaultLastLoginWorkers
	}
	return &accountService{
		Sinks:            sinks,
		accounts:         accounts,
		identity:         provider,
		lastLoginWorkers: lastLoginWorkers,
	}
}

func (s *accountService) List(ctx context.Context, q schema.AccountQuery) (*model.Page[model.Account], error) {
	if err := schema.Validate(&q); err != nil {
		return nil, err
	}

	items, total, err := s.accounts.List(ctx, store.AccountFilter{
		ListParams: listParams(q.Pagination, q.SortBy, q.SortDir),
		Role:       q.Role,
		Status:     q.Status,
		IsLocked:   q.IsLocked,
	})
	if err != nil {
		return nil, apperr.Repository("Failed to load users", err)
	}

	return page(s.withLastLogin(ctx, items), total, q.Pagination), nil
}

func (s *accountService) Get(ctx context.Context, rawID string) (*model.Account, error) {
	id, err := parseID(rawID, accountNotFound)
	if err != nil {
		return nil, err
	}
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, loadErr(err, accountNotFound, "Failed to load user")
	}
	return account, nil
}

func (s *accountService) Create(ctx context.Context, actor model.Principal, in schema.CreateAccountInput) (_ *model.Account, err error) {
	action := model.AuditActionCreate
	ctx, done := s.begin(ctx, model.ResourceTypeUser, "create", "")
	defer done(&action, &err)

	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	_, err = s.accounts.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperr.Conflict(emailTaken, "email", emailTakenDetail)
	case !errors.Is(err, store.ErrNotFound):
		return nil, apperr.Repository("Failed to check email", err)
	}

	at := now()
	account := &model.Account{
		ID:                    newID(),
		Email:                 in.Email,
		FullName:              in.FullName,
		Role:                  in.Role,
		Status:                in.Status,
		IsLocked:              in.IsLocked,
		PasswordResetRequired: in.PasswordResetRequired,
		OnboardingNote:        in.OnboardingNote,
		DisabledReason:        in.DisabledReason,
		CreatedBy:             uuidPtr(actor.ID),
		UpdatedBy:             uuidPtr(actor.ID),
	}
	if in.IsLocked {
		account.LockedAt = &at
	}

	if in.SendOnboardingEmail {
		if err := s.identity.SendInvitation(ctx, in.Email, in.Role); err != nil {
			return nil, apperr.Repository("Failed to send onboarding invitation", err)
		}
		account.InvitedAt = &at
	} else {
		user, err := s.identity.CreateUser(ctx, identity.CreateUserParams{
			Email:         in.Email,
			FullName:      in.FullName,
			Password:      *in.Password,
			EmailVerified: in.Status == model.AccountStatusActive,
		})
		if err != nil {
			return nil, apperr.Repository("Failed to create user", err)
		}
		account.IdentityUserID = &user.ID

		if err := s.identity.SetRole(ctx, user.ID, in.Role); err != nil {
			s.discardIdentity(ctx, user.ID)
			return nil, apperr.Repository("Failed to create user", err)
		}
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if account.IdentityUserID != nil {
			s.discardIdentity(ctx, *account.IdentityUserID)
		}
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict(emailTaken, "email", emailTakenDetail)
		}
		return nil, apperr.Repository("Failed to persist user profile", err)
	}

	slog.InfoContext(ctx, "account created",
		"account_id", account.ID,
		"role", account.Role,
		"invited", in.SendOnboardingEmail)

	s.record(ctx, actor, model.ResourceTypeUser, account.ID.String(), action, map[string]any{
		"role":                account.Role,
		"status":              account.Status,
		"sendOnboardingEmail": in.SendOnboardingEmail,
	})
	return account, nil
}

func (s *accountService) Update(ctx context.Context, actor model.Principal, in schema.UpdateAccountInput) (_ *model.Account, err error) {
	action := model.AuditActionUpdate
	ctx, done := s.begin(ctx, model.ResourceTypeUser, "update", in.ID)
	defer done(&action, &err)

	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	id, err := parseID(in.ID, accountNotFound)
	if err != nil {
		return nil, err
	}
	existing, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, loadErr(err, accountNotFound, "Failed to load user")
	}

	if in.Email != strings.ToLower(existing.Email) {
		return nil, apperr.ImmutableField(emailImmutable, apperr.FieldErrors{
			"email": {"Email address is immutable."},
		})
	}

	change := classifyAccountChange(existing, &in)
	if change.destructive() && !in.Confirmed() {
		return nil, apperr.DestructiveChange(confirmDestructive, apperr.FieldErrors{
			"confirmDestructive": {"Please acknowledge this change before submitting."},
		})
	}

	if in.Password != nil && existing.IdentityUserID == nil {
		return nil, apperr.Conflict("Account has no sign-in identity yet", "password",
			"This user has not accepted their invitation. Resend the onboarding email instead.")
	}

	updated := applyAccountUpdate(existing, &in, actor, now())
	if err := s.accounts.Update(ctx, updated); err != nil {
		return nil, loadErr(err, accountNotFound, "Failed to update user")
	}

	if err := s.syncIdentity(ctx, existing, &in); err != nil {
		s.restore(ctx, existing)
		return nil, apperr.Repository("Failed to update authentication profile", err)
	}

	if in.SendOnboardingEmail {
		if err := s.identity.SendInvitation(ctx, existing.Email, in.Role); err != nil {
			return nil, apperr.Repository("Failed to resend onboarding email", err)
		}
	}

	action = change.action()
	details := map[string]any{
		"roleChanged":       existing.Role != in.Role,
		"statusChanged":     existing.Status != in.Status,
		"lockedChanged":     existing.IsLocked != in.IsLocked,
		"destructiveAction": nil,
	}
	if action != model.AuditActionUpdate {
		details["destructiveAction"] = string(action)
	}
	s.record(ctx, actor, model.ResourceTypeUser, updated.ID.String(), action, details)

	return updated, nil
}

// accountChange captures which sensitive transitions an update performs.
type accountChange struct {
	disabling       bool
	locking         bool
	unlocking       bool
	requiringReset  bool
	settingPassword bool
}

func classifyAccountChange(existing *model.Account, in *schema.UpdateAccountInput) accountChange {
	return accountChange{
		disabling:       in.Status == model.AccountStatusDisabled && existing.Status != model.AccountStatusDisabled,
		locking:         in.IsLocked && !existing.IsLocked,
		unlocking:       !in.IsLocked && existing.IsLocked,
		requiringReset:  in.PasswordResetRequired && !existing.PasswordResetRequired,
		settingPassword: in.Password != nil && *in.Password != "",
	}
}

// destructive reports whether the update needs explicit confirmation.
func (c accountChange) destructive() bool {
	return c.disabling || c.locking || c.requiringReset || c.settingPassword
}

// action picks the audit action, most severe first.
func (c accountChange) action() model.AuditAction {
	switch {
	case c.disabling:
		return model.AuditActionDisable
	case c.locking:
		return model.AuditActionLock
	case c.unlocking:
		return model.AuditActionUnlock
	case c.settingPassword:
		return model.AuditActionPasswordReset
	case c.requiringReset:
		return model.AuditActionRequirePasswordReset
	default:
		return model.AuditActionUpdate
	}
}

func applyAccountUpdate(existing *model.Account, in *schema.UpdateAccountInput, actor model.Principal, at time.Time) *model.Account {
	updated := *existing
	updated.FullName = in.FullName
	updated.Role = in.Role
	updated.Status = in.Status
	updated.IsLocked = in.IsLocked
	updated.PasswordResetRequired = in.PasswordResetRequired
	updated.OnboardingNote = in.OnboardingNote
	updated.DisabledReason = in.DisabledReason
	updated.UpdatedBy = uuidPtr(actor.ID)

	if in.IsLocked != existing.IsLocked {
		if in.IsLocked {
			updated.LockedAt = &at
		} else {
			updated.LockedAt = nil
		}
	}

	switch {
	case in.Status == model.AccountStatusDisabled && existing.Status != model.AccountStatusDisabled:
		if updated.DisabledReason == nil {
			reason := model.DefaultDisabledReason
			if existing.DisabledReason != nil {
				reason = *existing.DisabledReason
			}
			updated.DisabledReason = &reason
		}
	case in.Status == model.AccountStatusActive && existing.Status != model.AccountStatusActive:
		updated.DisabledReason = nil
	}

	return &updated
}

// syncIdentity pushes password, name and role changes to the provider.
func (s *accountService) syncIdentity(ctx context.Context, existing *model.Account, in *schema.UpdateAccountInput) error {
	if existing.IdentityUserID == nil {
		return nil
	}
	userID := *existing.IdentityUserID

	params := identity.UpdateUserParams{UserID: userID, Password: in.Password}
	if in.FullName != existing.FullName {
		params.FullName = &in.FullName
	}
	if params.Password != nil || params.FullName != nil {
		if err := s.identity.UpdateUser(ctx, params); err != nil {
			return err
		}
	}

	if in.Role != existing.Role {
		if err := s.identity.SetRole(ctx, userID, in.Role); err != nil {
			return err
		}
	}
	return nil
}

// restore writes the pre-update row back after the provider rejected the change.
func (s *accountService) restore(ctx context.Context, existing *model.Account) {
	previous := *existing
	if err := s.accounts.Update(ctx, &previous); err != nil {
		slog.ErrorContext(ctx, "account and identity provider out of sync, manual reconciliation required",
			"error", err,
			"account_id", existing.ID,
			"identity_user_id", existing.IdentityUserID)
		return
	}
	slog.WarnContext(ctx, "reverted account after identity provider failure", "account_id", existing.ID)
}

// discardIdentity deletes a provider user whose account row was never written.
func (s *accountService) discardIdentity(ctx context.Context, userID string) {
	if err := s.identity.DeleteUser(ctx, userID); err != nil {
		slog.ErrorContext(ctx, "orphaned identity user, manual reconciliation required",
			"error", err,
			"identity_user_id", userID)
	}
}
