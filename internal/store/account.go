package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"basegraph.app/backoffice/core/db"
	"basegraph.app/backoffice/internal/model"
)

var accountColumns = []string{
	"id", "identity_user_id", "email", "full_name", "role", "status",
	"is_locked", "locked_at", "password_reset_required", "onboarding_note",
	"disabled_reason", "invited_at", "last_login_at", "created_by", "updated_by",
	"created_at", "updated_at",
}

var accountList = listSpec{
	table:         "users",
	columns:       accountColumns,
	searchColumns: []string{"email", "full_name", "id::text"},
	sortable: map[string]string{
		"full_name":     "full_name",
		"email":         "email",
		"role":          "role",
		"status":        "status",
		"last_login_at": "last_login_at",
		"created_at":    "created_at",
	},
	defaultSort: "created_at",
}

type accountStore struct {
	conn db.DBTX
}

func newAccountStore(conn db.DBTX) AccountStore {
	return &accountStore{conn: conn}
}

func (s *accountStore) List(ctx context.Context, f AccountFilter) ([]model.Account, int64, error) {
	where := sq.And{}
	if f.Role != nil {
		where = append(where, sq.Eq{"role": *f.Role})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
	}
	if f.IsLocked != nil {
		where = append(where, sq.Eq{"is_locked": *f.IsLocked})
	}
	return listPage[model.Account](ctx, s.conn, accountList, where, f.ListParams)
}

func (s *accountStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return queryOne[model.Account](ctx, s.conn,
		psql.Select(accountColumns...).From("users").Where(sq.Eq{"id": id.String()}))
}

func (s *accountStore) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	return queryOne[model.Account](ctx, s.conn,
		psql.Select(accountColumns...).From("users").Where(sq.Expr("lower(email) = lower(?)", email)).Limit(1))
}

func (s *accountStore) Create(ctx context.Context, account *model.Account) error {
	q := psql.Insert("users").SetMap(map[string]any{
		"id":                      account.ID,
		"identity_user_id":        account.IdentityUserID,
		"email":                   account.Email,
		"full_name":               account.FullName,
		"role":                    account.Role,
		"status":                  account.Status,
		"is_locked":               account.IsLocked,
		"locked_at":               account.LockedAt,
		"password_reset_required": account.PasswordResetRequired,
		"onboarding_note":         account.OnboardingNote,
		"disabled_reason":         account.DisabledReason,
		"invited_at":              account.InvitedAt,
		"created_by":              account.CreatedBy,
		"updated_by":              account.UpdatedBy,
	}).Suffix(returning(accountColumns))

	row, err := queryOne[model.Account](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*account = *row
	return nil
}

// Update writes every mutable column; email and created_* never change.
func (s *accountStore) Update(ctx context.Context, account *model.Account) error {
	q := psql.Update("users").SetMap(map[string]any{
		"identity_user_id":        account.IdentityUserID,
		"full_name":               account.FullName,
		"role":                    account.Role,
		"status":                  account.Status,
		"is_locked":               account.IsLocked,
		"locked_at":               account.LockedAt,
		"password_reset_required": account.PasswordResetRequired,
		"onboarding_note":         account.OnboardingNote,
		"disabled_reason":         account.DisabledReason,
		"invited_at":              account.InvitedAt,
		"updated_by":              account.UpdatedBy,
		"updated_at":              sq.Expr("now()"),
	}).Where(sq.Eq{"id": account.ID.String()}).Suffix(returning(accountColumns))

	row, err := queryOne[model.Account](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*account = *row
	return nil
}

func (s *accountStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	n, err := exec(ctx, s.conn, psql.Update("users").Set("last_login_at", at).Where(sq.Eq{"id": id.String()}))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
