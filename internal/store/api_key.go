package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"basegraph.app/backoffice/core/db"
	"basegraph.app/backoffice/internal/model"
)

var apiKeyColumns = []string{
	"id", "landing_page_id", "name", "key_hash", "expires_at", "is_active", "last_used_at", "created_by", "created_at",
}

type apiKeyStore struct {
	conn db.DBTX
}

func newAPIKeyStore(conn db.DBTX) APIKeyStore {
	return &apiKeyStore{conn: conn}
}

func (s *apiKeyStore) ListByLandingPage(ctx context.Context, landingPageID uuid.UUID) ([]model.APIKey, error) {
	return queryAll[model.APIKey](ctx, s.conn,
		psql.Select(apiKeyColumns...).From("api_keys").
			Where(sq.Eq{"landing_page_id": landingPageID.String()}).
			OrderBy("created_at DESC"))
}

func (s *apiKeyStore) GetByID(ctx context.Context, id uuid.UUID) (*model.APIKey, error) {
	return queryOne[model.APIKey](ctx, s.conn,
		psql.Select(apiKeyColumns...).From("api_keys").Where(sq.Eq{"id": id.String()}))
}

// GetByHash only returns active keys.
func (s *apiKeyStore) GetByHash(ctx context.Context, keyHash string) (*model.APIKey, error) {
	return queryOne[model.APIKey](ctx, s.conn,
		psql.Select(apiKeyColumns...).From("api_keys").
			Where(sq.Eq{"key_hash": keyHash, "is_active": true}).
			Limit(1))
}

func (s *apiKeyStore) Create(ctx context.Context, key *model.APIKey) error {
	q := psql.Insert("api_keys").SetMap(map[string]any{
		"id":              key.ID,
		"landing_page_id": key.LandingPageID,
		"name":            key.Name,
		"key_hash":        key.KeyHash,
		"expires_at":      key.ExpiresAt,
		"is_active":       key.IsActive,
		"created_by":      key.CreatedBy,
	}).Suffix(returning(apiKeyColumns))

	row, err := queryOne[model.APIKey](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*key = *row
	return nil
}

func (s *apiKeyStore) Update(ctx context.Context, key *model.APIKey) error {
	q := psql.Update("api_keys").SetMap(map[string]any{
		"name":       key.Name,
		"expires_at": key.ExpiresAt,
		"is_active":  key.IsActive,
	}).Where(sq.Eq{"id": key.ID.String()}).Suffix(returning(apiKeyColumns))

	row, err := queryOne[model.APIKey](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*key = *row
	return nil
}

func (s *apiKeyStore) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := exec(ctx, s.conn, psql.Delete("api_keys").Where(sq.Eq{"id": id.String()}))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *apiKeyStore) DeleteByLandingPage(ctx context.Context, landingPageID uuid.UUID) error {
	_, err := exec(ctx, s.conn, psql.Delete("api_keys").Where(sq.Eq{"landing_page_id": landingPageID.String()}))
	return err
}

func (s *apiKeyStore) TouchLastUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := exec(ctx, s.conn, psql.Update("api_keys").Set("last_used_at", at).Where(sq.Eq{"id": id.String()}))
	return err
}
