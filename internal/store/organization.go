package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"basegraph.app/backoffice/core/db"
	"basegraph.app/backoffice/internal/model"
)

var organizationColumns = []string{
	"id", "name", "subdomain", "logo_url", "is_active", "created_by", "created_at", "updated_at",
}

var organizationList = listSpec{
	table:         "organizations",
	columns:       organizationColumns,
	searchColumns: []string{"name", "subdomain"},
	sortable: map[string]string{
		"name":       "name",
		"subdomain":  "subdomain",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	defaultSort: "created_at",
}

type organizationStore struct {
	conn db.DBTX
}

func newOrganizationStore(conn db.DBTX) OrganizationStore {
	return &organizationStore{conn: conn}
}

func (s *organizationStore) List(ctx context.Context, f OrganizationFilter) ([]model.Organization, int64, error) {
	where := sq.And{}
	if f.IsActive != nil {
		where = append(where, sq.Eq{"is_active": *f.IsActive})
	}
	return listPage[model.Organization](ctx, s.conn, organizationList, where, f.ListParams)
}

func (s *organizationStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	return queryOne[model.Organization](ctx, s.conn,
		psql.Select(organizationColumns...).From("organizations").Where(sq.Eq{"id": id.String()}))
}

func (s *organizationStore) FindBySubdomain(ctx context.Context, subdomain string, excludeID *uuid.UUID) (*model.Organization, error) {
	where := sq.And{sq.Eq{"subdomain": subdomain}}
	if excludeID != nil {
		where = append(where, sq.NotEq{"id": excludeID.String()})
	}
	return queryOne[model.Organization](ctx, s.conn,
		psql.Select(organizationColumns...).From("organizations").Where(where).Limit(1))
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	q := psql.Insert("organizations").SetMap(map[string]any{
		"id":         org.ID,
		"name":       org.Name,
		"subdomain":  org.Subdomain,
		"logo_url":   org.LogoURL,
		"is_active":  org.IsActive,
		"created_by": org.CreatedBy,
	}).Suffix(returning(organizationColumns))

	row, err := queryOne[model.Organization](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*org = *row
	return nil
}

func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	q := psql.Update("organizations").SetMap(map[string]any{
		"name":       org.Name,
		"subdomain":  org.Subdomain,
		"logo_url":   org.LogoURL,
		"is_active":  org.IsActive,
		"updated_at": sq.Expr("now()"),
	}).Where(sq.Eq{"id": org.ID.String()}).Suffix(returning(organizationColumns))

	row, err := queryOne[model.Organization](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*org = *row
	return nil
}

func (s *organizationStore) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := exec(ctx, s.conn, psql.Delete("organizations").Where(sq.Eq{"id": id.String()}))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
