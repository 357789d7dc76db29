package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"basegraph.app/backoffice/core/db"
	"basegraph.app/backoffice/internal/model"
)

var landingPageColumns = []string{
	"id", "organization_id", "name", "slug", "domain", "is_active", "created_by", "created_at", "updated_at",
}

var landingPageList = listSpec{
	table:         "landing_pages",
	columns:       landingPageColumns,
	searchColumns: []string{"name", "slug"},
	sortable: map[string]string{
		"name":       "name",
		"slug":       "slug",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
	defaultSort: "created_at",
}

type landingPageStore struct {
	conn db.DBTX
}

func newLandingPageStore(conn db.DBTX) LandingPageStore {
	return &landingPageStore{conn: conn}
}

func (s *landingPageStore) List(ctx context.Context, f LandingPageFilter) ([]model.LandingPage, int64, error) {
	where := sq.And{sq.Eq{"organization_id": f.OrganizationID.String()}}
	if f.IsActive != nil {
		where = append(where, sq.Eq{"is_active": *f.IsActive})
	}
	return listPage[model.LandingPage](ctx, s.conn, landingPageList, where, f.ListParams)
}

func (s *landingPageStore) GetByID(ctx context.Context, id uuid.UUID) (*model.LandingPage, error) {
	return queryOne[model.LandingPage](ctx, s.conn,
		psql.Select(landingPageColumns...).From("landing_pages").Where(sq.Eq{"id": id.String()}))
}

func (s *landingPageStore) FindBySlug(ctx context.Context, orgID uuid.UUID, slug string, excludeID *uuid.UUID) (*model.LandingPage, error) {
	where := sq.And{sq.Eq{"organization_id": orgID.String(), "slug": slug}}
	if excludeID != nil {
		where = append(where, sq.NotEq{"id": excludeID.String()})
	}
	return queryOne[model.LandingPage](ctx, s.conn,
		psql.Select(landingPageColumns...).From("landing_pages").Where(where).Limit(1))
}

func (s *landingPageStore) Create(ctx context.Context, page *model.LandingPage) error {
	q := psql.Insert("landing_pages").SetMap(map[string]any{
		"id":              page.ID,
		"organization_id": page.OrganizationID,
		"name":            page.Name,
		"slug":            page.Slug,
		"domain":          page.Domain,
		"is_active":       page.IsActive,
		"created_by":      page.CreatedBy,
	}).Suffix(returning(landingPageColumns))

	row, err := queryOne[model.LandingPage](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*page = *row
	return nil
}

func (s *landingPageStore) Update(ctx context.Context, page *model.LandingPage) error {
	q := psql.Update("landing_pages").SetMap(map[string]any{
		"name":       page.Name,
		"slug":       page.Slug,
		"domain":     page.Domain,
		"is_active":  page.IsActive,
		"updated_at": sq.Expr("now()"),
	}).Where(sq.Eq{"id": page.ID.String()}).Suffix(returning(landingPageColumns))

	row, err := queryOne[model.LandingPage](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*page = *row
	return nil
}

func (s *landingPageStore) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := exec(ctx, s.conn, psql.Delete("landing_pages").Where(sq.Eq{"id": id.String()}))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
