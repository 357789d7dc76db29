package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/store"
)

const (
	landingPageNotFound = "Landing page not found"
	slugTaken           = "Slug already exists"
	slugTakenDetail     = "This slug is already in use for your organization."
)

type LandingPageService interface {
	List(ctx context.Context, organizationID string, q schema.LandingPageQuery) (*model.Page[model.LandingPage], error)
	Get(ctx context.Context, id string) (*model.LandingPage, error)
	Create(ctx context.Context, actor model.Principal, in schema.CreateLandingPageInput) (*model.LandingPage, error)
	Update(ctx context.Context, actor model.Principal, in schema.UpdateLandingPageInput) (*model.LandingPage, error)
	// Delete removes the page and its API keys in one transaction.
	Delete(ctx context.Context, actor model.Principal, id string) error
}

type landingPageService struct {
	Sinks
	pages    store.LandingPageStore
	orgs     store.OrganizationStore
	txRunner TxRunner
}

func NewLandingPageService(pages store.LandingPageStore, orgs store.OrganizationStore, txRunner TxRunner, sinks Sinks) LandingPageService {
	return &landingPageService{Sinks: sinks, pages: pages, orgs: orgs, txRunner: txRunner}
}

func (s *landingPageService) List(ctx context.Context, rawOrgID string, q schema.LandingPageQuery) (*model.Page[model.LandingPage], error) {
	orgID, err := parseID(rawOrgID, orgNotFound)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(&q); err != nil {
		return nil, err
	}
	if _, err := s.orgs.GetByID(ctx, orgID); err != nil {
		return nil, loadErr(err, orgNotFound, "Failed to load organization")
	}

	items, total, err := s.pages.List(ctx, store.LandingPageFilter{
		ListParams:     listParams(q.Pagination, q.SortBy, q.SortDir),
		OrganizationID: orgID,
		IsActive:       q.IsActive,
	})
	if err != nil {
		return nil, apperr.Repository("Failed to load landing pages", err)
	}
	return page(items, total, q.Pagination), nil
}

func (s *landingPageService) Get(ctx context.Context, rawID string) (*model.LandingPage, error) {
	id, err := parseID(rawID, landingPageNotFound)
	if err != nil {
		return nil, err
	}
	lp, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, loadErr(err, landingPageNotFound, "Failed to load landing page")
	}
	return lp, nil
}

func (s *landingPageService) Create(ctx context.Context, actor model.Principal, in schema.CreateLandingPageInput) (_ *model.LandingPage, err error) {
	action := model.AuditActionCreate
	ctx, done := s.begin(ctx, model.ResourceTypeLandingPage, "create", "")
	defer done(&action, &err)

	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	orgID, err := parseID(in.OrganizationID, orgNotFound)
	if err != nil {
		return nil, err
	}
	if _, err := s.orgs.GetByID(ctx, orgID); err != nil {
		return nil, loadErr(err, orgNotFound, "Failed to load organization")
	}
	if err := s.ensureSlugFree(ctx, orgID, in.Slug, nil); err != nil {
		return nil, err
	}

	lp := &model.LandingPage{
		ID:             newID(),
		OrganizationID: orgID,
		Name:           in.Name,
		Slug:           in.Slug,
		Domain:         in.Domain,
		IsActive:       *in.IsActive,
		CreatedBy:      uuidPtr(actor.ID),
	}
	if err := s.pages.Create(ctx, lp); err != nil {
		return nil, slugWriteErr(err, "Failed to create landing page")
	}

	slog.InfoContext(ctx, "landing page created", "landing_page_id", lp.ID, "organization_id", orgID, "slug", lp.Slug)
	s.record(ctx, actor, model.ResourceTypeLandingPage, lp.ID.String(), action, map[string]any{
		"organization_id": orgID.String(),
		"slug":            lp.Slug,
	})
	return lp, nil
}

func (s *landingPageService) Update(ctx context.Context, actor model.Principal, in schema.UpdateLandingPageInput) (_ *model.LandingPage, err error) {
	action := model.AuditActionUpdate
	ctx, done := s.begin(ctx, model.ResourceTypeLandingPage, "update", in.ID)
	defer done(&action, &err)

	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	id, err := parseID(in.ID, landingPageNotFound)
	if err != nil {
		return nil, err
	}
	existing, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, loadErr(err, landingPageNotFound, "Failed to load landing page")
	}

	if in.Slug != existing.Slug {
		if err := s.ensureSlugFree(ctx, existing.OrganizationID, in.Slug, &existing.ID); err != nil {
			return nil, err
		}
	}

	updated := *existing
	updated.Name = in.Name
	updated.Slug = in.Slug
	updated.Domain = in.Domain
	if in.IsActive != nil {
		updated.IsActive = *in.IsActive
	}

	if err := s.pages.Update(ctx, &updated); err != nil {
		return nil, slugWriteErr(err, "Failed to update landing page")
	}

	s.record(ctx, actor, model.ResourceTypeLandingPage, updated.ID.String(), action, map[string]any{
		"slugChanged":   existing.Slug != updated.Slug,
		"activeChanged": existing.IsActive != updated.IsActive,
	})
	return &updated, nil
}

func (s *landingPageService) Delete(ctx context.Context, actor model.Principal, rawID string) (err error) {
	action := model.AuditActionDelete
	ctx, done := s.begin(ctx, model.ResourceTypeLandingPage, "delete", rawID)
	defer done(&action, &err)

	id, err := parseID(rawID, landingPageNotFound)
	if err != nil {
		return err
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.APIKeys().DeleteByLandingPage(ctx, id); err != nil {
			return err
		}
		return stores.LandingPages().Delete(ctx, id)
	})
	if err != nil {
		return loadErr(err, landingPageNotFound, "Failed to delete landing page")
	}

	s.record(ctx, actor, model.ResourceTypeLandingPage, id.String(), action, nil)
	return nil
}

func (s *landingPageService) ensureSlugFree(ctx context.Context, orgID uuid.UUID, slug string, excludeID *uuid.UUID) error {
	_, err := s.pages.FindBySlug(ctx, orgID, slug, excludeID)
	switch {
	case err == nil:
		return apperr.Conflict(slugTaken, "slug", slugTakenDetail)
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return apperr.Repository("Failed to check slug", err)
	}
}

func slugWriteErr(err error, msg string) error {
	if errors.Is(err, store.ErrDuplicate) {
		return apperr.Conflict(slugTaken, "slug", slugTakenDetail)
	}
	return apperr.Repository(msg, err)
}
