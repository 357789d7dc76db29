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
	orgNotFound          = "Organization not found"
	subdomainTaken       = "Subdomain already exists"
	subdomainTakenDetail = "This subdomain is already in use."
)

type OrganizationService interface {
	List(ctx context.Context, q schema.OrganizationQuery) (*model.Page[model.Organization], error)
	Get(ctx context.Context, id string) (*model.Organization, error)
	Create(ctx context.Context, actor model.Principal, in schema.CreateOrganizationInput) (*model.Organization, error)
	Update(ctx context.Context, actor model.Principal, in schema.UpdateOrganizationInput) (*model.Organization, error)
	Delete(ctx context.Context, actor model.Principal, id string) error
}

type organizationService struct {
	Sinks
	orgs store.OrganizationStore
}

func NewOrganizationService(orgs store.OrganizationStore, sinks Sinks) OrganizationService {
	return &organizationService{Sinks: sinks, orgs: orgs}
}

func (s *organizationService) List(ctx context.Context, q schema.OrganizationQuery) (*model.Page[model.Organization], error) {
	if err := schema.Validate(&q); err != nil {
		return nil, err
	}

	items, total, err := s.orgs.List(ctx, store.OrganizationFilter{
		ListParams: listParams(q.Pagination, q.SortBy, q.SortDir),
		IsActive:   q.IsActive,
	})
	if err != nil {
		return nil, apperr.Repository("Failed to load organizations", err)
	}
	return page(items, total, q.Pagination), nil
}

func (s *organizationService) Get(ctx context.Context, rawID string) (*model.Organization, error) {
	id, err := parseID(rawID, orgNotFound)
	if err != nil {
		return nil, err
	}
	org, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, loadErr(err, orgNotFound, "Failed to load organization")
	}
	return org, nil
}

func (s *organizationService) Create(ctx context.Context, actor model.Principal, in schema.CreateOrganizationInput) (_ *model.Organization, err error) {
	action := model.AuditActionCreate
	ctx, done := s.begin(ctx, model.ResourceTypeOrganization, "create", "")
	defer done(&action, &err)

	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	if err := s.ensureSubdomainFree(ctx, in.Subdomain, nil); err != nil {
		return nil, err
	}

	org := &model.Organization{
		ID:        newID(),
		Name:      in.Name,
		Subdomain: in.Subdomain,
		LogoURL:   in.LogoURL,
		IsActive:  *in.IsActive,
		CreatedBy: uuidPtr(actor.ID),
	}
	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, orgWriteErr(err, "Failed to create organization")
	}

	slog.InfoContext(ctx, "organization created", "organization_id", org.ID, "subdomain", org.Subdomain)
	s.record(ctx, actor, model.ResourceTypeOrganization, org.ID.String(), action, map[string]any{
		"name":      org.Name,
		"subdomain": org.Subdomain,
	})
	return org, nil
}

func (s *organizationService) Update(ctx context.Context, actor model.Principal, in schema.UpdateOrganizationInput) (_ *model.Organization, err error) {
	action := model.AuditActionUpdate
	ctx, done := s.begin(ctx, model.ResourceTypeOrganization, "update", in.ID)
	defer done(&action, &err)

	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	id, err := parseID(in.ID, orgNotFound)
	if err != nil {
		return nil, err
	}
	existing, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, loadErr(err, orgNotFound, "Failed to load organization")
	}

	if in.Subdomain != existing.Subdomain {
		if err := s.ensureSubdomainFree(ctx, in.Subdomain, &existing.ID); err != nil {
			return nil, err
		}
	}

	updated := *existing
	updated.Name = in.Name
	updated.Subdomain = in.Subdomain
	updated.LogoURL = in.LogoURL
	if in.IsActive != nil {
		updated.IsActive = *in.IsActive
	}

	if err := s.orgs.Update(ctx, &updated); err != nil {
		return nil, orgWriteErr(err, "Failed to update organization")
	}

	s.record(ctx, actor, model.ResourceTypeOrganization, updated.ID.String(), action, map[string]any{
		"subdomainChanged": existing.Subdomain != updated.Subdomain,
		"activeChanged":    existing.IsActive != updated.IsActive,
	})
	return &updated, nil
}

func (s *organizationService) Delete(ctx context.Context, actor model.Principal, rawID string) (err error) {
	action := model.AuditActionDelete
	ctx, done := s.begin(ctx, model.ResourceTypeOrganization, "delete", rawID)
	defer done(&action, &err)

	id, err := parseID(rawID, orgNotFound)
	if err != nil {
		return err
	}
	if err := s.orgs.Delete(ctx, id); err != nil {
		return loadErr(err, orgNotFound, "Failed to delete organization")
	}

	s.record(ctx, actor, model.ResourceTypeOrganization, id.String(), action, nil)
	return nil
}

func (s *organizationService) ensureSubdomainFree(ctx context.Context, subdomain string, excludeID *uuid.UUID) error {
	_, err := s.orgs.FindBySubdomain(ctx, subdomain, excludeID)
	switch {
	case err == nil:
		return apperr.Conflict(subdomainTaken, "subdomain", subdomainTakenDetail)
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return apperr.Repository("Failed to check subdomain", err)
	}
}

// orgWriteErr maps a unique index race to the same conflict as the pre-check.
func orgWriteErr(err error, msg string) error {
	if errors.Is(err, store.ErrDuplicate) {
		return apperr.Conflict(subdomainTaken, "subdomain", subdomainTakenDetail)
	}
	return apperr.Repository(msg, err)
}
