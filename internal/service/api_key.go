package service

import (
	"context"
	"errors"
	"log/slog"

	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/store"
)

const (
	apiKeyNotFound   = "API key not found"
	missingAPIKeyMsg = "Missing API key"
	invalidAPIKeyMsg = "Invalid API key"
)

type APIKeyService interface {
	List(ctx context.Context, landingPageID string) ([]model.APIKey, error)
	// Create returns the stored key and its plaintext, which is never retrievable again.
	Create(ctx context.Context, actor model.Principal, in schema.CreateAPIKeyInput) (*model.APIKey, string, error)
	Update(ctx context.Context, actor model.Principal, in schema.UpdateAPIKeyInput) (*model.APIKey, error)
	Delete(ctx context.Context, actor model.Principal, id string) error
	// Validate resolves a bearer key for the public API.
	Validate(ctx context.Context, rawKey string) (*model.APIKeyContext, error)
}

type apiKeyService struct {
	Sinks
	keys  store.APIKeyStore
	pages store.LandingPageStore
}

func NewAPIKeyService(keys store.APIKeyStore, pages store.LandingPageStore, sinks Sinks) APIKeyService {
	return &apiKeyService{Sinks: sinks, keys: keys, pages: pages}
}

func (s *apiKeyService) List(ctx context.Context, rawLandingPageID string) ([]model.APIKey, error) {
	lpID, err := parseID(rawLandingPageID, landingPageNotFound)
	if err != nil {
		return nil, err
	}
	if _, err := s.pages.GetByID(ctx, lpID); err != nil {
		return nil, loadErr(err, landingPageNotFound, "Failed to load landing page")
	}

	keys, err := s.keys.ListByLandingPage(ctx, lpID)
	if err != nil {
		return nil, apperr.Repository("Failed to load API keys", err)
	}
	return keys, nil
}

func (s *apiKeyService) Create(ctx context.Context, actor model.Principal, in schema.CreateAPIKeyInput) (_ *model.APIKey, _ string, err error) {
	action := model.AuditActionCreate
	ctx, done := s.begin(ctx, model.ResourceTypeAPIKey, "create", "")
	defer done(&action, &err)

	if err := schema.Validate(&in); err != nil {
		return nil, "", err
	}

	lpID, err := parseID(in.LandingPageID, landingPageNotFound)
	if err != nil {
		return nil, "", err
	}
	if _, err := s.pages.GetByID(ctx, lpID); err != nil {
		return nil, "", loadErr(err, landingPageNotFound, "Failed to load landing page")
	}

	plaintext, err := GenerateAPIKey()
	if err != nil {
		return nil, "", apperr.Repository("Failed to create API key", err)
	}

	key := &model.APIKey{
		ID:            newID(),
		LandingPageID: lpID,
		Name:          in.Name,
		KeyHash:       HashAPIKey(plaintext),
		ExpiresAt:     schema.ParseTimestamp(in.ExpiresAt),
		IsActive:      true,
		CreatedBy:     uuidPtr(actor.ID),
	}
	if err := s.keys.Create(ctx, key); err != nil {
		return nil, "", apperr.Repository("Failed to create API key", err)
	}

	slog.InfoContext(ctx, "api key created", "api_key_id", key.ID, "landing_page_id", lpID)
	s.record(ctx, actor, model.ResourceTypeAPIKey, key.ID.String(), action, map[string]any{
		"landing_page_id": lpID.String(),
		"name":            key.Name,
	})
	return key, plaintext, nil
}

func (s *apiKeyService) Update(ctx context.Context, actor model.Principal, in schema.UpdateAPIKeyInput) (_ *model.APIKey, err error) {
	action := model.AuditActionUpdate
	ctx, done := s.begin(ctx, model.ResourceTypeAPIKey, "update", in.ID)
	defer done(&action, &err)

	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	id, err := parseID(in.ID, apiKeyNotFound)
	if err != nil {
		return nil, err
	}
	existing, err := s.keys.GetByID(ctx, id)
	if err != nil {
		return nil, loadErr(err, apiKeyNotFound, "Failed to load API key")
	}

	updated := *existing
	updated.Name = in.Name
	updated.ExpiresAt = schema.ParseTimestamp(in.ExpiresAt)
	if in.IsActive != nil {
		updated.IsActive = *in.IsActive
	}

	if err := s.keys.Update(ctx, &updated); err != nil {
		return nil, apperr.Repository("Failed to update API key", err)
	}

	s.record(ctx, actor, model.ResourceTypeAPIKey, updated.ID.String(), action, map[string]any{
		"activeChanged": existing.IsActive != updated.IsActive,
	})
	return &updated, nil
}

func (s *apiKeyService) Delete(ctx context.Context, actor model.Principal, rawID string) (err error) {
	action := model.AuditActionDelete
	ctx, done := s.begin(ctx, model.ResourceTypeAPIKey, "delete", rawID)
	defer done(&action, &err)

	id, err := parseID(rawID, apiKeyNotFound)
	if err != nil {
		return err
	}
	if err := s.keys.Delete(ctx, id); err != nil {
		return loadErr(err, apiKeyNotFound, "Failed to delete API key")
	}

	s.record(ctx, actor, model.ResourceTypeAPIKey, id.String(), action, nil)
	return nil
}

func (s *apiKeyService) Validate(ctx context.Context, rawKey string) (*model.APIKeyContext, error) {
	if rawKey == "" {
		return nil, apperr.Unauthorized(missingAPIKeyMsg)
	}

	key, err := s.keys.GetByHash(ctx, HashAPIKey(rawKey))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthorized(invalidAPIKeyMsg)
		}
		slog.ErrorContext(ctx, "failed to look up api key", "error", err)
		return nil, apperr.Unauthorized(invalidAPIKeyMsg)
	}

	if !VerifyAPIKey(rawKey, key.KeyHash) || !key.IsActive || key.Expired(now()) {
		return nil, apperr.Unauthorized(invalidAPIKeyMsg)
	}

	lp, err := s.pages.GetByID(ctx, key.LandingPageID)
	if err != nil || !lp.IsActive {
		return nil, apperr.Unauthorized(invalidAPIKeyMsg)
	}

	if err := s.keys.TouchLastUsed(ctx, key.ID, now()); err != nil {
		slog.WarnContext(ctx, "failed to touch api key", "error", err, "api_key_id", key.ID)
	}

	return &model.APIKeyContext{
		KeyID:          key.ID,
		LandingPageID:  lp.ID,
		OrganizationID: lp.OrganizationID,
		Slug:           lp.Slug,
	}, nil
}
