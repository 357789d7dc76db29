package service

import (
	"context"
	"log/slog"

	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/audit"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/store"
)

const recentSubmissionLimit = 10

// PublicService backs the landing page API authenticated by API keys.
// Every call checks that the path slug belongs to the key's landing page.
type PublicService interface {
	SubscribeNewsletter(ctx context.Context, key model.APIKeyContext, slug string, in schema.PublicNewsletterInput) (*model.NewsletterSubmission, error)
	SubmitContact(ctx context.Context, key model.APIKeyContext, slug string, in schema.PublicContactInput) (*model.ContactSubmission, error)
	Submit(ctx context.Context, key model.APIKeyContext, slug string, in schema.PublicCustomSubmissionInput) (*model.LandingPageSubmission, error)
	Analytics(ctx context.Context, key model.APIKeyContext, slug string) (*model.SubmissionAnalytics, error)
}

type publicService struct {
	Sinks
	newsletters store.NewsletterStore
	contacts    store.ContactStore
	submissions store.SubmissionStore
}

func NewPublicService(newsletters store.NewsletterStore, contacts store.ContactStore, submissions store.SubmissionStore, sinks Sinks) PublicService {
	return &publicService{Sinks: sinks, newsletters: newsletters, contacts: contacts, submissions: submissions}
}

func checkSlug(key model.APIKeyContext, slug string) error {
	if key.Slug != slug {
		return apperr.Forbidden("Landing page slug mismatch")
	}
	return nil
}

func (s *publicService) SubscribeNewsletter(ctx context.Context, key model.APIKeyContext, slug string, in schema.PublicNewsletterInput) (_ *model.NewsletterSubmission, err error) {
	action := model.AuditActionCreate
	ctx, done := s.begin(ctx, model.ResourceTypeNewsletterSubmission, "public_create", "")
	defer done(&action, &err)

	if err := checkSlug(key, slug); err != nil {
		return nil, err
	}
	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	orgID := uuidPtr(key.OrganizationID)
	if err := ensureNoActiveSubscription(ctx, s.newsletters, in.Email, orgID, nil, alreadySubscribedNew); err != nil {
		return nil, err
	}

	sub := &model.NewsletterSubmission{
		ID:                 newID(),
		OrganizationID:     orgID,
		Email:              in.Email,
		Name:               in.Name,
		MarketingOptIn:     in.MarketingOptIn,
		SubscriptionStatus: model.NewsletterStatusPending,
		SubmittedAt:        now(),
	}
	if err := s.newsletters.Create(ctx, sub); err != nil {
		return nil, newsletterWriteErr(err, alreadySubscribedNew, orgNotFound, "Failed to create newsletter subscription")
	}

	s.capture(ctx, key, model.SubmissionTypeNewsletter, map[string]any{
		"newsletter_submission_id": sub.ID.String(),
		"email":                    sub.Email,
	})
	s.recordPublic(ctx, key, model.ResourceTypeNewsletterSubmission, sub.ID.String())
	return sub, nil
}

func (s *publicService) SubmitContact(ctx context.Context, key model.APIKeyContext, slug string, in schema.PublicContactInput) (_ *model.ContactSubmission, err error) {
	action := model.AuditActionCreate
	ctx, done := s.begin(ctx, model.ResourceTypeContactSubmission, "public_create", "")
	defer done(&action, &err)

	if err := checkSlug(key, slug); err != nil {
		return nil, err
	}
	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	sub := &model.ContactSubmission{
		ID:             newID(),
		OrganizationID: uuidPtr(key.OrganizationID),
		Name:           in.Name,
		Email:          in.Email,
		MarketingOptIn: in.MarketingOptIn,
		Subject:        in.Subject,
		Message:        in.Message,
		Metadata:       map[string]any{"landing_page_id": key.LandingPageID.String()},
		Status:         model.ContactStatusNew,
		SubmittedAt:    now(),
	}
	if err := s.contacts.Create(ctx, sub); err != nil {
		return nil, apperr.Repository("Failed to create contact submission", err)
	}

	s.capture(ctx, key, model.SubmissionTypeContact, map[string]any{
		"contact_submission_id": sub.ID.String(),
		"email":                 sub.Email,
	})
	s.recordPublic(ctx, key, model.ResourceTypeContactSubmission, sub.ID.String())
	return sub, nil
}

func (s *publicService) Submit(ctx context.Context, key model.APIKeyContext, slug string, in schema.PublicCustomSubmissionInput) (_ *model.LandingPageSubmission, err error) {
	action := model.AuditActionCreate
	ctx, done := s.begin(ctx, model.ResourceTypeLandingPageSubmission, "public_create", "")
	defer done(&action, &err)

	if err := checkSlug(key, slug); err != nil {
		return nil, err
	}
	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	sub := &model.LandingPageSubmission{
		ID:             newID(),
		LandingPageID:  key.LandingPageID,
		SubmissionType: in.SubmissionType,
		Data:           in.Data,
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, apperr.Repository("Failed to create submission", err)
	}

	s.recordPublic(ctx, key, model.ResourceTypeLandingPageSubmission, sub.ID.String())
	return sub, nil
}

func (s *publicService) Analytics(ctx context.Context, key model.APIKeyContext, slug string) (*model.SubmissionAnalytics, error) {
	if err := checkSlug(key, slug); err != nil {
		return nil, err
	}

	counts, err := s.submissions.CountByType(ctx, key.LandingPageID)
	if err != nil {
		return nil, apperr.Repository("Failed to fetch analytics", err)
	}
	recent, err := s.submissions.ListRecent(ctx, key.LandingPageID, recentSubmissionLimit)
	if err != nil {
		return nil, apperr.Repository("Failed to fetch analytics", err)
	}

	byType := map[model.SubmissionType]int64{
		model.SubmissionTypeNewsletter: 0,
		model.SubmissionTypeContact:    0,
		model.SubmissionTypeAnalytics:  0,
		model.SubmissionTypeCustom:     0,
	}
	var total int64
	for t, n := range counts {
		byType[t] = n
		total += n
	}

	return &model.SubmissionAnalytics{
		TotalSubmissions:  total,
		ByType:            byType,
		RecentSubmissions: recent,
	}, nil
}

// capture mirrors a typed public submission into the landing page feed so it
// shows up in analytics. Failures only log.
func (s *publicService) capture(ctx context.Context, key model.APIKeyContext, typ model.SubmissionType, data map[string]any) {
	sub := &model.LandingPageSubmission{
		ID:             newID(),
		LandingPageID:  key.LandingPageID,
		SubmissionType: typ,
		Data:           data,
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		slog.WarnContext(ctx, "failed to record landing page submission",
			"error", err,
			"landing_page_id", key.LandingPageID,
			"submission_type", typ)
	}
}

func (s *publicService) recordPublic(ctx context.Context, key model.APIKeyContext, resource model.ResourceType, resourceID string) {
	s.Audit.Record(ctx, audit.Entry{
		ResourceType: resource,
		ResourceID:   resourceID,
		Action:       model.AuditActionCreate,
		ActedBy:      "api_key:" + key.KeyID.String(),
		Details:      map[string]any{"landing_page_id": key.LandingPageID.String()},
	})
}
