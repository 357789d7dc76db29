package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/store"
)

const (
	newsletterNotFound     = "Newsletter submission not found"
	alreadySubscribed      = "Email already subscribed"
	alreadySubscribedNew   = "This email address already has an active subscription for the selected organization."
	alreadySubscribedTaken = "Another active subscription exists for this email. Archive it before reassigning."
)

type NewsletterService interface {
	List(ctx context.Context, q schema.NewsletterQuery) (*model.Page[model.NewsletterSubmission], error)
	Create(ctx context.Context, actor model.Principal, in schema.CreateNewsletterInput) (*model.NewsletterSubmission, error)
	Update(ctx context.Context, actor model.Principal, in schema.UpdateNewsletterInput) (*model.NewsletterSubmission, error)
}

type newsletterService struct {
	Sinks
	newsletters store.NewsletterStore
}

func NewNewsletterService(newsletters store.NewsletterStore, sinks Sinks) NewsletterService {
	return &newsletterService{Sinks: sinks, newsletters: newsletters}
}

func (s *newsletterService) List(ctx context.Context, q schema.NewsletterQuery) (*model.Page[model.NewsletterSubmission], error) {
	if err := schema.Validate(&q); err != nil {
		return nil, err
	}

	from, to := q.DateRange.Bounds()
	filter := store.SubmissionFilter{
		ListParams:      listParams(q.Pagination, q.SortBy, q.SortDir),
		MarketingOptIn:  q.MarketingOptIn,
		SubmittedFrom:   from,
		SubmittedTo:     to,
		IncludeArchived: q.IncludeArchived,
	}
	if q.Status != nil {
		filter.Status = (*string)(q.Status)
	}

	items, total, err := s.newsletters.List(ctx, filter)
	if err != nil {
		return nil, apperr.Repository("Failed to load newsletter submissions", err)
	}
	return page(items, total, q.Pagination), nil
}

func (s *newsletterService) Create(ctx context.Context, actor model.Principal, in schema.CreateNewsletterInput) (_ *model.NewsletterSubmission, err error) {
	action := model.AuditActionCreate
	ctx, done := s.begin(ctx, model.ResourceTypeNewsletterSubmission, "create", "")
	defer done(&action, &err)

	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	orgID := parseOptionalID(in.OrganizationID)
	if err := ensureNoActiveSubscription(ctx, s.newsletters, in.Email, orgID, nil, alreadySubscribedNew); err != nil {
		return nil, err
	}

	submittedAt := now()
	if t := schema.ParseTimestamp(in.SubmittedAt); t != nil {
		submittedAt = *t
	}

	sub := &model.NewsletterSubmission{
		ID:                 newID(),
		OrganizationID:     orgID,
		Email:              in.Email,
		Name:               in.Name,
		MarketingOptIn:     in.MarketingOptIn,
		SubscriptionStatus: in.SubscriptionStatus,
		SubmittedAt:        submittedAt,
		ConfirmedAt:        schema.ParseTimestamp(in.ConfirmedAt),
		UnsubscribedAt:     schema.ParseTimestamp(in.UnsubscribedAt),
		BounceReason:       in.BounceReason,
		CreatedBy:          uuidPtr(actor.ID),
		UpdatedBy:          uuidPtr(actor.ID),
	}
	if err := s.newsletters.Create(ctx, sub); err != nil {
		return nil, newsletterWriteErr(err, alreadySubscribedNew, orgNotFound, "Failed to create newsletter submission")
	}

	s.record(ctx, actor, model.ResourceTypeNewsletterSubmission, sub.ID.String(), action, map[string]any{
		"subscription_status": sub.SubscriptionStatus,
		"marketing_opt_in":    sub.MarketingOptIn,
	})
	return sub, nil
}

func (s *newsletterService) Update(ctx context.Context, actor model.Principal, in schema.UpdateNewsletterInput) (_ *model.NewsletterSubmission, err error) {
	action := model.AuditActionUpdate
	ctx, done := s.begin(ctx, model.ResourceTypeNewsletterSubmission, "update", in.ID)
	defer done(&action, &err)

	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	id, err := parseID(in.ID, newsletterNotFound)
	if err != nil {
		return nil, err
	}
	existing, err := s.newsletters.GetByID(ctx, id)
	if err != nil {
		return nil, loadErr(err, newsletterNotFound, "Failed to load newsletter submission")
	}

	orgID := parseOptionalID(in.OrganizationID)
	if in.Email != existing.Email || !sameOrg(orgID, existing.OrganizationID) {
		if err := ensureNoActiveSubscription(ctx, s.newsletters, in.Email, orgID, &existing.ID, alreadySubscribedTaken); err != nil {
			return nil, err
		}
	}

	updated := *existing
	updated.OrganizationID = orgID
	updated.Email = in.Email
	updated.Name = in.Name
	updated.MarketingOptIn = in.MarketingOptIn
	updated.SubscriptionStatus = in.SubscriptionStatus
	updated.ConfirmedAt = schema.ParseTimestamp(in.ConfirmedAt)
	updated.UnsubscribedAt = schema.ParseTimestamp(in.UnsubscribedAt)
	updated.BounceReason = in.BounceReason
	updated.UpdatedBy = uuidPtr(actor.ID)
	action = applyArchive(&updated.Archive, in.ArchiveFields, actor.ID, now())

	if err := s.newsletters.Update(ctx, &updated); err != nil {
		return nil, newsletterWriteErr(err, alreadySubscribedTaken, newsletterNotFound, "Failed to update newsletter submission")
	}

	s.record(ctx, actor, model.ResourceTypeNewsletterSubmission, updated.ID.String(), action, map[string]any{
		"subscription_status_changed": existing.SubscriptionStatus != updated.SubscriptionStatus,
		"marketing_opt_in_changed":    existing.MarketingOptIn != updated.MarketingOptIn,
		"archived":                    updated.IsArchived,
	})
	return &updated, nil
}

// ensureNoActiveSubscription enforces one live subscription per email and organization.
func ensureNoActiveSubscription(ctx context.Context, newsletters store.NewsletterStore, email string, orgID, excludeID *uuid.UUID, fieldMsg string) error {
	_, err := newsletters.FindActive(ctx, email, orgID, excludeID)
	switch {
	case err == nil:
		return apperr.Conflict(alreadySubscribed, "email", fieldMsg)
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return apperr.Repository("Failed to check existing subscriptions", err)
	}
}

func newsletterWriteErr(err error, fieldMsg, notFound, msg string) error {
	if errors.Is(err, store.ErrDuplicate) {
		return apperr.Conflict(alreadySubscribed, "email", fieldMsg)
	}
	return writeErr(err, notFound, orgNotFound, msg)
}

func sameOrg(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
