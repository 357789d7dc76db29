package service

import (
	"context"

	"basegraph.app/backoffice/internal/apperr"
	"basegraph.app/backoffice/internal/model"
	"basegraph.app/backoffice/internal/schema"
	"basegraph.app/backoffice/internal/store"
)

const contactNotFound = "Contact submission not found"

type ContactService interface {
	List(ctx context.Context, q schema.ContactQuery) (*model.Page[model.ContactSubmission], error)
	Create(ctx context.Context, actor model.Principal, in schema.CreateContactInput) (*model.ContactSubmission, error)
	Update(ctx context.Context, actor model.Principal, in schema.UpdateContactInput) (*model.ContactSubmission, error)
}

type contactService struct {
	Sinks
	contacts store.ContactStore
}

func NewContactService(contacts store.ContactStore, sinks Sinks) ContactService {
	return &contactService{Sinks: sinks, contacts: contacts}
}

func (s *contactService) List(ctx context.Context, q schema.ContactQuery) (*model.Page[model.ContactSubmission], error) {
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

	items, total, err := s.contacts.List(ctx, filter)
	if err != nil {
		return nil, apperr.Repository("Failed to load contact submissions", err)
	}
	return page(items, total, q.Pagination), nil
}

func (s *contactService) Create(ctx context.Context, actor model.Principal, in schema.CreateContactInput) (_ *model.ContactSubmission, err error) {
	action := model.AuditActionCreate
	ctx, done := s.begin(ctx, model.ResourceTypeContactSubmission, "create", "")
	defer done(&action, &err)

	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	submittedAt := now()
	if t := schema.ParseTimestamp(in.SubmittedAt); t != nil {
		submittedAt = *t
	}

	sub := &model.ContactSubmission{
		ID:             newID(),
		OrganizationID: parseOptionalID(in.OrganizationID),
		Name:           in.Name,
		Email:          in.Email,
		MarketingOptIn: in.MarketingOptIn,
		Subject:        in.Subject,
		Message:        in.Message,
		Metadata:       in.Metadata,
		Status:         in.Status,
		SubmittedAt:    submittedAt,
		RespondedAt:    schema.ParseTimestamp(in.RespondedAt),
		LastFollowUpAt: schema.ParseTimestamp(in.LastFollowUpAt),
		CreatedBy:      uuidPtr(actor.ID),
		UpdatedBy:      uuidPtr(actor.ID),
	}
	if err := s.contacts.Create(ctx, sub); err != nil {
		return nil, writeErr(err, orgNotFound, orgNotFound, "Failed to create contact submission")
	}

	s.record(ctx, actor, model.ResourceTypeContactSubmission, sub.ID.String(), action, map[string]any{
		"status": sub.Status,
	})
	return sub, nil
}

func (s *contactService) Update(ctx context.Context, actor model.Principal, in schema.UpdateContactInput) (_ *model.ContactSubmission, err error) {
	action := model.AuditActionUpdate
	ctx, done := s.begin(ctx, model.ResourceTypeContactSubmission, "update", in.ID)
	defer done(&action, &err)

	if err := schema.Validate(&in); err != nil {
		return nil, err
	}

	id, err := parseID(in.ID, contactNotFound)
	if err != nil {
		return nil, err
	}
	existing, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, loadErr(err, contactNotFound, "Failed to load contact submission")
	}

	updated := *existing
	updated.OrganizationID = parseOptionalID(in.OrganizationID)
	updated.Name = in.Name
	updated.Email = in.Email
	updated.MarketingOptIn = in.MarketingOptIn
	updated.Subject = in.Subject
	updated.Message = in.Message
	updated.Metadata = in.Metadata
	updated.Status = in.Status
	updated.RespondedAt = schema.ParseTimestamp(in.RespondedAt)
	updated.LastFollowUpAt = schema.ParseTimestamp(in.LastFollowUpAt)
	updated.UpdatedBy = uuidPtr(actor.ID)
	action = applyArchive(&updated.Archive, in.ArchiveFields, actor.ID, now())

	if err := s.contacts.Update(ctx, &updated); err != nil {
		return nil, writeErr(err, contactNotFound, orgNotFound, "Failed to update contact submission")
	}

	s.record(ctx, actor, model.ResourceTypeContactSubmission, updated.ID.String(), action, map[string]any{
		"status_changed": existing.Status != updated.Status,
		"archived":       updated.IsArchived,
	})
	return &updated, nil
}
