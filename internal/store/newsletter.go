package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"basegraph.app/backoffice/core/db"
	"basegraph.app/backoffice/internal/model"
)

var newsletterColumns = []string{
	"id", "organization_id", "email", "name", "marketing_opt_in", "subscription_status",
	"submitted_at", "confirmed_at", "unsubscribed_at", "bounce_reason",
	"is_archived", "archived_at", "archived_by", "archived_reason",
	"created_by", "updated_by", "created_at", "updated_at",
}

var newsletterList = listSpec{
	table:         "newsletter_submissions",
	columns:       newsletterColumns,
	searchColumns: []string{"email", "name"},
	sortable: map[string]string{
		"submitted_at":        "submitted_at",
		"email":               "email",
		"subscription_status": "subscription_status",
		"marketing_opt_in":    "marketing_opt_in",
		"created_at":          "created_at",
	},
	defaultSort: "submitted_at",
}

// submissionWhere applies the filters shared by newsletter and contact listings.
func submissionWhere(f SubmissionFilter, statusColumn string) sq.And {
	where := sq.And{}
	if !f.IncludeArchived {
		where = append(where, sq.Eq{"is_archived": false})
	}
	if f.Status != nil {
		where = append(where, sq.Eq{statusColumn: *f.Status})
	}
	if f.MarketingOptIn != nil {
		where = append(where, sq.Eq{"marketing_opt_in": *f.MarketingOptIn})
	}
	if f.SubmittedFrom != nil {
		where = append(where, sq.GtOrEq{"submitted_at": *f.SubmittedFrom})
	}
	if f.SubmittedTo != nil {
		where = append(where, sq.LtOrEq{"submitted_at": *f.SubmittedTo})
	}
	return where
}

func orgScope(orgID *uuid.UUID) sq.Eq {
	if orgID == nil {
		return sq.Eq{"organization_id": nil}
	}
	return sq.Eq{"organization_id": orgID.String()}
}

type newsletterStore struct {
	conn db.DBTX
}

func newNewsletterStore(conn db.DBTX) NewsletterStore {
	return &newsletterStore{conn: conn}
}

func (s *newsletterStore) List(ctx context.Context, f SubmissionFilter) ([]model.NewsletterSubmission, int64, error) {
	return listPage[model.NewsletterSubmission](ctx, s.conn, newsletterList, submissionWhere(f, "subscription_status"), f.ListParams)
}

func (s *newsletterStore) GetByID(ctx context.Context, id uuid.UUID) (*model.NewsletterSubmission, error) {
	return queryOne[model.NewsletterSubmission](ctx, s.conn,
		psql.Select(newsletterColumns...).From("newsletter_submissions").Where(sq.Eq{"id": id.String()}))
}

func (s *newsletterStore) FindActive(ctx context.Context, email string, orgID *uuid.UUID, excludeID *uuid.UUID) (*model.NewsletterSubmission, error) {
	where := sq.And{
		sq.Expr("lower(email) = lower(?)", email),
		orgScope(orgID),
		sq.Eq{"is_archived": false},
	}
	if excludeID != nil {
		where = append(where, sq.NotEq{"id": excludeID.String()})
	}
	return queryOne[model.NewsletterSubmission](ctx, s.conn,
		psql.Select(newsletterColumns...).From("newsletter_submissions").Where(where).Limit(1))
}

func (s *newsletterStore) Create(ctx context.Context, sub *model.NewsletterSubmission) error {
	q := psql.Insert("newsletter_submissions").SetMap(map[string]any{
		"id":                  sub.ID,
		"organization_id":     sub.OrganizationID,
		"email":               sub.Email,
		"name":                sub.Name,
		"marketing_opt_in":    sub.MarketingOptIn,
		"subscription_status": sub.SubscriptionStatus,
		"submitted_at":        sub.SubmittedAt,
		"confirmed_at":        sub.ConfirmedAt,
		"unsubscribed_at":     sub.UnsubscribedAt,
		"bounce_reason":       sub.BounceReason,
		"created_by":          sub.CreatedBy,
		"updated_by":          sub.UpdatedBy,
	}).Suffix(returning(newsletterColumns))

	row, err := queryOne[model.NewsletterSubmission](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*sub = *row
	return nil
}

func (s *newsletterStore) Update(ctx context.Context, sub *model.NewsletterSubmission) error {
	q := psql.Update("newsletter_submissions").SetMap(map[string]any{
		"organization_id":     sub.OrganizationID,
		"email":               sub.Email,
		"name":                sub.Name,
		"marketing_opt_in":    sub.MarketingOptIn,
		"subscription_status": sub.SubscriptionStatus,
		"confirmed_at":        sub.ConfirmedAt,
		"unsubscribed_at":     sub.UnsubscribedAt,
		"bounce_reason":       sub.BounceReason,
		"is_archived":         sub.IsArchived,
		"archived_at":         sub.ArchivedAt,
		"archived_by":         sub.ArchivedBy,
		"archived_reason":     sub.ArchivedReason,
		"updated_by":          sub.UpdatedBy,
		"updated_at":          sq.Expr("now()"),
	}).Where(sq.Eq{"id": sub.ID.String()}).Suffix(returning(newsletterColumns))

	row, err := queryOne[model.NewsletterSubmission](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*sub = *row
	return nil
}
