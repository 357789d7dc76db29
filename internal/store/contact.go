package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"basegraph.app/backoffice/core/db"
	"basegraph.app/backoffice/internal/model"
)

var contactColumns = []string{
	"id", "organization_id", "name", "email", "marketing_opt_in", "subject", "message",
	"metadata", "status", "submitted_at", "responded_at", "last_follow_up_at",
	"is_archived", "archived_at", "archived_by", "archived_reason",
	"created_by", "updated_by", "created_at", "updated_at",
}

var contactList = listSpec{
	table:         "contact_submissions",
	columns:       contactColumns,
	searchColumns: []string{"email", "name", "subject", "message"},
	sortable: map[string]string{
		"submitted_at": "submitted_at",
		"email":        "email",
		"status":       "status",
		"created_at":   "created_at",
	},
	defaultSort: "submitted_at",
}

type contactStore struct {
	conn db.DBTX
}

func newContactStore(conn db.DBTX) ContactStore {
	return &contactStore{conn: conn}
}

func (s *contactStore) List(ctx context.Context, f SubmissionFilter) ([]model.ContactSubmission, int64, error) {
	return listPage[model.ContactSubmission](ctx, s.conn, contactList, submissionWhere(f, "status"), f.ListParams)
}

func (s *contactStore) GetByID(ctx context.Context, id uuid.UUID) (*model.ContactSubmission, error) {
	return queryOne[model.ContactSubmission](ctx, s.conn,
		psql.Select(contactColumns...).From("contact_submissions").Where(sq.Eq{"id": id.String()}))
}

func (s *contactStore) Create(ctx context.Context, sub *model.ContactSubmission) error {
	q := psql.Insert("contact_submissions").SetMap(map[string]any{
		"id":                sub.ID,
		"organization_id":   sub.OrganizationID,
		"name":              sub.Name,
		"email":             sub.Email,
		"marketing_opt_in":  sub.MarketingOptIn,
		"subject":           sub.Subject,
		"message":           sub.Message,
		"metadata":          sub.Metadata,
		"status":            sub.Status,
		"submitted_at":      sub.SubmittedAt,
		"responded_at":      sub.RespondedAt,
		"last_follow_up_at": sub.LastFollowUpAt,
		"created_by":        sub.CreatedBy,
		"updated_by":        sub.UpdatedBy,
	}).Suffix(returning(contactColumns))

	row, err := queryOne[model.ContactSubmission](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*sub = *row
	return nil
}

func (s *contactStore) Update(ctx context.Context, sub *model.ContactSubmission) error {
	q := psql.Update("contact_submissions").SetMap(map[string]any{
		"organization_id":   sub.OrganizationID,
		"name":              sub.Name,
		"email":             sub.Email,
		"marketing_opt_in":  sub.MarketingOptIn,
		"subject":           sub.Subject,
		"message":           sub.Message,
		"metadata":          sub.Metadata,
		"status":            sub.Status,
		"responded_at":      sub.RespondedAt,
		"last_follow_up_at": sub.LastFollowUpAt,
		"is_archived":       sub.IsArchived,
		"archived_at":       sub.ArchivedAt,
		"archived_by":       sub.ArchivedBy,
		"archived_reason":   sub.ArchivedReason,
		"updated_by":        sub.UpdatedBy,
		"updated_at":        sq.Expr("now()"),
	}).Where(sq.Eq{"id": sub.ID.String()}).Suffix(returning(contactColumns))

	row, err := queryOne[model.ContactSubmission](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*sub = *row
	return nil
}
