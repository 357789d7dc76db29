package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"basegraph.app/backoffice/core/db"
	"basegraph.app/backoffice/internal/model"
)

var submissionColumns = []string{"id", "landing_page_id", "submission_type", "data", "created_at"}

type submissionStore struct {
	conn db.DBTX
}

func newSubmissionStore(conn db.DBTX) SubmissionStore {
	return &submissionStore{conn: conn}
}

func (s *submissionStore) Create(ctx context.Context, sub *model.LandingPageSubmission) error {
	q := psql.Insert("landing_page_submissions").SetMap(map[string]any{
		"id":              sub.ID,
		"landing_page_id": sub.LandingPageID,
		"submission_type": sub.SubmissionType,
		"data":            sub.Data,
	}).Suffix(returning(submissionColumns))

	row, err := queryOne[model.LandingPageSubmission](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*sub = *row
	return nil
}

type typeCount struct {
	SubmissionType model.SubmissionType `db:"submission_type"`
	Count          int64                `db:"count"`
}

func (s *submissionStore) CountByType(ctx context.Context, landingPageID uuid.UUID) (map[model.SubmissionType]int64, error) {
	rows, err := queryAll[typeCount](ctx, s.conn,
		psql.Select("submission_type", "COUNT(*) AS count").
			From("landing_page_submissions").
			Where(sq.Eq{"landing_page_id": landingPageID.String()}).
			GroupBy("submission_type"))
	if err != nil {
		return nil, err
	}

	counts := make(map[model.SubmissionType]int64, len(rows))
	for _, r := range rows {
		counts[r.SubmissionType] = r.Count
	}
	return counts, nil
}

func (s *submissionStore) ListRecent(ctx context.Context, landingPageID uuid.UUID, limit int) ([]model.LandingPageSubmission, error) {
	return queryAll[model.LandingPageSubmission](ctx, s.conn,
		psql.Select(submissionColumns...).
			From("landing_page_submissions").
			Where(sq.Eq{"landing_page_id": landingPageID.String()}).
			OrderBy("created_at DESC").
			Limit(uint64(limit)))
}
