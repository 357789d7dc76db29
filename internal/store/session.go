package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"basegraph.app/backoffice/core/db"
	"basegraph.app/backoffice/internal/model"
)

var sessionColumns = []string{"id", "user_id", "expires_at", "created_at"}

type sessionStore struct {
	conn db.DBTX
}

func newSessionStore(conn db.DBTX) SessionStore {
	return &sessionStore{conn: conn}
}

func (s *sessionStore) GetValid(ctx context.Context, id int64) (*model.Session, error) {
	return queryOne[model.Session](ctx, s.conn,
		psql.Select(sessionColumns...).From("sessions").
			Where(sq.Eq{"id": id}).
			Where("expires_at > now()"))
}

func (s *sessionStore) Create(ctx context.Context, session *model.Session) error {
	q := psql.Insert("sessions").SetMap(map[string]any{
		"id":         session.ID,
		"user_id":    session.UserID,
		"expires_at": session.ExpiresAt,
	}).Suffix(returning(sessionColumns))

	row, err := queryOne[model.Session](ctx, s.conn, q)
	if err != nil {
		return err
	}
	*session = *row
	return nil
}

func (s *sessionStore) Delete(ctx context.Context, id int64) error {
	_, err := exec(ctx, s.conn, psql.Delete("sessions").Where(sq.Eq{"id": id}))
	return err
}
