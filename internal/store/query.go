package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"basegraph.app/backoffice/core/db"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ListParams are the paging, search and sort options shared by every listing.
type ListParams struct {
	Search   *string
	Page     int
	PageSize int
	SortBy   string
	SortDir  string
}

func (p ListParams) offset() uint64 {
	if p.Page < 1 {
		return 0
	}
	return uint64((p.Page - 1) * p.PageSize)
}

// listSpec describes how a table is listed.
type listSpec struct {
	table   string
	columns []string
	// searchColumns are OR-ed case-insensitive substring matches.
	searchColumns []string
	// sortable maps an accepted sortBy value to its column.
	sortable    map[string]string
	defaultSort string
}

// searchPredicate returns nil when there is no search term.
func searchPredicate(columns []string, term *string) sq.Sqlizer {
	if term == nil || strings.TrimSpace(*term) == "" {
		return nil
	}
	pattern := "%" + escapeLike(strings.TrimSpace(*term)) + "%"
	or := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, sq.Expr(col+" ILIKE ?", pattern))
	}
	return or
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (s listSpec) orderBy(p ListParams) string {
	col, ok := s.sortable[p.SortBy]
	if !ok {
		col = s.sortable[s.defaultSort]
	}
	dir := "DESC"
	if strings.EqualFold(p.SortDir, "asc") {
		dir = "ASC"
	}
	// id keeps pages stable when the sort column has ties
	return fmt.Sprintf("%s %s, id %s", col, dir, dir)
}

// selectPage builds the page query and the matching count query.
func (s listSpec) selectPage(where sq.And, p ListParams) (sq.SelectBuilder, sq.SelectBuilder) {
	if pred := searchPredicate(s.searchColumns, p.Search); pred != nil {
		where = append(where, pred)
	}

	rows := psql.Select(s.columns...).From(s.table).
		OrderBy(s.orderBy(p)).
		Limit(uint64(p.PageSize)).
		Offset(p.offset())
	count := psql.Select("COUNT(*)").From(s.table)

	if len(where) > 0 {
		rows = rows.Where(where)
		count = count.Where(where)
	}
	return rows, count
}

func listPage[T any](ctx context.Context, conn db.DBTX, s listSpec, where sq.And, p ListParams) ([]T, int64, error) {
	rowsQ, countQ := s.selectPage(where, p)

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building count query: %w", err)
	}
	var total int64
	if err := conn.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	items, err := queryAll[T](ctx, conn, rowsQ)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func queryAll[T any](ctx context.Context, conn db.DBTX, q sq.Sqlizer) ([]T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, mapError(err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// queryOne returns ErrNotFound when the query yields no row.
func queryOne[T any](ctx context.Context, conn db.DBTX, q sq.Sqlizer) (*T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, mapError(err)
	}
	return item, nil
}

func exec(ctx context.Context, conn db.DBTX, q sq.Sqlizer) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building statement: %w", err)
	}
	tag, err := conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}
