package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate")

	// ErrMissingReference is returned when a write points at a row that does
	// not exist. It also matches ErrNotFound.
	ErrMissingReference = errors.New("missing reference")
)

// DuplicateError names the violated unique index.
type DuplicateError struct {
	Constraint string
	Err        error
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("unique constraint violation: %s", e.Constraint)
}

func (e *DuplicateError) Unwrap() []error {
	return []error{ErrDuplicate, e.Err}
}

// ReferenceError names the violated foreign key.
type ReferenceError struct {
	Constraint string
	Detail     string
	Err        error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("foreign key violation: %s: %s", e.Constraint, e.Detail)
}

func (e *ReferenceError) Unwrap() []error {
	return []error{ErrMissingReference, ErrNotFound, e.Err}
}

// mapError translates driver errors into store sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return &DuplicateError{Constraint: pgErr.ConstraintName, Err: err}
	case pgerrcode.ForeignKeyViolation:
		return &ReferenceError{Constraint: pgErr.ConstraintName, Detail: pgErr.Detail, Err: err}
	case pgerrcode.QueryCanceled:
		return fmt.Errorf("query canceled: %w", err)
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.CannotConnectNow,
		pgerrcode.TooManyConnections:
		return fmt.Errorf("database connection error: %w", err)
	default:
		return fmt.Errorf("postgres error [%s]: %s: %w", pgErr.Code, pgErr.Message, err)
	}
}
