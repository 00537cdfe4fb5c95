package dberrors

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the document store cares about
const (
	codeUndefinedTable = "42P01"
	codeQueryCanceled  = "57014"
)

// ErrSchemaMissing means the documents table has not been migrated
var ErrSchemaMissing = errors.New("documents table does not exist, run the migrations")

// IsUndefinedTableError checks if the error is a PostgreSQL undefined_table error
func IsUndefinedTableError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable
}

// IsCanceledError reports a statement cancelled by the server or by the caller's context
func IsCanceledError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeQueryCanceled {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Classify rewrites err into a clearer message when its cause is known
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsUndefinedTableError(err):
		return fmt.Errorf("%w: %w", ErrSchemaMissing, err)
	case IsCanceledError(err):
		return fmt.Errorf("query cancelled: %w", err)
	default:
		return err
	}
}
