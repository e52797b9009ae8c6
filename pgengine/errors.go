package pgengine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorCodesURL points to the list of PostgreSQL error codes.
const ErrorCodesURL = "https://www.postgresql.org/docs/current/errcodes-appendix.html"

/*
DatabaseError is a PostgreSQL server error along with the statement
that caused it.

Use errors.As to get one:

	var dbErr *pgengine.DatabaseError
	if errors.As(err, &dbErr) && dbErr.Code == "42P01" {
		// undefined table
	}
*/
type DatabaseError struct {
	*pgconn.PgError
	Query string
}

func (e *DatabaseError) Error() string {
	var b strings.Builder
	b.WriteString("postgres: ")
	if e.Severity != "" {
		fmt.Fprintf(&b, "%s: ", e.Severity)
	}
	fmt.Fprintf(&b, "%s (SQLSTATE %s)", e.Message, e.Code)
	if e.Detail != "" {
		fmt.Fprintf(&b, "; detail: %s", e.Detail)
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, "; hint: %s", e.Hint)
	}
	if e.Position > 0 {
		fmt.Fprintf(&b, "; position: %d", e.Position)
	}
	if e.Query != "" {
		fmt.Fprintf(&b, "; query: %s", e.Query)
	}
	fmt.Fprintf(&b, "; see %s", ErrorCodesURL)
	return b.String()
}

func (e *DatabaseError) Unwrap() error {
	return e.PgError
}

// WrapError wraps PostgreSQL server errors into DatabaseError.
// Other errors are returned as is.
func WrapError(err error, query string) error {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return err
	}
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return err
	}
	return &DatabaseError{PgError: pgErr, Query: query}
}
