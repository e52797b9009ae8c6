package stringql

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
)

// Executor performs SQL queries.
// It's an interface accepted by DoQuery and Run.
// Both sql.DB and sql.Tx can be passed as executor.
type Executor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// ContextExecutor performs SQL queries with context.
// Both sql.DB and sql.Tx can be passed as context executor.
type ContextExecutor interface {
	Executor

	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Mode tells DoQuery how a statement is to be executed.
type Mode string

const (
	// ModeRead runs a query and returns a cursor over its rows.
	ModeRead Mode = "r"
	// ModeWrite executes a statement that doesn't return rows.
	ModeWrite Mode = "w"
	// ModeWriteRead executes a statement that returns rows, like INSERT ... RETURNING.
	ModeWriteRead Mode = "wr"
)

// ParseMode converts a mode string to a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q, expected one of r, w, wr", ErrWrongMode, s)
	}
	return m, nil
}

// Valid reports whether m is one of ModeRead, ModeWrite or ModeWriteRead.
func (m Mode) Valid() bool {
	switch m {
	case ModeRead, ModeWrite, ModeWriteRead:
		return true
	}
	return false
}

/*
DoQuery composes a statement with the default dialect and executes it.

data can be nil, a slice of values bound to ? placeholders, or a Row.
A Row is composed with ParameterizeRow and is only accepted for
ModeWrite and ModeWriteRead.

	cur, err := stringql.DoQuery(ctx, db, stringql.ModeRead,
		"select {col} from {table} where {key} = ?", []interface{}{100},
		stringql.Params{"col": "data", "table": "test_table", "key": "num"})
	if err != nil {
		return err
	}
	defer cur.Close()
	var data string
	err = cur.FetchOne(&data)
*/
func DoQuery(ctx context.Context, db Executor, mode Mode, tmpl string, data interface{}, params Params, dropKeys ...string) (*Cursor, error) {
	return getDialect().DoQuery(ctx, db, mode, tmpl, data, params, dropKeys...)
}

// DoQuery composes a statement and executes it. See DoQuery.
func (d *Dialect) DoQuery(ctx context.Context, db Executor, mode Mode, tmpl string, data interface{}, params Params, dropKeys ...string) (*Cursor, error) {
	q, err := d.Compose(mode, tmpl, data, params, dropKeys...)
	if err != nil {
		return nil, err
	}
	defer q.Close()
	return Run(ctx, db, mode, q)
}

/*
Compose validates DoQuery arguments and composes a statement
without executing it. Query arguments are bound to the returned Query.
*/
func (d *Dialect) Compose(mode Mode, tmpl string, data interface{}, params Params, dropKeys ...string) (*Query, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q, expected one of r, w, wr", ErrWrongMode, string(mode))
	}
	args, row, isRow, err := splitData(data)
	if err != nil {
		return nil, err
	}

	if isRow {
		if mode == ModeRead {
			return nil, fmt.Errorf("%w: a row can only be used to write, got mode %q", ErrWrongDataType, string(mode))
		}
		return d.ParameterizeRow(tmpl, row, params, dropKeys...)
	}

	q, err := d.Parameterize(tmpl, params)
	if err != nil {
		return nil, err
	}
	if n := q.Placeholders(); n != len(args) {
		q.Close()
		return nil, fmt.Errorf("%w: %d placeholders, %d values", ErrPlaceholderCount, n, len(args))
	}
	q.args = args
	return q, nil
}

// Compose composes a statement with the default dialect. See Dialect.Compose.
func Compose(mode Mode, tmpl string, data interface{}, params Params, dropKeys ...string) (*Query, error) {
	return getDialect().Compose(mode, tmpl, data, params, dropKeys...)
}

/*
Run executes a composed statement.

ModeWrite statements are executed via Exec. ModeRead and ModeWriteRead
statements are executed via Query and the returned Cursor holds the rows.
The Query is not closed by Run.
*/
func Run(ctx context.Context, db Executor, mode Mode, q *Query) (*Cursor, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q, expected one of r, w, wr", ErrWrongMode, string(mode))
	}
	query, args := q.SQL(), q.Args()
	ctxExecutor, hasCtx := db.(ContextExecutor)
	hasCtx = hasCtx && ctx != nil

	if mode == ModeWrite {
		var (
			res sql.Result
			err error
		)
		if hasCtx {
			res, err = ctxExecutor.ExecContext(ctx, query, args...)
		} else {
			res, err = db.Exec(query, args...)
		}
		if err != nil {
			return nil, err
		}
		return &Cursor{result: res}, nil
	}

	var (
		rows *sql.Rows
		err  error
	)
	if hasCtx {
		rows, err = ctxExecutor.QueryContext(ctx, query, args...)
	} else {
		rows, err = db.Query(query, args...)
	}
	if err != nil {
		return nil, err
	}
	return &Cursor{rows: rows}, nil
}

// splitData tells positional values from a Row.
func splitData(data interface{}) (args []interface{}, row Row, isRow bool, err error) {
	switch v := data.(type) {
	case nil:
		return nil, nil, false, nil
	case Row:
		return nil, v, true, nil
	case map[string]interface{}:
		return nil, Row(v), true, nil
	case []interface{}:
		return v, nil, false, nil
	case []byte:
		return nil, nil, false, wrongDataType(data)
	}

	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		args = make([]interface{}, rv.Len())
		for i := range args {
			args[i] = rv.Index(i).Interface()
		}
		return args, nil, false, nil
	}
	return nil, nil, false, wrongDataType(data)
}

func wrongDataType(data interface{}) error {
	return fmt.Errorf("%w: %T, expected a slice of values or a Row", ErrWrongDataType, data)
}
