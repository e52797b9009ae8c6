package stringql

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/valyala/bytebufferpool"
)

// Dialect defines the way value placeholders are rendered.
//
// NoDialect is a default mode. ? placeholders are passed to a driver as is,
// which suits SQLite and MySQL drivers. In every dialect \? is sent as a
// literal ? and is not counted as a placeholder.
// PostgreSQL mode can be set for a single statement:
//
//	q, err := stringql.PostgreSQL.Parameterize("select * from {table} where id = ?", params)
//
// or as default mode:
//
//	stringql.SetDialect(stringql.PostgreSQL)
//
// When PostgreSQL mode is activated, ? placeholders are
// replaced with numbered positional arguments like $1, $2...
type Dialect struct {
	cacheOnce sync.Once
	cacheLock sync.RWMutex
	cache     templateCache
}

var (
	// NoDialect is a default composer mode.
	NoDialect = &Dialect{}
	// PostgreSQL mode is to be used to automatically replace ? placeholders with $1, $2...
	PostgreSQL = &Dialect{}
)

var defaultDialect atomic.Pointer[Dialect]

func init() {
	defaultDialect.Store(NoDialect)
}

/*
SetDialect selects a Dialect to be used by package-level functions.

	stringql.SetDialect(stringql.PostgreSQL)
*/
func SetDialect(d *Dialect) {
	defaultDialect.Store(d)
}

func getDialect() *Dialect {
	return defaultDialect.Load()
}

/*
Parameterize composes a template, quoting identifiers found in params.

	q, err := stringql.PostgreSQL.Parameterize(
		"select {col} from {table} where {key} = ?",
		stringql.Params{"col": "name", "table": "people", "key": "id"})

produces

	select "name" from "people" where "id" = $1

A template is used verbatim when params is empty. Braces are not
interpreted in that case.
*/
func (d *Dialect) Parameterize(tmpl string, params Params) (*Query, error) {
	if len(params) == 0 {
		q := getQuery(d)
		q.addChunk(tmpl, false)
		return q, nil
	}
	t, err := d.getTemplate(tmpl)
	if err != nil {
		return nil, err
	}
	return d.compose(t, params, nil)
}

/*
ParameterizeRow composes an INSERT-like template from a Row.

The template must refer to {fields} and {placeholders}. Those are filled
with quoted Row keys and one ? placeholder per key. Row values become
query arguments in the same order. Keys are sorted, and keys listed in
dropKeys are skipped.

	q, err := stringql.ParameterizeRow(
		"insert into {table} ({fields}) values ({placeholders})",
		stringql.Row{"num": 101, "data": "text"},
		stringql.Params{"table": "test_table"})

produces

	insert into "test_table" ("data", "num") values (?, ?)
*/
func (d *Dialect) ParameterizeRow(tmpl string, row Row, params Params, dropKeys ...string) (*Query, error) {
	if _, ok := params[fieldsParam]; ok {
		return nil, errTooManyParams(fieldsParam)
	}
	if _, ok := params[placeholdersParam]; ok {
		return nil, errTooManyParams(placeholdersParam)
	}
	t, err := d.getTemplate(tmpl)
	if err != nil {
		return nil, err
	}
	if !t.hasField(fieldsParam) || !t.hasField(placeholdersParam) {
		return nil, errMissingElements(tmpl)
	}
	keys := rowKeys(row, dropKeys)
	if len(keys) == 0 {
		return nil, errEmptyRow()
	}
	return d.compose(t, params, &rowParams{keys: keys, row: row})
}

// writeUnescaped copies s into buf turning \? into a literal ?.
func writeUnescaped(s string, buf *bytebufferpool.ByteBuffer) {
	start := 0
	for pos := 0; pos < len(s)-1; pos++ {
		if s[pos] == '\\' && s[pos+1] == '?' {
			buf.WriteString(s[start:pos])
			start = pos + 1
			pos++
		}
	}
	buf.WriteString(s[start:])
}

// writePg copies s into buf and replaces ? placeholders with $1, $2...
func writePg(argNo int, s string, buf *bytebufferpool.ByteBuffer) int {
	start := 0
	for pos := 0; pos < len(s); pos++ {
		switch s[pos] {
		case '\\':
			if pos < len(s)-1 && s[pos+1] == '?' {
				buf.WriteString(s[start:pos])
				buf.WriteByte('?')
				pos++
				start = pos + 1
			}
		case '?':
			buf.WriteString(s[start:pos])
			buf.WriteByte('$')
			buf.B = strconv.AppendInt(buf.B, int64(argNo), 10)
			argNo++
			start = pos + 1
		}
	}
	if start < len(s) {
		buf.WriteString(s[start:])
	}
	return argNo
}
