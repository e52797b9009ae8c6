package stringql

import (
	"github.com/valyala/bytebufferpool"
)

type queryChunk struct {
	bufLow   int
	bufHigh  int
	verbatim bool
}

/*
Query is a composed SQL statement.

Quoted identifiers are kept apart from the rest of the text, so a ?
inside an identifier is never mistaken for a value placeholder.

Call Close once the statement is no longer needed to return its buffers
to a pool.
*/
type Query struct {
	dialect *Dialect
	chunks  []queryChunk
	buf     *bytebufferpool.ByteBuffer
	sql     *bytebufferpool.ByteBuffer
	args    []interface{}
}

// SQL builds and returns an SQL statement.
func (q *Query) SQL() string {
	if q.sql == nil {
		argNo := 1
		buf := bytebufferpool.Get()
		q.sql = buf
		for _, chunk := range q.chunks {
			s := q.buf.B[chunk.bufLow:chunk.bufHigh]
			switch {
			case chunk.verbatim:
				buf.Write(s)
			case q.dialect == PostgreSQL:
				argNo = writePg(argNo, string(s), buf)
			default:
				writeUnescaped(string(s), buf)
			}
		}
	}
	return string(q.sql.B)
}

// String returns the same text as SQL.
func (q *Query) String() string {
	return q.SQL()
}

/*
Args returns the list of arguments to be passed to a database
driver for statement execution.

Statements composed from a Row or by Compose carry arguments.
*/
func (q *Query) Args() []interface{} {
	return q.args
}

// Placeholders returns the number of value placeholders in the statement.
func (q *Query) Placeholders() int {
	n := 0
	for _, chunk := range q.chunks {
		if !chunk.verbatim {
			n += countPlaceholders(string(q.buf.B[chunk.bufLow:chunk.bufHigh]))
		}
	}
	return n
}

// Dialect returns the dialect the statement is rendered with.
func (q *Query) Dialect() *Dialect {
	return q.dialect
}

/*
Invalidate forces a rebuild on next SQL call.

Most likely you don't need to call this method directly.
*/
func (q *Query) Invalidate() {
	if q.sql != nil {
		bytebufferpool.Put(q.sql)
		q.sql = nil
	}
}

/*
Close puts buffers and other objects allocated to build an SQL statement
back to pool for reuse by other Query instances.

Query instance should not be used after Close method call.
*/
func (q *Query) Close() {
	reuseQuery(q)
}

// addChunk appends a piece of statement text.
// Verbatim chunks are not scanned for value placeholders.
func (q *Query) addChunk(s string, verbatim bool) {
	if s == "" {
		return
	}
	low := q.buf.Len()
	q.buf.WriteString(s)
	if n := len(q.chunks); n > 0 && q.chunks[n-1].verbatim == verbatim && q.chunks[n-1].bufHigh == low {
		q.chunks[n-1].bufHigh = q.buf.Len()
	} else {
		q.chunks = append(q.chunks, queryChunk{
			bufLow:   low,
			bufHigh:  q.buf.Len(),
			verbatim: verbatim,
		})
	}
	q.Invalidate()
}
