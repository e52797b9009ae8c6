package stringql

import (
	"sync"

	"github.com/valyala/bytebufferpool"
)

var queryPool = sync.Pool{New: newQuery}

func newQuery() interface{} {
	return &Query{
		chunks: make([]queryChunk, 0, 8),
	}
}

func getQuery(d *Dialect) *Query {
	q := queryPool.Get().(*Query)
	q.dialect = d
	q.buf = bytebufferpool.Get()
	return q
}

func reuseQuery(q *Query) {
	q.Invalidate()
	if q.buf != nil {
		bytebufferpool.Put(q.buf)
		q.buf = nil
	}
	q.chunks = q.chunks[:0]
	q.args = nil
	q.dialect = nil
	queryPool.Put(q)
}
