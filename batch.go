package stringql

import (
	"fmt"

	"github.com/valyala/bytebufferpool"
)

/*
BatchValues pre-formats a multi-row VALUES list.

It returns a Raw fragment with one group of ? placeholders per row and
the row values flattened in the same order:

	values, args, err := stringql.BatchValues([][]interface{}{
		{1, "one"},
		{2, "two"},
	})
	// values == "(?, ?), (?, ?)"
	// args == []interface{}{1, "one", 2, "two"}

	cur, err := stringql.DoQuery(ctx, db, stringql.ModeWrite,
		"insert into {table} ({cols}) values {values}", args,
		stringql.Params{"table": "t", "cols": []string{"num", "data"}, "values": values})

All rows must have the same, non-zero number of values.
*/
func BatchValues(rows [][]interface{}) (Raw, []interface{}, error) {
	if len(rows) == 0 {
		return "", nil, fmt.Errorf("%w: no rows", ErrBatchShape)
	}
	width := len(rows[0])
	if width == 0 {
		return "", nil, fmt.Errorf("%w: row 0 is empty", ErrBatchShape)
	}

	group := "(" + placeholderList(width) + ")"
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	args := make([]interface{}, 0, width*len(rows))
	for i, row := range rows {
		if len(row) != width {
			return "", nil, fmt.Errorf("%w: row %d has %d values, expected %d", ErrBatchShape, i, len(row), width)
		}
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(group)
		args = append(args, row...)
	}
	return Raw(buf.String()), args, nil
}
