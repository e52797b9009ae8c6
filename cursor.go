package stringql

import (
	"database/sql"
)

/*
Cursor is the outcome of DoQuery.

A cursor returned for ModeRead or ModeWriteRead wraps sql.Rows and must be
closed. A ModeWrite cursor only holds an exec result.
*/
type Cursor struct {
	rows   *sql.Rows
	result sql.Result
}

// Rows returns the underlying result set, or nil for ModeWrite cursors.
func (c *Cursor) Rows() *sql.Rows {
	return c.rows
}

// Next prepares the next row for Scan.
func (c *Cursor) Next() bool {
	if c.rows == nil {
		return false
	}
	return c.rows.Next()
}

// Scan copies the columns of the current row into dest.
func (c *Cursor) Scan(dest ...interface{}) error {
	if c.rows == nil {
		return sql.ErrNoRows
	}
	return c.rows.Scan(dest...)
}

/*
FetchOne advances to the next row and scans it into dest.

sql.ErrNoRows is returned when there are no rows left.
*/
func (c *Cursor) FetchOne(dest ...interface{}) error {
	if !c.Next() {
		if err := c.Err(); err != nil {
			return err
		}
		return sql.ErrNoRows
	}
	return c.rows.Scan(dest...)
}

/*
FetchAll reads all remaining rows and closes the cursor.

Each row is returned as a slice of column values. []byte values are
converted to strings.
*/
func (c *Cursor) FetchAll() ([][]interface{}, error) {
	if c.rows == nil {
		return nil, nil
	}
	defer c.rows.Close()

	cols, err := c.rows.Columns()
	if err != nil {
		return nil, err
	}
	var res [][]interface{}
	for c.rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err = c.rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		res = append(res, values)
	}
	if err = c.rows.Err(); err != nil {
		return nil, err
	}
	return res, c.rows.Close()
}

// Columns returns the column names of the result set.
func (c *Cursor) Columns() ([]string, error) {
	if c.rows == nil {
		return nil, nil
	}
	return c.rows.Columns()
}

// RowsAffected returns the number of rows changed by a ModeWrite statement.
func (c *Cursor) RowsAffected() (int64, error) {
	if c.result == nil {
		return 0, ErrNoResult
	}
	return c.result.RowsAffected()
}

// Err returns the error, if any, encountered during row iteration.
func (c *Cursor) Err() error {
	if c.rows == nil {
		return nil
	}
	return c.rows.Err()
}

// Close closes the result set. It's safe to call Close more than once.
func (c *Cursor) Close() error {
	if c.rows == nil {
		return nil
	}
	return c.rows.Close()
}
