package stringql

import (
	"fmt"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Row maps column names to values to be inserted.
type Row map[string]interface{}

const (
	fieldsParam       = "fields"
	placeholdersParam = "placeholders"
)

type rowParams struct {
	keys []string
	row  Row
}

/*
Parameterize composes a template with the default dialect.

	q, err := stringql.Parameterize("select {cols} from {table}",
		stringql.Params{"cols": []string{"name", "surname"}, "table": "people"})
	if err != nil {
		return err
	}
	defer q.Close()
	// q.SQL() == `select "name", "surname" from "people"`
*/
func Parameterize(tmpl string, params Params) (*Query, error) {
	return getDialect().Parameterize(tmpl, params)
}

// ParameterizeRow composes an INSERT-like template from a Row with the default dialect.
func ParameterizeRow(tmpl string, row Row, params Params, dropKeys ...string) (*Query, error) {
	return getDialect().ParameterizeRow(tmpl, row, params, dropKeys...)
}

func (d *Dialect) compose(t *template, params Params, rp *rowParams) (*Query, error) {
	q := getQuery(d)
	scratch := bytebufferpool.Get()
	defer bytebufferpool.Put(scratch)

	for _, s := range t.segments {
		if s.field == "" {
			q.addChunk(s.text, false)
			continue
		}
		if rp != nil {
			switch s.field {
			case fieldsParam:
				scratch.Reset()
				if err := writeIdentList(scratch, rp.keys, ", "); err != nil {
					q.Close()
					return nil, fmt.Errorf("{%s}: %w", fieldsParam, err)
				}
				q.addChunk(scratch.String(), true)
				continue
			case placeholdersParam:
				q.addChunk(placeholderList(len(rp.keys)), false)
				continue
			}
		}
		value, ok := params[s.field]
		if !ok {
			q.Close()
			return nil, fmt.Errorf("%w: {%s}", ErrMissingParam, s.field)
		}
		scratch.Reset()
		raw, err := writeParam(scratch, s.field, value)
		if err != nil {
			q.Close()
			return nil, err
		}
		q.addChunk(scratch.String(), !raw)
	}

	if rp != nil {
		for _, k := range rp.keys {
			q.args = append(q.args, rp.row[k])
		}
	}
	return q, nil
}

// placeholderList returns n comma-separated ? placeholders.
func placeholderList(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

func errTooManyParams(name string) error {
	return fmt.Errorf("%w: {%s} is generated from the row and can't be passed as a param", ErrTooManyParams, name)
}

func errMissingElements(tmpl string) error {
	return fmt.Errorf("%w: %q must contain both {%s} and {%s}", ErrQueryMissingElements, tmpl, fieldsParam, placeholdersParam)
}

func errEmptyRow() error {
	return fmt.Errorf("%w: no fields left to insert", ErrQueryMissingElements)
}
