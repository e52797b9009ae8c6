package stringql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/bytebufferpool"
)

/*
Params maps template field names to identifiers.

Supported values are:

	string, Ident        a single identifier: "name"
	[]string, Idents     a list of identifiers: "name", "surname"
	QualifiedIdent       a dotted path: "schema"."table"
	Raw                  a trusted SQL fragment, written as is
*/
type Params map[string]interface{}

// Ident is a single SQL identifier.
type Ident string

// Idents is a comma-separated list of SQL identifiers.
type Idents []string

// QualifiedIdent is a dot-separated identifier path like schema.table.
type QualifiedIdent []string

/*
Raw is a trusted SQL fragment.

Raw fragments are not quoted. Any ? placeholders they contain are treated
as value placeholders, same as in the template itself.
*/
type Raw string

// QuoteIdent wraps name in double quotes, doubling any double quotes within it.
func QuoteIdent(name string) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := writeIdent(buf, name); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeIdent(buf *bytebufferpool.ByteBuffer, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidIdent)
	}
	if strings.IndexByte(name, 0) >= 0 {
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidIdent, name)
	}
	buf.WriteByte('"')
	start := 0
	for i := 0; i < len(name); i++ {
		if name[i] == '"' {
			buf.WriteString(name[start : i+1])
			buf.WriteByte('"')
			start = i + 1
		}
	}
	buf.WriteString(name[start:])
	buf.WriteByte('"')
	return nil
}

func writeIdentList(buf *bytebufferpool.ByteBuffer, names []string, sep string) error {
	if len(names) == 0 {
		return fmt.Errorf("%w: empty identifier list", ErrInvalidIdent)
	}
	for i, name := range names {
		if i > 0 {
			buf.WriteString(sep)
		}
		if err := writeIdent(buf, name); err != nil {
			return err
		}
	}
	return nil
}

// writeParam renders a param value into buf.
// It reports whether the written text is a raw SQL fragment.
func writeParam(buf *bytebufferpool.ByteBuffer, name string, value interface{}) (raw bool, err error) {
	switch v := value.(type) {
	case string:
		err = writeIdent(buf, v)
	case Ident:
		err = writeIdent(buf, string(v))
	case []string:
		err = writeIdentList(buf, v, ", ")
	case Idents:
		err = writeIdentList(buf, v, ", ")
	case QualifiedIdent:
		err = writeIdentList(buf, v, ".")
	case Raw:
		buf.WriteString(string(v))
		raw = true
	default:
		err = fmt.Errorf("%w: {%s} is %T", ErrWrongParamType, name, value)
	}
	if err != nil && !errors.Is(err, ErrWrongParamType) {
		err = fmt.Errorf("{%s}: %w", name, err)
	}
	return raw, err
}
