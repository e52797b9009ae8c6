package stringql

import (
	"fmt"
	"strings"
)

// segment is either a piece of literal SQL or a {field} reference.
type segment struct {
	text  string
	field string
}

// template is a parsed format string.
type template struct {
	segments []segment
}

func (t *template) hasField(name string) bool {
	for _, s := range t.segments {
		if s.field == name {
			return true
		}
	}
	return false
}

// parseTemplate splits s into literal text and {field} references.
// {{ and }} stand for literal braces.
func parseTemplate(s string) (*template, error) {
	t := &template{segments: make([]segment, 0, 8)}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	start := 0
	for pos := 0; pos < len(s); pos++ {
		switch s[pos] {
		case '{':
			lit.WriteString(s[start:pos])
			if pos+1 < len(s) && s[pos+1] == '{' {
				lit.WriteByte('{')
				pos++
				start = pos + 1
				continue
			}
			end := strings.IndexByte(s[pos+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed '{' at offset %d", ErrBadTemplate, pos)
			}
			name := s[pos+1 : pos+1+end]
			if !isFieldName(name) {
				return nil, fmt.Errorf("%w: invalid field name %q at offset %d", ErrBadTemplate, name, pos)
			}
			flush()
			t.segments = append(t.segments, segment{field: name})
			pos += end + 1
			start = pos + 1
		case '}':
			lit.WriteString(s[start:pos])
			if pos+1 < len(s) && s[pos+1] == '}' {
				lit.WriteByte('}')
				pos++
				start = pos + 1
				continue
			}
			return nil, fmt.Errorf("%w: single '}' at offset %d", ErrBadTemplate, pos)
		}
	}
	if start < len(s) {
		lit.WriteString(s[start:])
	}
	flush()
	return t, nil
}

// isFieldName reports whether name is a keyword-style field name.
// Positional ({}, {0}), attribute and format-spec fields aren't supported.
func isFieldName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// countPlaceholders returns the number of ? value placeholders in s.
// Escaped \? marks aren't counted.
func countPlaceholders(s string) int {
	n := 0
	for pos := 0; pos < len(s); pos++ {
		switch s[pos] {
		case '\\':
			if pos < len(s)-1 && s[pos+1] == '?' {
				pos++
			}
		case '?':
			n++
		}
	}
	return n
}
