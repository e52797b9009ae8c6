package stringql

import "errors"

var (
	// ErrWrongMode is returned when a query mode is not one of r, w or wr.
	ErrWrongMode = errors.New("stringql: wrong mode argument")
	// ErrWrongDataType is returned when query data is neither a list of
	// values nor a Row, or when a Row is passed to a read-only query.
	ErrWrongDataType = errors.New("stringql: wrong data argument type")
	// ErrPlaceholderCount is returned when the number of value placeholders
	// doesn't match the number of values.
	ErrPlaceholderCount = errors.New("stringql: wrong number of placeholders")
	// ErrQueryMissingElements is returned when a Row is composed into
	// a template that lacks {fields} or {placeholders}.
	ErrQueryMissingElements = errors.New("stringql: query missing elements")
	// ErrTooManyParams is returned when a caller passes fields or
	// placeholders params along with a Row. Those are generated from the Row.
	ErrTooManyParams = errors.New("stringql: too many params")
	// ErrMissingParam is returned when a template refers to an unknown param.
	ErrMissingParam = errors.New("stringql: missing param")
	// ErrWrongParamType is returned for params that can't be rendered.
	ErrWrongParamType = errors.New("stringql: wrong param type")
	// ErrBadTemplate is returned for malformed templates.
	ErrBadTemplate = errors.New("stringql: bad template")
	// ErrInvalidIdent is returned for identifiers that can't be quoted.
	ErrInvalidIdent = errors.New("stringql: invalid identifier")
	// ErrBatchShape is returned by BatchValues for empty or ragged input.
	ErrBatchShape = errors.New("stringql: bad batch shape")
	// ErrNoResult is returned by Cursor.RowsAffected for read cursors.
	ErrNoResult = errors.New("stringql: cursor has no exec result")
)
