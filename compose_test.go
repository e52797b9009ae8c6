package stringql_test

import (
	"testing"

	"github.com/gsimeone/stringql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rowToInsert = stringql.Row{
	"num":            101,
	"data":           "insert from row: OK",
	"ignore_me":      "please",
	"ignore_me_too!": "please",
}

var dropKeys = []string{"ignore_me", "ignore_me_too!"}

func TestNoParameterizationNeeded(t *testing.T) {
	q, err := stringql.Parameterize("select * from name_table", nil)
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, "select * from name_table", q.SQL())
	assert.Empty(t, q.Args())
}

func TestVerbatimKeepsBraces(t *testing.T) {
	q, err := stringql.Parameterize("select '{not a field}' from t", stringql.Params{})
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, "select '{not a field}' from t", q.SQL())
}

func TestParameterizationOfString(t *testing.T) {
	q, err := stringql.Parameterize("select {col} from {table}",
		stringql.Params{"col": "name", "table": "name_table"})
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `select "name" from "name_table"`, q.SQL())
}

func TestParameterizationOfCollection(t *testing.T) {
	q, err := stringql.Parameterize("select {cols} from name_table",
		stringql.Params{"cols": []string{"name", "surname"}})
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `select "name", "surname" from name_table`, q.SQL())
}

func TestMixedParameterization(t *testing.T) {
	q, err := stringql.Parameterize("select {cols} from {table}",
		stringql.Params{"cols": stringql.Idents{"name", "surname"}, "table": stringql.Ident("name_table")})
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `select "name", "surname" from "name_table"`, q.SQL())
}

func TestQualifiedAndRawParams(t *testing.T) {
	q, err := stringql.Parameterize("select {cols} from {table} {lock}",
		stringql.Params{
			"cols":  []string{"id"},
			"table": stringql.QualifiedIdent{"test_schema", "test_table"},
			"lock":  stringql.Raw("for update"),
		})
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `select "id" from "test_schema"."test_table" for update`, q.SQL())
}

func TestIdentifierInjectionIsQuoted(t *testing.T) {
	q, err := stringql.Parameterize("select * from {table}",
		stringql.Params{"table": `t"; drop table users; --`})
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `select * from "t""; drop table users; --"`, q.SQL())
}

func TestEscapedBraces(t *testing.T) {
	q, err := stringql.Parameterize("select '{{}}' as braces from {table}",
		stringql.Params{"table": "t"})
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `select '{}' as braces from "t"`, q.SQL())
}

func TestUnusedParamsAreIgnored(t *testing.T) {
	q, err := stringql.Parameterize("select 1 from {table}",
		stringql.Params{"table": "t", "other": "x"})
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `select 1 from "t"`, q.SQL())
}

func TestParameterizeErrors(t *testing.T) {
	cases := []struct {
		name   string
		tmpl   string
		params stringql.Params
		err    error
	}{
		{"missing param", "select {col} from {table}", stringql.Params{"col": "a"}, stringql.ErrMissingParam},
		{"unclosed brace", "select {col from t", stringql.Params{"col": "a"}, stringql.ErrBadTemplate},
		{"single closing brace", "select col} from t", stringql.Params{"col": "a"}, stringql.ErrBadTemplate},
		{"positional field", "select {} from t", stringql.Params{"col": "a"}, stringql.ErrBadTemplate},
		{"numeric field", "select {0} from t", stringql.Params{"col": "a"}, stringql.ErrBadTemplate},
		{"format spec", "select {col!r} from t", stringql.Params{"col": "a"}, stringql.ErrBadTemplate},
		{"wrong param type", "select {col} from t", stringql.Params{"col": 42}, stringql.ErrWrongParamType},
		{"empty identifier", "select {col} from t", stringql.Params{"col": ""}, stringql.ErrInvalidIdent},
		{"empty list", "select {cols} from t", stringql.Params{"cols": []string{}}, stringql.ErrInvalidIdent},
		{"nul byte", "select {col} from t", stringql.Params{"col": "a\x00b"}, stringql.ErrInvalidIdent},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q, err := stringql.Parameterize(c.tmpl, c.params)
			assert.Nil(t, q)
			assert.ErrorIs(t, err, c.err)
		})
	}
}

func TestParameterizationFromRow(t *testing.T) {
	q, err := stringql.ParameterizeRow(
		"insert into {table} ({fields}) values ({placeholders})",
		rowToInsert, stringql.Params{"table": "test_table"}, dropKeys...)
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `insert into "test_table" ("data", "num") values (?, ?)`, q.SQL())
	assert.Equal(t, []interface{}{"insert from row: OK", 101}, q.Args())
}

func TestParameterizationFromRowPg(t *testing.T) {
	q, err := stringql.PostgreSQL.ParameterizeRow(
		"insert into {table} ({fields}) values ({placeholders}) returning id",
		stringql.Row{"b": 2, "a": 1, "c": 3}, stringql.Params{"table": "t"})
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `insert into "t" ("a", "b", "c") values ($1, $2, $3) returning id`, q.SQL())
	assert.Equal(t, []interface{}{1, 2, 3}, q.Args())
}

func TestWrongParametersForRowInsertion(t *testing.T) {
	_, err := stringql.ParameterizeRow(
		"insert into {table} ({columns}) values ({data_values})",
		rowToInsert, stringql.Params{"table": "test_table"})
	assert.ErrorIs(t, err, stringql.ErrQueryMissingElements)
}

func TestRowWithFieldsParam(t *testing.T) {
	for _, name := range []string{"fields", "placeholders"} {
		_, err := stringql.ParameterizeRow(
			"insert into {table} ({fields}) values ({placeholders})",
			rowToInsert, stringql.Params{"table": "test_table", name: "x"})
		assert.ErrorIs(t, err, stringql.ErrTooManyParams, name)
	}
}

func TestRowWithAllKeysDropped(t *testing.T) {
	_, err := stringql.ParameterizeRow(
		"insert into {table} ({fields}) values ({placeholders})",
		stringql.Row{"ignore_me": 1}, stringql.Params{"table": "t"}, "ignore_me")
	assert.ErrorIs(t, err, stringql.ErrQueryMissingElements)
}

func TestPgPlaceholders(t *testing.T) {
	q, err := stringql.PostgreSQL.Parameterize(
		"update {table} set {col_1} = ? where {col_2} = ?",
		stringql.Params{"table": "test_table", "col_1": "data", "col_2": "num"})
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `update "test_table" set "data" = $1 where "num" = $2`, q.SQL())
	assert.Equal(t, 2, q.Placeholders())
}

func TestPgPlaceholderEscape(t *testing.T) {
	q, err := stringql.PostgreSQL.Parameterize(
		`select id from {table} where tags \?| ? and time < ?`,
		stringql.Params{"table": "series"})
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `select id from "series" where tags ?| $1 and time < $2`, q.SQL())
	assert.Equal(t, 2, q.Placeholders())
}

func TestPlaceholderEscape(t *testing.T) {
	q, err := stringql.NoDialect.Compose(stringql.ModeRead,
		`select {col} from t where x = '\?' and y = ?`, []interface{}{1},
		stringql.Params{"col": "c"})
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `select "c" from t where x = '?' and y = ?`, q.SQL())
	assert.Equal(t, 1, q.Placeholders())
	assert.Equal(t, []interface{}{1}, q.Args())
}

func TestVerbatimPlaceholderEscape(t *testing.T) {
	q, err := stringql.NoDialect.Parameterize(`select '\?', ?`, nil)
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `select '?', ?`, q.SQL())
	assert.Equal(t, 1, q.Placeholders())
}

func TestQuestionMarkInIdentifier(t *testing.T) {
	q, err := stringql.PostgreSQL.Parameterize("select {col} from t where id = ?",
		stringql.Params{"col": "why?"})
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `select "why?" from t where id = $1`, q.SQL())
	assert.Equal(t, 1, q.Placeholders())
}

func TestQueryReuse(t *testing.T) {
	for i := 0; i < 3; i++ {
		q, err := stringql.Parameterize("select {col} from t", stringql.Params{"col": "c"})
		require.NoError(t, err)
		assert.Equal(t, `select "c" from t`, q.SQL())
		assert.Equal(t, q.SQL(), q.String())
		q.Close()
	}
}
