package stringql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/bytebufferpool"
)

func TestParseTemplate(t *testing.T) {
	tmpl, err := parseTemplate("insert into {table} ({fields}) values ({placeholders}) -- {{x}}")
	require.NoError(t, err)
	assert.Equal(t, []segment{
		{text: "insert into "},
		{field: "table"},
		{text: " ("},
		{field: "fields"},
		{text: ") values ("},
		{field: "placeholders"},
		{text: ") -- {x}"},
	}, tmpl.segments)
	assert.True(t, tmpl.hasField("fields"))
	assert.False(t, tmpl.hasField("cols"))
}

func TestParseTemplateEdges(t *testing.T) {
	tmpl, err := parseTemplate("{a}{b_2}")
	require.NoError(t, err)
	assert.Equal(t, []segment{{field: "a"}, {field: "b_2"}}, tmpl.segments)

	tmpl, err = parseTemplate("")
	require.NoError(t, err)
	assert.Empty(t, tmpl.segments)

	for _, s := range []string{"{", "}", "{a", "a}", "{a b}", "{2a}", "{a.b}", "{a[0]}", "{a:>10}"} {
		_, err := parseTemplate(s)
		assert.ErrorIs(t, err, ErrBadTemplate, s)
	}
}

func TestCountPlaceholders(t *testing.T) {
	assert.Equal(t, 0, countPlaceholders("select 1"))
	assert.Equal(t, 2, countPlaceholders("a = ? and b = ?"))
	assert.Equal(t, 1, countPlaceholders(`a \? b and c = ?`))
	assert.Equal(t, 0, countPlaceholders(`trailing \?`))
}

func TestWriteUnescaped(t *testing.T) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeUnescaped(`a = ? and b \? c and d = '\?'`, buf)
	assert.Equal(t, `a = ? and b ? c and d = '?'`, buf.String())

	buf.Reset()
	writeUnescaped(`trailing \`, buf)
	assert.Equal(t, `trailing \`, buf.String())
}

func TestWritePg(t *testing.T) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	n := writePg(1, `a = ? and b \? c and d = ?`, buf)
	assert.Equal(t, 3, n)
	assert.Equal(t, `a = $1 and b ? c and d = $2`, buf.String())

	buf.Reset()
	n = writePg(3, "(?, ?)", buf)
	assert.Equal(t, 5, n)
	assert.Equal(t, "($3, $4)", buf.String())
}

func TestTemplateCache(t *testing.T) {
	d := &Dialect{}
	_, err := d.getTemplate("select {col} from t")
	require.NoError(t, err)
	assert.Equal(t, 1, d.cachedTemplates())

	first, _ := d.getTemplate("select {col} from t")
	second, _ := d.getTemplate("select {col} from t")
	assert.Same(t, first, second)

	_, err = d.getTemplate("select {col from t")
	assert.ErrorIs(t, err, ErrBadTemplate)
	assert.Equal(t, 1, d.cachedTemplates())

	d.ClearCache()
	assert.Equal(t, 0, d.cachedTemplates())
}

func TestRowKeys(t *testing.T) {
	row := Row{"num": 1, "data": "x", "skip": true}
	assert.Equal(t, []string{"data", "num"}, rowKeys(row, []string{"skip", "absent"}))
	assert.Equal(t, []string{"data", "num", "skip"}, rowKeys(row, nil))
	assert.Empty(t, rowKeys(Row{}, nil))
}

func TestPlaceholderList(t *testing.T) {
	assert.Equal(t, "", placeholderList(0))
	assert.Equal(t, "?", placeholderList(1))
	assert.Equal(t, "?, ?, ?", placeholderList(3))
}
