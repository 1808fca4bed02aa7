package catalog_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdobrica/canvaschat/internal/canvaschat/catalog"
	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
)

func TestDefaultCatalogLoads(t *testing.T) {
	cat := catalog.Default()
	require.NotEmpty(t, cat.Entries())

	e, ok := cat.Lookup(document.TypeCard)
	require.True(t, ok)
	assert.True(t, e.Container)
	assert.Contains(t, e.Variants, "cards")

	e, ok = cat.Lookup(document.TypeContainer)
	require.True(t, ok)
	assert.Contains(t, e.Variants, "box")
	assert.Contains(t, e.Variants, "boxes")
}

func TestMatch(t *testing.T) {
	cat := catalog.Default()
	cases := []struct {
		text string
		want document.Type
		verb string
	}{
		{"add a button", document.TypeButton, "add"},
		{"Create a new Kanban board", document.TypeKanban, "create"},
		{"insert some query values please", document.TypeQueryValue, "insert"},
		{"please add a text box", document.TypeInput, "add"},
		{"add a box", document.TypeContainer, "add"},
		{"put a line chart here", document.TypeChart, "put"},
		{"new todo list", document.TypeTodo, "new"},
		{"build a to-do list", document.TypeTodo, "build"},
		{"drop a paragraph", document.TypeText, "drop"},
	}
	for _, c := range cases {
		m, ok := cat.Match(c.text)
		require.True(t, ok, c.text)
		assert.Equal(t, c.want, m.Entry.Type, c.text)
		assert.Equal(t, c.verb, m.Verb, c.text)
	}

	for _, miss := range []string{"make it blue", "add padding", "the button is nice", "buttons"} {
		_, ok := cat.Match(miss)
		assert.False(t, ok, miss)
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	cat := catalog.Default()
	first, ok := cat.Match("add a metric card")
	require.True(t, ok)
	for range 20 {
		again, _ := cat.Match("add a metric card")
		assert.Equal(t, first.Entry.Type, again.Entry.Type)
		assert.Equal(t, first.Variant, again.Variant)
	}
	assert.Equal(t, document.TypeQueryValue, first.Entry.Type)
}

func TestResolve(t *testing.T) {
	cat := catalog.Default()
	e, ok := cat.Resolve("a Button")
	require.True(t, ok)
	assert.Equal(t, document.TypeButton, e.Type)

	_, ok = cat.Resolve("spaceship")
	assert.False(t, ok)
}

func TestInstantiateCopiesDefaults(t *testing.T) {
	cat := catalog.Default()
	a, err := cat.Instantiate(document.TypeKanban, "k1")
	require.NoError(t, err)
	b, err := cat.Instantiate(document.TypeKanban, "k2")
	require.NoError(t, err)

	cols := a.Props["columns"].([]any)
	cols[0].(map[string]any)["title"] = "Backlog"
	assert.Equal(t, "To Do", b.Props["columns"].([]any)[0].(map[string]any)["title"])

	_, err = cat.Instantiate(document.Type("spaceship"), "x")
	assert.Error(t, err)
}

func TestValidateProps(t *testing.T) {
	cat := catalog.Default()
	assert.NoError(t, cat.ValidateProps(document.TypeTable, map[string]any{"pageSize": 25, "hiddenColumns": []string{"id"}}))
	assert.Error(t, cat.ValidateProps(document.TypeTable, map[string]any{"pageSize": 0}))
	assert.Error(t, cat.ValidateProps(document.TypeChart, map[string]any{"chartType": "radar"}))
	assert.NoError(t, cat.ValidateProps(document.TypeHeading, map[string]any{"anything": true}))
}

func TestLoadRejectsInvalidDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": {Data: []byte(`
- type: button
  name: button
  defaults:
    props: {variant: sparkly}
  schema: |
    {"type": "object", "properties": {"variant": {"enum": ["primary"]}}}
`)},
		"dup.yaml": {Data: []byte(`
- {type: button, name: button}
- {type: button, name: cta}
`)},
	}
	_, err := catalog.Load(fsys, "bad.yaml")
	assert.ErrorContains(t, err, "button defaults")

	_, err = catalog.Load(fsys, "dup.yaml")
	assert.ErrorContains(t, err, "duplicate")

	_, err = catalog.Load(fsys, "missing.yaml")
	assert.Error(t, err)
}
