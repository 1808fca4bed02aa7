package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
)

func TestTree_AddAndFind(t *testing.T) {
	tree := document.NewTree()
	root := document.New("root", document.TypeContainer)
	root.Children = []*document.Component{document.New("txt", document.TypeText)}

	require.NoError(t, tree.Add(root))
	assert.Equal(t, 2, tree.Len())

	txt, ok := tree.Find("txt")
	require.True(t, ok)
	assert.Equal(t, 1, txt.Depth)
	assert.Same(t, root, txt.Parent())

	parent, err := tree.Parent("txt")
	require.NoError(t, err)
	assert.Same(t, root, parent)
}

func TestTree_RejectsDuplicateIDs(t *testing.T) {
	tree := document.NewTree()
	require.NoError(t, tree.Add(document.New("a", document.TypeText)))

	err := tree.Add(document.New("a", document.TypeHeading))
	require.ErrorIs(t, err, document.ErrDuplicateID)

	box := document.New("box", document.TypeContainer)
	require.NoError(t, tree.Add(box))
	err = tree.AppendChild("box", document.New("a", document.TypeButton))
	require.ErrorIs(t, err, document.ErrDuplicateID)
	assert.Empty(t, box.Children)
}

func TestTree_AppendChildKeepsOrder(t *testing.T) {
	tree := document.NewTree()
	box := document.New("box", document.TypeCard)
	box.Depth = 0
	require.NoError(t, tree.Add(box))

	require.NoError(t, tree.AppendChild("box", document.New("b1", document.TypeButton)))
	require.NoError(t, tree.AppendChild("box", document.New("b2", document.TypeButton)))

	require.Len(t, box.Children, 2)
	assert.Equal(t, "b1", box.Children[0].ID)
	assert.Equal(t, "b2", box.Children[1].ID)
	assert.Equal(t, 1, box.Children[1].Depth)
	assert.True(t, tree.IsAncestor("box", "b2"))
}

func TestTree_AppendChildRequiresContainer(t *testing.T) {
	tree := document.NewTree()
	require.NoError(t, tree.Add(document.New("t", document.TypeText)))

	err := tree.AppendChild("t", document.New("x", document.TypeButton))
	require.ErrorIs(t, err, document.ErrNotContainer)

	err = tree.AppendChild("missing", document.New("y", document.TypeButton))
	require.ErrorIs(t, err, document.ErrNotFound)
}

func TestTree_MergeStyleIsShallowAndIdempotent(t *testing.T) {
	tree := document.NewTree()
	c := document.New("t", document.TypeText)
	c.Style["color"] = "#000000"
	c.Style["fontSize"] = "16px"
	require.NoError(t, tree.Add(c))

	patch := map[string]any{"color": "#ff0000"}
	require.NoError(t, tree.MergeStyle("t", patch))
	once := c.StyleSnapshot()
	require.NoError(t, tree.MergeStyle("t", patch))

	assert.Equal(t, once, c.StyleSnapshot())
	assert.Equal(t, "16px", c.Style["fontSize"])
	assert.Equal(t, "#ff0000", c.Style["color"])
}

func TestComponent_CloneIsDeep(t *testing.T) {
	c := document.New("k", document.TypeKanban)
	c.Props["columns"] = []any{map[string]any{"title": "Todo"}}

	cp := c.Clone()
	cp.Props["columns"].([]any)[0].(map[string]any)["title"] = "Changed"

	assert.Equal(t, "Todo", c.Props["columns"].([]any)[0].(map[string]any)["title"])
}
