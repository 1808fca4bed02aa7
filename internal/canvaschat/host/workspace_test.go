package host_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdobrica/canvaschat/common/retry"
	"github.com/bdobrica/canvaschat/internal/canvaschat/document"
	"github.com/bdobrica/canvaschat/internal/canvaschat/host"
)

const seed = `
theme:
  name: ocean
  palette:
    primary: "#0ea5e9"
components:
  - id: page
    type: container
    children:
      - id: card
        type: card
        children:
          - id: title
            type: heading
            style:
              fontSize: 16px
  - id: board
    type: kanban
queries:
  - id: q1
    name: Sales
    schema:
      columns:
        - name: month
        - name: revenue
        - name: revenue
  - id: ""
    name: broken
  - id: q2
    name: Users
previews:
  q1: 4200
`

func loadSeed(t *testing.T) *host.Workspace {
	t.Helper()
	ws, err := host.LoadWorkspace([]byte(seed))
	require.NoError(t, err)
	return ws
}

func TestLoadWorkspace(t *testing.T) {
	ws := loadSeed(t)
	assert.Equal(t, 4, ws.Count())
	assert.Equal(t, "ocean", ws.Theme().Name)

	title, ok := ws.Component("title")
	require.True(t, ok)
	assert.Equal(t, 2, title.Depth)
	assert.Equal(t, "16px", title.Style["fontSize"])
}

func TestSelection(t *testing.T) {
	ws := loadSeed(t)

	assert.Nil(t, ws.Selection(nil))
	assert.Nil(t, ws.Selection([]string{"missing"}))
	assert.Nil(t, ws.Selection([]string{"title", "board"}), "unrelated selections are ambiguous")

	sel := ws.Selection([]string{"page", "card", "title"})
	require.NotNil(t, sel)
	assert.Equal(t, "title", sel.Component.ID)
	require.NotNil(t, sel.Parent)
	assert.Equal(t, "card", sel.Parent.ID)

	sel = ws.Selection([]string{"board"})
	require.NotNil(t, sel)
	assert.Nil(t, sel.Parent)
}

func TestBuildSnapshotValidates(t *testing.T) {
	ws := loadSeed(t)
	snap, err := host.BuildSnapshot(context.Background(), ws, retry.Config{MaxAttempts: 1})
	require.NoError(t, err)

	require.Len(t, snap.Queries, 2)
	q, ok := snap.QueryByName("sales")
	require.True(t, ok)
	assert.Equal(t, []string{"month", "revenue"}, q.Fields)
	field, ok := q.HasField("Revenue")
	assert.True(t, ok)
	assert.Equal(t, "revenue", field)

	users, ok := snap.QueryByID("q2")
	require.True(t, ok)
	assert.Empty(t, users.Fields)
}

type failingProvider struct{ calls int }

func (f *failingProvider) Queries(context.Context) ([]host.RawQuery, error) {
	f.calls++
	return nil, errors.New("connection reset")
}

func (f *failingProvider) WebServices(context.Context) ([]host.RawWebService, error) {
	return nil, nil
}

func TestBuildSnapshotFailure(t *testing.T) {
	p := &failingProvider{}
	_, err := host.BuildSnapshot(context.Background(), p, retry.Config{MaxAttempts: 2, InitialDelay: 1, MaxDelay: 1})
	require.Error(t, err)
	assert.Equal(t, 2, p.calls)
}

func TestSinkOperations(t *testing.T) {
	ctx := context.Background()
	ws := loadSeed(t)

	require.NoError(t, ws.UpdateComponent(ctx, "title", host.Update{Style: map[string]any{"color": "#ff0000"}}))
	title, _ := ws.Component("title")
	assert.Equal(t, "#ff0000", title.Style["color"])
	assert.Equal(t, "16px", title.Style["fontSize"])

	err := ws.UpdateComponent(ctx, "nope", host.Update{Props: map[string]any{"a": 1}})
	require.ErrorIs(t, err, host.ErrNotFound)

	require.NoError(t, ws.AppendChild(ctx, "card", document.New("btn", document.TypeButton)))
	btn, ok := ws.Component("btn")
	require.True(t, ok)
	assert.Equal(t, 2, btn.Depth)

	err = ws.AppendChild(ctx, "board", document.New("x", document.TypeButton))
	require.ErrorIs(t, err, document.ErrNotContainer)

	require.NoError(t, ws.UpdateWorkspace(ctx, host.WorkspaceUpdate{
		Theme:   &document.Theme{Palette: map[string]string{"accent": "#ff00ff"}},
		Toolbar: map[string]any{"position": "bottom"},
	}))
	theme := ws.Theme()
	assert.Equal(t, "ocean", theme.Name)
	assert.Equal(t, "#ff00ff", theme.Palette["accent"])
	assert.Equal(t, "#0ea5e9", theme.Palette["primary"])
	assert.Equal(t, "bottom", ws.Toolbar()["position"])
}

func TestPreviewQuery(t *testing.T) {
	ws := loadSeed(t)
	v, err := ws.PreviewQuery(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, 4200, v)

	_, err = ws.PreviewQuery(context.Background(), "q2")
	require.ErrorIs(t, err, host.ErrNotFound)
}
