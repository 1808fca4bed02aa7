package matrix

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maunium.net/go/mautrix/id"

	"github.com/bdobrica/canvaschat/internal/canvaschat/audit"
)

func TestDBSyncStore(t *testing.T) {
	store, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	defer store.Close()

	s := newDBSyncStore(store.DB())
	ctx := context.Background()
	user := id.UserID("@canvas:example.com")

	token, err := s.LoadNextBatch(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, s.SaveNextBatch(ctx, user, "s1"))
	require.NoError(t, s.SaveNextBatch(ctx, user, "s2"))
	token, err = s.LoadNextBatch(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "s2", token)

	require.NoError(t, s.SaveFilterID(ctx, user, "f1"))
	filter, err := s.LoadFilterID(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "f1", filter)

	other, err := s.LoadNextBatch(ctx, id.UserID("@other:example.com"))
	require.NoError(t, err)
	assert.Empty(t, other)
}
