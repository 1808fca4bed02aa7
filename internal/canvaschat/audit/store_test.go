package audit_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdobrica/canvaschat/internal/canvaschat/audit"
)

func openStore(t *testing.T) *audit.Store {
	t.Helper()
	s, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	s, err := audit.Open(path)
	require.NoError(t, err)
	v, err := s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	require.NoError(t, s.Close())

	s, err = audit.Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, err = s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestRecordAndRecent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []audit.Entry{
		{CommandID: "c1", Thread: "main", Text: "add a chart", Kind: "nested_component", Success: true, Message: "Added a new chart to the canvas.", Processor: "catalog", CreatedAt: base},
		{CommandID: "c2", Thread: "title", ComponentID: "title", Text: "make it bold", Kind: "style_patch", Success: true, Message: "Made it bold.", Processor: "heading", Pattern: "bold", CreatedAt: base.Add(time.Second)},
		{CommandID: "c3", Thread: "main", Text: "frobnicate", Kind: "none", ErrorClass: "recognition_miss", Message: "Sorry, I could not understand that command.", CreatedAt: base.Add(2 * time.Second)},
	}
	for _, e := range entries {
		require.NoError(t, s.Record(ctx, e))
	}

	recent, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c3", recent[0].CommandID)
	assert.Equal(t, "recognition_miss", recent[0].ErrorClass)
	assert.False(t, recent[0].Success)
	assert.Equal(t, "c2", recent[1].CommandID)
	assert.Equal(t, "title", recent[1].ComponentID)
	assert.Equal(t, "bold", recent[1].Pattern)
	assert.True(t, recent[1].CreatedAt.Equal(base.Add(time.Second)))

	all, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	main, err := s.ByThread(ctx, "main")
	require.NoError(t, err)
	require.Len(t, main, 2)
	assert.Equal(t, "c1", main[0].CommandID)
	assert.Empty(t, main[0].ComponentID)
}

func TestRecordDefaultsTimestamp(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, audit.Entry{CommandID: "c1", Thread: "main", Text: "hi", Kind: "none"}))

	recent, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.WithinDuration(t, time.Now(), recent[0].CreatedAt, time.Minute)
}
