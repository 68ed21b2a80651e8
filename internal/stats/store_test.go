package stats

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCountsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")

	s, err := Open(path, nil)
	require.NoError(t, err)

	s.RecordAsync(true)
	s.RecordAsync(true)
	s.RecordAsync(false)
	require.NoError(t, s.Close()) // drains and flushes

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	c, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.TotalFiles)
	assert.Equal(t, int64(2), c.Succeeded)
	assert.Equal(t, int64(1), c.Failed)
}

func TestStoreFreshDatabaseStartsAtZero(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "stats.db"), nil)
	require.NoError(t, err)
	defer s.Close()

	c, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counters{}, c)
}

func TestStoreCloseIsIdempotent(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "stats.db"), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.NotPanics(t, func() { _ = s.Close() })
}
