package localstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "hsetrack_backend/internals/databases"
)

type sampleDoc struct {
	Year  int      `json:"year"`
	Items []string `json:"items"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenLocal(":memory:", nil)
	require.NoError(t, err)
	s := New(db)
	require.NoError(t, s.Migrate())
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)
	var out sampleDoc
	found, err := s.Get(context.Background(), "otp/asia", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPutOverwritesWholeDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "otp/asia", sampleDoc{Year: 2025, Items: []string{"a", "b"}}))
	require.NoError(t, s.Put(ctx, "otp/asia", sampleDoc{Year: 2026, Items: []string{"c"}}))

	var out sampleDoc
	found, err := s.Get(ctx, "otp/asia", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sampleDoc{Year: 2026, Items: []string{"c"}}, out)
}

func TestKeysAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"otp/indonesia_duri", "otp/asia", "matrix/audit_duri", "tasks/all"} {
		require.NoError(t, s.Put(ctx, k, sampleDoc{Year: 2026}))
	}

	keys, err := s.Keys(ctx, "otp/")
	require.NoError(t, err)
	assert.Equal(t, []string{"otp/asia", "otp/indonesia_duri"}, keys)

	require.NoError(t, s.Delete(ctx, "otp/asia"))
	keys, err = s.Keys(ctx, "otp/")
	require.NoError(t, err)
	assert.Equal(t, []string{"otp/indonesia_duri"}, keys)
}
