package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "hsetrack_backend/internals/databases"
	"hsetrack_backend/internals/databases/localstore"
	"hsetrack_backend/internals/features/auditlogs/model"
	"hsetrack_backend/internals/logger"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := database.OpenLocal(":memory:", nil)
	require.NoError(t, err)
	store := localstore.New(db)
	require.NoError(t, store.Migrate())
	svc := NewService(store, logger.Discard())
	svc.SetClock(func() time.Time { return time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC) })
	return svc
}

func TestRecordNewestFirstAndCapped(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	empty, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for i := 0; i < MaxEntries+5; i++ {
		_, err := svc.Record(ctx, model.Entry{Action: model.ActionUpdate, Resource: "tasks", RecordID: fmt.Sprint(i)})
		require.NoError(t, err)
	}

	got, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, DefaultLimit)
	assert.Equal(t, fmt.Sprint(MaxEntries+4), got[0].RecordID)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, 2026, got[0].CreatedAt.Year())

	all, err := svc.List(ctx, MaxEntries*2)
	require.NoError(t, err)
	assert.Len(t, all, MaxEntries)
	assert.Equal(t, "5", all[len(all)-1].RecordID)
}
