package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsetrack_backend/internals/broadcast"
	database "hsetrack_backend/internals/databases"
	"hsetrack_backend/internals/databases/localstore"
	"hsetrack_backend/internals/features/documents/model"
	"hsetrack_backend/internals/logger"
)

func newService(t *testing.T) (*Service, *broadcast.Hub) {
	t.Helper()
	db, err := database.OpenLocal(":memory:", nil)
	require.NoError(t, err)
	store := localstore.New(db)
	require.NoError(t, store.Migrate())
	hub := broadcast.NewHub()
	svc := NewService(store, hub, logger.Discard())
	svc.SetClock(func() time.Time { return time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC) })
	return svc, hub
}

func TestDefaultsAndSearch(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	all, err := svc.List(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	byName, _ := svc.List(ctx, "emergency")
	require.Len(t, byName, 1)
	assert.Equal(t, "2", byName[0].ID)

	byType, _ := svc.List(ctx, "TEMPLATE")
	require.Len(t, byType, 1)
	assert.Equal(t, "Risk Assessment Template", byType[0].Name)

	byWpts, _ := svc.List(ctx, "doc-006")
	require.Len(t, byWpts, 1)
	assert.Equal(t, model.TypeGuideline, byWpts[0].Type)
}

func TestCreatePrependsAndPublishes(t *testing.T) {
	svc, hub := newService(t)
	ctx := context.Background()

	var got []broadcast.Change
	hub.Subscribe(broadcast.Filter{Topic: broadcast.TopicDocuments}, func(c broadcast.Change) { got = append(got, c) })

	d, err := svc.Create(ctx, model.Document{Name: "Waste Procedure", Type: model.TypeProcedure})
	require.NoError(t, err)
	assert.Contains(t, d.ID, "doc-")
	assert.Equal(t, "2026-03-09", d.CreatedAt)

	docs, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 7)
	assert.Equal(t, d.ID, docs[0].ID)
	assert.Equal(t, []broadcast.Change{{Topic: broadcast.TopicDocuments, Key: StorageKey}}, got)
}

func TestUpdateAttachDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	name := "HSE Policy Manual v2"
	d, err := svc.Update(ctx, "1", Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, d.Name)
	assert.Equal(t, "2.4 MB", d.Size)

	d, prev, err := svc.Attach(ctx, "1", model.Attachment{ID: "a1", Key: "k1"}, 2048)
	require.NoError(t, err)
	assert.Nil(t, prev)
	assert.Equal(t, "2 KB", d.Size)

	_, prev, err = svc.Attach(ctx, "1", model.Attachment{ID: "a2", Key: "k2"}, 0)
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, "k1", prev.Key)

	removed, err := svc.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "k2", removed.Attachment.Key)

	_, err = svc.Get(ctx, "1")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	_, err = svc.Delete(ctx, "1")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	_, err = svc.Update(ctx, "missing", Patch{})
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatFileSize(0))
	assert.Equal(t, "1023 B", FormatFileSize(1023))
	assert.Equal(t, "1 KB", FormatFileSize(1024))
	assert.Equal(t, "450 KB", FormatFileSize(450*1024))
	assert.Equal(t, "1.0 MB", FormatFileSize(1024*1024))
	assert.Equal(t, "15.2 MB", FormatFileSize(15*1024*1024+205*1024))
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "Training Material", model.TypeTraining.Label())
	assert.Equal(t, "MEMO", model.DocType("memo").Label())
}
