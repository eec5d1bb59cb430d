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
	programModel "hsetrack_backend/internals/features/programs/model"
	"hsetrack_backend/internals/features/tasks/model"
	"hsetrack_backend/internals/logger"
)

func newService(t *testing.T) (*Service, *localstore.Store, *[]broadcast.Change) {
	t.Helper()
	db, err := database.OpenLocal(":memory:", nil)
	require.NoError(t, err)
	store := localstore.New(db)
	require.NoError(t, store.Migrate())

	hub := broadcast.NewHub()
	var got []broadcast.Change
	hub.Subscribe(broadcast.Filter{Topic: broadcast.TopicTasks}, func(c broadcast.Change) { got = append(got, c) })

	svc := NewService(store, hub, logger.Discard())
	svc.SetClock(func() time.Time { return time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC) })
	return svc, store, &got
}

func TestLoad_DefaultsWhenNothingStored(t *testing.T) {
	svc, _, _ := newService(t)
	tasks, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 5)
	assert.Equal(t, "HSE-001", tasks[0].Code)
	assert.Equal(t, programModel.StatusCompleted, tasks[0].Status)
	assert.Equal(t, model.BaseAsiaHQ, tasks[3].Base)
}

func TestLoad_MigratesLegacyTasks(t *testing.T) {
	svc, store, _ := newService(t)
	legacy := []map[string]any{
		{"id": "old", "title": "Legacy", "implementation_date": "2025-03-01", "status": "In Progress"},
	}
	require.NoError(t, store.Put(context.Background(), StorageKey, legacy))

	tasks, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.RegionIndonesia, tasks[0].Region)
	assert.Equal(t, programModel.BaseNarogong, tasks[0].Base)
	assert.Equal(t, 2025, tasks[0].Year)
	assert.Equal(t, programModel.StatusInProgress, tasks[0].Status)
}

func TestFilter_AllMeansNoFilter(t *testing.T) {
	tasks := DefaultTasks()

	assert.Len(t, Filter(tasks, model.Filters{Region: "all", Base: "all", Year: "all", Status: "all"}), 5)
	assert.Len(t, Filter(tasks, model.Filters{Region: "asia"}), 1)
	assert.Len(t, Filter(tasks, model.Filters{Base: "narogong"}), 2)
	assert.Len(t, Filter(tasks, model.Filters{Status: "In Progress"}), 1)
	assert.Len(t, Filter(tasks, model.Filters{Year: "2025"}), 0)
	assert.Len(t, Filter(tasks, model.Filters{Region: "indonesia", Status: "Upcoming"}), 2)
}

func TestCreateUpdateDelete(t *testing.T) {
	svc, _, changes := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.Task{
		Code: "HSE-010", Title: "Toolbox Talk", ImplementationDate: "2027-02-01",
		Frequency: model.FrequencyMonthly, PicEmail: "pic@company.com",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^task_[0-9a-f-]{36}$`, created.ID)
	assert.Equal(t, "2026-06-15", created.CreatedAt)
	assert.Equal(t, 2027, created.Year)
	assert.Equal(t, programModel.StatusUpcoming, created.Status)

	all, err := svc.List(ctx, model.Filters{})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	done := programModel.StatusCompleted
	title := "Toolbox Talk (Night Shift)"
	updated, err := svc.Update(ctx, created.ID, Patch{Status: &done, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, done, updated.Status)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "HSE-010", updated.Code)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	assert.Len(t, *changes, 3)
	for _, c := range *changes {
		assert.Equal(t, StorageKey, c.Key)
	}
}

func TestUpdateDelete_NotFound(t *testing.T) {
	svc, _, changes := newService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, "missing", Patch{})
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrTaskNotFound)
	assert.Empty(t, *changes)
}

func TestByProgramAndAttachment(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	byProg, err := svc.ByProgram(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, byProg, 2)

	got, err := svc.AddAttachment(ctx, "3", model.Attachment{ID: "a1", Filename: "walk.pdf", Key: "tasks/3/walk.pdf"})
	require.NoError(t, err)
	assert.True(t, got.HasAttachment)
	require.Len(t, got.Attachments, 1)

	again, err := svc.Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "walk.pdf", again.Attachments[0].Filename)
}
