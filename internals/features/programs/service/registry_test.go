package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsetrack_backend/internals/features/programs/model"
)

func TestMergeDedupByNameFirstWins(t *testing.T) {
	fireNarogong := model.NewProgram(4, "Fire Drill", "Quarterly")
	fireNarogong.Reference = "from narogong"
	fireDuri := model.NewProgram(1, "Fire Drill", "Monthly")
	fireDuri.Reference = "from duri"

	seeds := mapSeeds{data: map[model.Partition]model.Collection{
		narogong: {Year: 2026, Programs: []model.Program{model.NewProgram(2, "HSE Meeting", "Monthly"), fireNarogong}},
		duri:     {Year: 2026, Programs: []model.Program{fireDuri, model.NewProgram(5, "First Aid", "Annual")}},
		balik:    {Year: 2026, Programs: []model.Program{model.NewProgram(9, "HSE Meeting", "Monthly")}},
	}}
	h := newHarness(t, seeds)

	c, err := h.loader.Load(context.Background(), indoAll)
	require.NoError(t, err)
	require.Len(t, c.Programs, 3)

	names := []string{c.Programs[0].Name, c.Programs[1].Name, c.Programs[2].Name}
	assert.Equal(t, []string{"HSE Meeting", "Fire Drill", "First Aid"}, names)
	assert.Equal(t, []int{1, 2, 3}, []int{c.Programs[0].ID, c.Programs[1].ID, c.Programs[2].ID})
	assert.Equal(t, "from narogong", c.Programs[1].Reference)
	assert.Equal(t, "Quarterly", c.Programs[1].PlanType)
}

func TestMatrixAllUsesOwnSeed(t *testing.T) {
	auditAll := model.Partition{Source: model.SourceMatrix, Dimension: model.CategoryAudit, Base: model.BaseAll}
	auditNarogong := model.Partition{Source: model.SourceMatrix, Dimension: model.CategoryAudit, Base: model.BaseNarogong}
	trainingAll := model.Partition{Source: model.SourceMatrix, Dimension: model.CategoryTraining, Base: model.BaseAll}
	trainingDuri := model.Partition{Source: model.SourceMatrix, Dimension: model.CategoryTraining, Base: model.BaseDuri}

	seeds := mapSeeds{data: map[model.Partition]model.Collection{
		auditAll:      {Year: 2026, Programs: []model.Program{model.NewProgram(7, "Company-wide Audit", "Annual")}},
		auditNarogong: {Year: 2026, Programs: []model.Program{model.NewProgram(1, "Narogong Site Audit", "Quarterly")}},
		trainingDuri:  {Year: 2026, Programs: []model.Program{model.NewProgram(1, "Duri Induction", "Monthly")}},
	}}
	h := newHarness(t, seeds)
	ctx := context.Background()

	c, err := h.loader.Load(ctx, auditAll)
	require.NoError(t, err)
	require.Len(t, c.Programs, 1)
	assert.Equal(t, 7, c.Programs[0].ID)
	assert.Equal(t, "Company-wide Audit", c.Programs[0].Name)
	assert.Equal(t, model.CategoryAudit, c.Category)

	// tanpa seed sendiri: kosong, bukan gabungan per-base
	c, err = h.loader.Load(ctx, trainingAll)
	require.NoError(t, err)
	assert.Empty(t, c.Programs)
	assert.Equal(t, model.CategoryTraining, c.Category)
}

func TestOverrideReturnedVerbatim(t *testing.T) {
	h := newHarness(t, seedWith(narogong, model.NewProgram(1, "Seeded", "Monthly")))
	ctx := context.Background()

	override := model.Collection{Year: 2027, Programs: []model.Program{model.NewProgram(40, "Edited", "Annual")}}
	require.NoError(t, h.store.Put(ctx, narogong.StorageKey(), override))

	c, err := h.loader.Load(ctx, narogong)
	require.NoError(t, err)
	assert.Equal(t, 2027, c.Year)
	require.Len(t, c.Programs, 1)
	assert.Equal(t, "Edited", c.Programs[0].Name)

	require.NoError(t, h.store.Put(ctx, indoAll.StorageKey(), override))
	c, err = h.loader.Load(ctx, indoAll)
	require.NoError(t, err)
	assert.Equal(t, 40, c.Programs[0].ID)
}

func TestSeedIsNotMutatedByUpdates(t *testing.T) {
	seeds := seedWith(narogong, model.NewProgram(1, "Audit", "Monthly"))
	h := newHarness(t, seeds)
	require.True(t, h.engine.Update(context.Background(), "otp_indonesia_narogong_1", Patch{Month: ptr("jan"), Plan: ptr(5)}))

	assert.Equal(t, 0, seeds.data[narogong].Programs[0].Month(model.Jan).Plan)
}

func TestLoadManyIsolatesFailures(t *testing.T) {
	seeds := seedWith(narogong, model.NewProgram(1, "Audit", "Monthly"))
	seeds.fail = map[model.Partition]bool{duri: true}
	h := newHarness(t, seeds)

	loaded := h.loader.LoadMany(context.Background(), []model.Partition{duri, narogong, balik})
	require.Len(t, loaded, 2)
	assert.Equal(t, narogong, loaded[0].Partition)
	assert.Len(t, loaded[0].Collection.Programs, 1)
	assert.Empty(t, loaded[1].Collection.Programs)
}

func TestRegistryLoadAllAndInvalidate(t *testing.T) {
	seeds := mapSeeds{data: map[model.Partition]model.Collection{
		narogong: {Year: 2026, Programs: []model.Program{model.NewProgram(1, "Toolbox Talk", "Weekly")}},
		auditDur: {Year: 2026, Programs: []model.Program{model.NewProgram(1, "Internal Audit", "Annual")}},
		{Source: model.SourceOTP, Dimension: model.RegionAsia, Base: model.BaseAll}: {
			Year: 2026, Programs: []model.Program{model.NewProgram(1, "Asia Review", "Semester")},
		},
	}}
	h := newHarness(t, seeds)
	reg := NewRegistry(h.loader, h.hub)
	defer reg.Close()
	ctx := context.Background()

	all := reg.LoadAll(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, "otp_indonesia_narogong_1", all[0].ID)
	assert.Equal(t, "otp_asia_all_1", all[1].ID)
	assert.Equal(t, "matrix_audit_duri_1", all[2].ID)
	assert.Equal(t, "other", all[0].Category)
	assert.Equal(t, "indonesia", all[2].Region)
	assert.Equal(t, model.StatusUpcoming, all[2].Status)
	assert.Equal(t, "HSE Team", all[2].AssignedTo)

	require.True(t, h.engine.Update(ctx, "matrix_audit_duri_1", Patch{Month: ptr("feb"), Plan: ptr(1), ImplDate: ptr("2026-02-11"), PicName: ptr("Dewi")}))

	all = reg.LoadAll(ctx)
	assert.Equal(t, model.StatusCompleted, all[2].Status)
	assert.Equal(t, 100, all[2].Progress)
	assert.Equal(t, "Dewi", all[2].AssignedTo)
}

func TestFilterAndStats(t *testing.T) {
	programs := []model.UnifiedProgram{
		{ID: "a", Name: "Fire Drill", Source: model.SourceOTP, Region: "indonesia", Base: "duri", Status: model.StatusCompleted},
		{ID: "b", Name: "Audit", Description: "ISO 45001", Source: model.SourceMatrix, Region: "indonesia", Base: "narogong", Category: "audit", Status: model.StatusInProgress},
		{ID: "c", Name: "Meeting", PicName: "Ömer", Source: model.SourceOTP, Region: "asia", Base: "all", Status: model.StatusUpcoming},
	}

	assert.Len(t, Filter(programs, Criteria{Region: "all", Base: ""}), 3)
	assert.Equal(t, "a", Filter(programs, Criteria{Base: "duri"})[0].ID)
	assert.Equal(t, "b", Filter(programs, Criteria{Search: "iso"})[0].ID)
	assert.Equal(t, "c", Filter(programs, Criteria{Search: "ÖMER"})[0].ID)
	assert.Equal(t, "b", Filter(programs, Criteria{Status: "In Progress"})[0].ID)
	assert.Empty(t, Filter(programs, Criteria{Source: "otp", Category: "audit"}))

	s := ComputeStats(programs)
	assert.Equal(t, Stats{Total: 3, Completed: 1, InProgress: 1, Upcoming: 1, OTPCount: 2, MatrixCount: 1, CompletionRate: 33}, s)
	assert.Equal(t, 0, ComputeStats(nil).CompletionRate)
}

func TestCatalogCreateDeleteList(t *testing.T) {
	h := newHarness(t, seedWith(narogong, model.NewProgram(3, "Audit", "Monthly")))
	ctx := context.Background()

	prog, err := h.engine.CreateProgram(ctx, narogong, NewProgramInput{Name: " Ergonomic Survey ", PlanType: "Annual"})
	require.NoError(t, err)
	assert.Equal(t, 4, prog.ID)
	assert.Equal(t, "Ergonomic Survey", prog.Name)
	assert.Len(t, prog.Months, 12)
	require.Len(t, h.remote.masters, 1)
	assert.Equal(t, "otp", h.remote.masters[0].ProgramType)

	view, err := h.engine.ListPartition(ctx, narogong)
	require.NoError(t, err)
	require.Len(t, view.Programs, 2)
	assert.Equal(t, "otp_indonesia_narogong_4", view.Programs[1].UnifiedID)

	require.NoError(t, h.engine.DeleteProgram(ctx, narogong, 3))
	assert.ErrorIs(t, h.engine.DeleteProgram(ctx, narogong, 3), ErrProgramNotFound)

	view, err = h.engine.ListPartition(ctx, narogong)
	require.NoError(t, err)
	require.Len(t, view.Programs, 1)
	assert.Equal(t, 4, view.Programs[0].ID)
}
