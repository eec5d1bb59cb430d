package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hsetrack_backend/internals/features/programs/model"
)

func TestStatusMovesForwardOnly(t *testing.T) {
	order := map[model.Status]int{model.StatusUpcoming: 0, model.StatusInProgress: 1, model.StatusCompleted: 2}
	for plan := 1; plan <= 6; plan++ {
		prev := -1
		for actual := 0; actual <= plan+3; actual++ {
			rank := order[DeriveStatus(plan, actual)]
			assert.GreaterOrEqual(t, rank, prev, "plan=%d actual=%d", plan, actual)
			prev = rank
		}
	}
}

func TestProgressClamp(t *testing.T) {
	assert.Equal(t, 100, ProgressPercent(5, 9))
	assert.Equal(t, 33, ProgressPercent(3, 1))
	assert.Equal(t, 67, ProgressPercent(3, 2))
	for plan := 1; plan < 20; plan++ {
		for actual := 0; actual < 40; actual++ {
			p := ProgressPercent(plan, actual)
			assert.True(t, p >= 0 && p <= 100)
		}
	}
}

func TestZeroPlanAsymmetry(t *testing.T) {
	assert.Equal(t, model.StatusUpcoming, DeriveStatus(0, 0))
	assert.Equal(t, 0, ProgressPercent(0, 0))

	assert.Equal(t, model.StatusInProgress, DeriveStatus(0, 3))
	assert.Equal(t, 100, ProgressPercent(0, 3))
}

func TestAggregateFirstAndLastWins(t *testing.T) {
	p := model.NewProgram(1, "Safety Induction", "Monthly")
	p.SetMonth(model.Feb, model.MonthRecord{Plan: 1, Actual: 1, PlanDate: "2026-02-03", ImplDate: "2026-02-04", PicName: "Andi", WptsID: "W-1"})
	p.SetMonth(model.May, model.MonthRecord{Plan: 1, PlanDate: "2026-05-10", PicName: "Sari", PicEmail: "sari@hse.local"})
	p.SetMonth(model.Aug, model.MonthRecord{Plan: 2, Actual: 1, ImplDate: "2026-08-20", WptsID: "W-9"})

	s := Aggregate(p)
	assert.Equal(t, 4, s.TotalPlan)
	assert.Equal(t, 2, s.TotalActual)
	assert.Equal(t, model.StatusInProgress, s.Status)
	assert.Equal(t, 50, s.Progress)
	assert.Equal(t, "2026-02-03", s.FirstPlanDate)
	assert.Equal(t, "2026-08-20", s.LastImplDate)
	assert.Equal(t, "Sari", s.PicName)
	assert.Equal(t, "sari@hse.local", s.PicEmail)
	assert.Equal(t, "W-9", s.WptsID)
}

func TestAggregateToleratesMissingMonths(t *testing.T) {
	s := Aggregate(model.Program{ID: 2, Name: "Empty"})
	assert.Equal(t, Summary{Status: model.StatusUpcoming}, s)
}
