package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateStatus(t *testing.T) {
	cases := []struct {
		target, result float64
		want           Status
	}{
		{0, 0, StatusAchieved},
		{0, 1, StatusAtRisk},
		{0.5, 0.3, StatusAchieved},
		{0.5, 0.5, StatusAchieved},
		{0.5, 0.6, StatusOnTrack},
		{0.5, 0.61, StatusAtRisk},
		{10, 12, StatusOnTrack},
		{10, 13, StatusAtRisk},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CalculateStatus(tc.target, tc.result), "target=%v result=%v", tc.target, tc.result)
	}
}

func TestEmptyYearHasAllDefinitions(t *testing.T) {
	y := EmptyYear(2027)
	assert.Equal(t, 2027, y.Year)
	assert.Zero(t, y.ManHours)
	assert.Len(t, y.Metrics, len(Definitions))
	assert.Equal(t, "fatality", y.Metrics[0].ID)
	assert.Equal(t, "Total Recordable Injury Rate (TRIR)", y.Metrics[1].Name)
	for _, m := range y.Metrics {
		assert.Zero(t, m.Target)
		assert.Zero(t, m.Result)
	}
	assert.Equal(t, "On Track", StatusOnTrack.Label())
}
