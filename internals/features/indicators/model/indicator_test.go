package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateStatus(t *testing.T) {
	cases := []struct {
		target, actual string
		want           Status
	}{
		{"0", "0", StatusAchieved},
		{"0", "2", StatusNotAchieved},
		{"95%", "97%", StatusAchieved},
		{"95%", "95 %", StatusAchieved},
		{"100%", "80%", StatusOnTrack},
		{"100%", "79%", StatusNotAchieved},
		{"100%", "n/a%", StatusNotAchieved},
		{"12", "12/12", StatusAchieved},
		{"12", "5/12", StatusOnTrack},
		{"12", "0/12", StatusNotAchieved},
		{"12", "x/12", StatusNotAchieved},
		{"Monthly", "Done", StatusOnTrack},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CalculateStatus(tc.target, tc.actual), "target=%q actual=%q", tc.target, tc.actual)
	}
}

func TestYearDataList(t *testing.T) {
	d := EmptyYear(2026)
	*d.List(KindLeading) = append(*d.List(KindLeading), Indicator{ID: 1, Name: "Safety Walk"})
	assert.Len(t, d.Leading, 1)
	assert.Empty(t, d.Lagging)
	assert.True(t, KindLagging.Valid())
	assert.False(t, Kind("other").Valid())
	assert.Equal(t, "Leading", KindLeading.Label())
}
