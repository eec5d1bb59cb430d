package model

import (
	"strconv"
	"strings"
)

// Kind: lagging = hasil (insiden), leading = aktivitas pencegahan.
type Kind string

const (
	KindLagging Kind = "lagging"
	KindLeading Kind = "leading"
)

func (k Kind) Valid() bool { return k == KindLagging || k == KindLeading }

func (k Kind) Label() string {
	if k == KindLeading {
		return "Leading"
	}
	return "Lagging"
}

type Status string

const (
	StatusAchieved    Status = "achieved"
	StatusOnTrack     Status = "on-track"
	StatusNotAchieved Status = "not-achieved"
)

// Indicator: target & actual teks bebas ("0", "95%", "12/12").
type Indicator struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Target string `json:"target"`
	Actual string `json:"actual"`
	Intent string `json:"intent"`
}

type YearData struct {
	Year    int         `json:"year"`
	Lagging []Indicator `json:"lagging"`
	Leading []Indicator `json:"leading"`
}

func EmptyYear(year int) YearData {
	return YearData{Year: year, Lagging: []Indicator{}, Leading: []Indicator{}}
}

// List mengembalikan pointer ke slice sesuai kind.
func (d *YearData) List(k Kind) *[]Indicator {
	if k == KindLeading {
		return &d.Leading
	}
	return &d.Lagging
}

type Store struct {
	Years []int            `json:"years"`
	Data  map[int]YearData `json:"data"`
}

// CalculateStatus:
//   - target "0": achieved hanya jika actual "0"
//   - keduanya persen: actual >= target achieved, >= 80% target on-track
//   - actual rasio "done/total": selesai semua achieved, sebagian on-track
//   - format lain dianggap on-track
func CalculateStatus(target, actual string) Status {
	target = strings.TrimSpace(target)
	actual = strings.TrimSpace(actual)

	if target == "0" {
		if actual == "0" {
			return StatusAchieved
		}
		return StatusNotAchieved
	}

	if strings.Contains(target, "%") && strings.Contains(actual, "%") {
		t, errT := parsePercent(target)
		a, errA := parsePercent(actual)
		switch {
		case errT != nil || errA != nil:
			return StatusNotAchieved
		case a >= t:
			return StatusAchieved
		case a >= t*0.8:
			return StatusOnTrack
		default:
			return StatusNotAchieved
		}
	}

	if before, after, ok := strings.Cut(actual, "/"); ok {
		done, errD := strconv.Atoi(strings.TrimSpace(before))
		total, errT := strconv.Atoi(strings.TrimSpace(after))
		switch {
		case errD != nil || errT != nil:
			return StatusNotAchieved
		case done >= total:
			return StatusAchieved
		case done > 0:
			return StatusOnTrack
		default:
			return StatusNotAchieved
		}
	}

	return StatusOnTrack
}

func parsePercent(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, "%", "")), 64)
}
