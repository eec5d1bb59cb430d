package model

import (
	"errors"
	"strings"
	"time"
)

type Month string

const (
	Jan Month = "jan"
	Feb Month = "feb"
	Mar Month = "mar"
	Apr Month = "apr"
	May Month = "may"
	Jun Month = "jun"
	Jul Month = "jul"
	Aug Month = "aug"
	Sep Month = "sep"
	Oct Month = "oct"
	Nov Month = "nov"
	Dec Month = "dec"
)

// Months: 12 key kanonik, urutan kalender (jan → dec).
var Months = [12]Month{Jan, Feb, Mar, Apr, May, Jun, Jul, Aug, Sep, Oct, Nov, Dec}

var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var ErrInvalidMonth = errors.New("invalid month key")

// Index mengembalikan 0..11, atau -1 kalau bukan key kanonik.
func (m Month) Index() int {
	for i, k := range Months {
		if k == m {
			return i
		}
	}
	return -1
}

func (m Month) Valid() bool { return m.Index() >= 0 }

func (m Month) Label() string {
	if i := m.Index(); i >= 0 {
		return monthLabels[i]
	}
	return string(m)
}

// ParseMonth menerima "jan", "Jan", "JANUARY" (3 huruf pertama yang dipakai).
func ParseMonth(s string) (Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) >= 3 {
		if m := Month(s[:3]); m.Valid() {
			return m, nil
		}
	}
	return "", ErrInvalidMonth
}

func MonthFromTime(t time.Time) Month { return Months[int(t.Month())-1] }

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate membaca tanggal program (YYYY-MM-DD atau timestamp ISO).
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthOf: bulan kalender dari string tanggal; false kalau tidak bisa di-parse.
func MonthOf(date string) (Month, bool) {
	t, ok := ParseDate(date)
	if !ok {
		return "", false
	}
	return MonthFromTime(t), true
}
