package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	programModel "hsetrack_backend/internals/features/programs/model"
)

// Jendela pengingat: hanya item yang jatuh tempo 0..MaxLeadDays hari lagi.
const MaxLeadDays = 30

var (
	monthlyDays = []int{14, 7, 3}
	longDays    = []int{30, 14, 7, 3}
)

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntilDue: selisih hari kalender antara tanggal rencana dan now.
// ok=false kalau tanggal tidak bisa di-parse.
func DaysUntilDue(planDate string, now time.Time) (int, bool) {
	due, ok := programModel.ParseDate(planDate)
	if !ok {
		return 0, false
	}
	return int(civil(due).Sub(civil(now)).Hours() / 24), true
}

// ShouldSendReminder: monthly H-14/7/3; annual, quarterly, semester H-30/14/7/3.
// Frekuensi lain memakai aturan monthly.
func ShouldSendReminder(days int, frequency string) bool {
	f := strings.ToLower(frequency)
	if strings.Contains(f, "month") {
		return slices.Contains(monthlyDays, days)
	}
	for _, k := range []string{"annual", "yearly", "quarterly", "semester", "semi"} {
		if strings.Contains(f, k) {
			return slices.Contains(longDays, days)
		}
	}
	return slices.Contains(monthlyDays, days)
}

func ReminderLabel(days int) string {
	switch {
	case days == 30:
		return "H-30 (1 bulan)"
	case days == 14:
		return "H-14 (2 minggu)"
	case days == 7:
		return "H-7 (1 minggu)"
	case days == 3:
		return "H-3 (3 hari)"
	case days == 1:
		return "H-1 (besok)"
	case days == 0:
		return "Hari ini"
	case days < 0:
		return fmt.Sprintf("Terlambat %d hari", -days)
	}
	return fmt.Sprintf("H-%d", days)
}
