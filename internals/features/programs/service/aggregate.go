package service

import (
	"math"

	"hsetrack_backend/internals/features/programs/model"
)

// Summary adalah hasil reduksi 12 MonthRecord satu program.
type Summary struct {
	TotalPlan     int          `json:"total_plan"`
	TotalActual   int          `json:"total_actual"`
	Status        model.Status `json:"status"`
	Progress      int          `json:"progress"`
	FirstPlanDate string       `json:"first_plan_date,omitempty"`
	LastImplDate  string       `json:"last_impl_date,omitempty"`
	PicName       string       `json:"pic_name,omitempty"`
	PicEmail      string       `json:"pic_email,omitempty"`
	WptsID        string       `json:"wpts_id,omitempty"`
}

// Aggregate memindai bulan jan → dec.
// planDate: first wins. implDate, PIC, WPTS: last wins.
func Aggregate(p model.Program) Summary {
	var s Summary
	for _, m := range model.Months {
		rec := p.Month(m)
		s.TotalPlan += rec.Plan
		s.TotalActual += rec.Actual

		if s.FirstPlanDate == "" && rec.PlanDate != "" {
			s.FirstPlanDate = rec.PlanDate
		}
		if rec.ImplDate != "" {
			s.LastImplDate = rec.ImplDate
		}
		if rec.PicName != "" {
			s.PicName = rec.PicName
		}
		if rec.PicEmail != "" {
			s.PicEmail = rec.PicEmail
		}
		if rec.WptsID != "" {
			s.WptsID = rec.WptsID
		}
	}
	s.Status = DeriveStatus(s.TotalPlan, s.TotalActual)
	s.Progress = ProgressPercent(s.TotalPlan, s.TotalActual)
	return s
}

// DeriveStatus: urutan aturan penting. plan=0 & actual>0 tetap InProgress.
func DeriveStatus(totalPlan, totalActual int) model.Status {
	switch {
	case totalActual == 0:
		return model.StatusUpcoming
	case totalPlan > 0 && totalActual >= totalPlan:
		return model.StatusCompleted
	default:
		return model.StatusInProgress
	}
}

// ProgressPercent di-clamp ke 0..100.
func ProgressPercent(totalPlan, totalActual int) int {
	switch {
	case totalPlan > 0:
		pct := int(math.Round(float64(totalActual) / float64(totalPlan) * 100))
		if pct > 100 {
			return 100
		}
		if pct < 0 {
			return 0
		}
		return pct
	case totalActual > 0:
		return 100
	default:
		return 0
	}
}
