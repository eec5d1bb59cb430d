package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	programModel "hsetrack_backend/internals/features/programs/model"
	programService "hsetrack_backend/internals/features/programs/service"
	"hsetrack_backend/internals/helpers/export"
)

// Filters: kosong / "all" = tanpa filter.
type Filters struct {
	Region   string `query:"region"`
	Base     string `query:"base"`
	Source   string `query:"source"`
	Category string `query:"category"`
}

type Overall struct {
	Total           int `json:"total"`
	Completed       int `json:"completed"`
	InProgress      int `json:"in_progress"`
	Upcoming        int `json:"upcoming"`
	Overdue         int `json:"overdue"`
	CompletionRate  int `json:"completion_rate"`
	OTPCount        int `json:"otp_count"`
	OTPCompleted    int `json:"otp_completed"`
	MatrixCount     int `json:"matrix_count"`
	MatrixCompleted int `json:"matrix_completed"`
}

type MonthlyStats struct {
	Month          string `json:"month"`
	Label          string `json:"label"`
	Planned        int    `json:"planned"`
	Completed      int    `json:"completed"`
	CompletionRate int    `json:"completion_rate"`
	Overdue        int    `json:"overdue"`
}

type PeriodStats struct {
	Period         string `json:"period"`
	Planned        int    `json:"planned"`
	Completed      int    `json:"completed"`
	CompletionRate int    `json:"completion_rate"`
}

type GroupStats struct {
	Key            string `json:"key"`
	Label          string `json:"label"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	InProgress     int    `json:"in_progress"`
	Upcoming       int    `json:"upcoming"`
	CompletionRate int    `json:"completion_rate"`
}

type TrendPoint struct {
	Label         string `json:"label"`
	Value         int    `json:"value"`
	PreviousValue int    `json:"previous_value"`
	Change        int    `json:"change"`
}

type Report struct {
	Filters    Filters          `json:"filters"`
	Overall    Overall          `json:"overall"`
	Monthly    [12]MonthlyStats `json:"monthly"`
	Quarterly  []PeriodStats    `json:"quarterly"`
	Semester   []PeriodStats    `json:"semester"`
	ByCategory []GroupStats     `json:"by_category"`
	BySource   []GroupStats     `json:"by_source"`
	ByBase     []GroupStats     `json:"by_base"`
	Trend      [12]TrendPoint   `json:"trend"`
}

type entry struct {
	part programModel.Partition
	prog programModel.Program
	sum  programService.Summary
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, "all")
}

// selectEntries menerapkan filter; region hanya berlaku untuk OTP, matrix dibuang kalau region=asia.
func selectEntries(collections []programService.Loaded, f Filters) []entry {
	out := make([]entry, 0, 64)
	for _, l := range collections {
		p := l.Partition
		if active(f.Source) && !strings.EqualFold(f.Source, string(p.Source)) {
			continue
		}
		if active(f.Region) {
			if p.Source == programModel.SourceOTP && !strings.EqualFold(f.Region, p.Dimension) {
				continue
			}
			if p.Source == programModel.SourceMatrix && strings.EqualFold(f.Region, programModel.RegionAsia) {
				continue
			}
		}
		if active(f.Base) && !strings.EqualFold(f.Base, p.Base) {
			continue
		}
		if active(f.Category) && p.Source == programModel.SourceMatrix && !strings.EqualFold(f.Category, p.Dimension) {
			continue
		}
		for _, prog := range l.Collection.Programs {
			out = append(out, entry{part: p, prog: prog, sum: programService.Aggregate(prog)})
		}
	}
	return out
}

func rate(part, total int) int {
	if total <= 0 {
		return 0
	}
	return min(100, int(math.Round(float64(part)/float64(total)*100)))
}

// Compute: pipeline agregasi kedua, dijumlah ulang per bucket waktu dari MonthRecord.
// now menentukan batas overdue (hanya bulan < bulan berjalan).
func Compute(collections []programService.Loaded, f Filters, now time.Time) Report {
	entries := selectEntries(collections, f)
	rep := Report{Filters: f}
	current := int(now.Month()) - 1

	var plan, actual [12]int
	for _, e := range entries {
		for i, m := range programModel.Months {
			rec := e.prog.Month(m)
			plan[i] += rec.Plan
			actual[i] += rec.Actual
		}
	}

	cum := 0
	for i, m := range programModel.Months {
		ms := MonthlyStats{
			Month:          string(m),
			Label:          m.Label(),
			Planned:        plan[i],
			Completed:      actual[i],
			CompletionRate: rate(actual[i], plan[i]),
		}
		if i < current {
			ms.Overdue = max(0, plan[i]-actual[i])
		}
		rep.Monthly[i] = ms
		rep.Overall.Overdue += ms.Overdue

		prev := cum
		cum += actual[i]
		rep.Trend[i] = TrendPoint{Label: m.Label(), Value: cum, PreviousValue: prev, Change: cum - prev}
	}

	rep.Quarterly = periods(plan, actual, 3, "Q")
	rep.Semester = periods(plan, actual, 6, "H")

	// hitungan program per status
	all := group("all", "All", entries, func(entry) bool { return true })
	rep.Overall.Total = all.Total
	rep.Overall.Completed = all.Completed
	rep.Overall.InProgress = all.InProgress
	rep.Overall.Upcoming = all.Upcoming
	rep.Overall.CompletionRate = all.CompletionRate

	otp := group("otp", "OTP", entries, func(e entry) bool { return e.part.Source == programModel.SourceOTP })
	matrix := group("matrix", "Matrix", entries, func(e entry) bool { return e.part.Source == programModel.SourceMatrix })
	rep.Overall.OTPCount, rep.Overall.OTPCompleted = otp.Total, otp.Completed
	rep.Overall.MatrixCount, rep.Overall.MatrixCompleted = matrix.Total, matrix.Completed
	rep.BySource = []GroupStats{otp, matrix}

	rep.ByCategory = nonEmpty(
		otp.relabel("OTP Programs"),
		categoryGroup(entries, programModel.CategoryAudit, "Audit"),
		categoryGroup(entries, programModel.CategoryTraining, "Training"),
		categoryGroup(entries, programModel.CategoryMeeting, "Meeting"),
		categoryGroup(entries, programModel.CategoryDrill, "Drill"),
	)

	rep.ByBase = nonEmpty(
		baseGroup(entries, programModel.BaseNarogong, "Narogong"),
		baseGroup(entries, programModel.BaseBalikpapan, "Balikpapan"),
		baseGroup(entries, programModel.BaseDuri, "Duri"),
		group(programModel.RegionAsia, "Asia", entries, func(e entry) bool {
			return e.part.Source == programModel.SourceOTP && e.part.Dimension == programModel.RegionAsia
		}),
	)
	return rep
}

func periods(plan, actual [12]int, size int, prefix string) []PeriodStats {
	out := make([]PeriodStats, 0, 12/size)
	for start := 0; start < 12; start += size {
		ps := PeriodStats{Period: fmt.Sprintf("%s%d", prefix, start/size+1)}
		for i := start; i < start+size; i++ {
			ps.Planned += plan[i]
			ps.Completed += actual[i]
		}
		ps.CompletionRate = rate(ps.Completed, ps.Planned)
		out = append(out, ps)
	}
	return out
}

func group(key, label string, entries []entry, keep func(entry) bool) GroupStats {
	g := GroupStats{Key: key, Label: label}
	for _, e := range entries {
		if !keep(e) {
			continue
		}
		g.Total++
		switch e.sum.Status {
		case programModel.StatusCompleted:
			g.Completed++
		case programModel.StatusInProgress:
			g.InProgress++
		default:
			g.Upcoming++
		}
	}
	g.CompletionRate = rate(g.Completed, g.Total)
	return g
}

func (g GroupStats) relabel(label string) GroupStats {
	g.Label = label
	return g
}

func categoryGroup(entries []entry, category, label string) GroupStats {
	return group(category, label, entries, func(e entry) bool {
		return e.part.Source == programModel.SourceMatrix && e.part.Dimension == category
	})
}

func baseGroup(entries []entry, base, label string) GroupStats {
	return group(base, label, entries, func(e entry) bool { return e.part.Base == base })
}

func nonEmpty(groups ...GroupStats) []GroupStats {
	out := make([]GroupStats, 0, len(groups))
	for _, g := range groups {
		if g.Total > 0 {
			out = append(out, g)
		}
	}
	return out
}

/* ===============================
   Service + report
=================================*/

type ProgramSource interface {
	Collections(ctx context.Context) []programService.Loaded
}

type Service struct {
	programs ProgramSource
	now      func() time.Time
}

func NewService(programs ProgramSource) *Service {
	return &Service{programs: programs, now: time.Now}
}

func (s *Service) SetClock(now func() time.Time) { s.now = now }

func (s *Service) Generate(ctx context.Context, f Filters) Report {
	return Compute(s.programs.Collections(ctx), f, s.now())
}

// ReportTables: section CSV/XLSX laporan statistik.
func ReportTables(r Report) []export.Table {
	overall := export.Table{Sheet: "Overall Statistics", Header: []string{"Metric", "Value"}}
	overall.Append("Total Programs", r.Overall.Total)
	overall.Append("Total Completed", r.Overall.Completed)
	overall.Append("Completion Rate", fmt.Sprintf("%d%%", r.Overall.CompletionRate))
	overall.Append("In Progress", r.Overall.InProgress)
	overall.Append("Upcoming", r.Overall.Upcoming)
	overall.Append("Overdue", r.Overall.Overdue)

	monthly := export.Table{Sheet: "Monthly Statistics", Header: []string{"Month", "Planned", "Completed", "Rate", "Overdue"}}
	for _, m := range r.Monthly {
		monthly.Append(m.Label, m.Planned, m.Completed, fmt.Sprintf("%d%%", m.CompletionRate), m.Overdue)
	}

	quarterly := export.Table{Sheet: "Quarterly Statistics", Header: []string{"Quarter", "Planned", "Completed", "Rate"}}
	for _, q := range r.Quarterly {
		quarterly.Append(q.Period, q.Planned, q.Completed, fmt.Sprintf("%d%%", q.CompletionRate))
	}

	groups := func(sheet, col string, gs []GroupStats) export.Table {
		t := export.Table{Sheet: sheet, Header: []string{col, "Total", "Completed", "Rate"}}
		for _, g := range gs {
			t.Append(g.Label, g.Total, g.Completed, fmt.Sprintf("%d%%", g.CompletionRate))
		}
		return t
	}

	return []export.Table{
		overall, monthly, quarterly,
		groups("Category Statistics", "Category", r.ByCategory),
		groups("Base Statistics", "Base", r.ByBase),
	}
}
