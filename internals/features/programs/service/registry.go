package service

import (
	"context"
	"math"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"hsetrack_backend/internals/broadcast"
	"hsetrack_backend/internals/features/programs/model"
)

// Registry menyusun semua program OTP + Matrix menjadi UnifiedProgram.
// Cache dibuang setiap ada perubahan di topic programs.
type Registry struct {
	loader *Loader

	mu    sync.RWMutex
	cache []model.UnifiedProgram
	valid bool
	gen   uint64

	stop func()
}

func NewRegistry(loader *Loader, hub *broadcast.Hub) *Registry {
	r := &Registry{loader: loader}
	if hub != nil {
		r.stop = hub.Subscribe(broadcast.Filter{Topic: broadcast.TopicPrograms}, func(broadcast.Change) {
			r.Invalidate()
		})
	}
	return r
}

func (r *Registry) Close() {
	if r.stop != nil {
		r.stop()
	}
}

func (r *Registry) Invalidate() {
	r.mu.Lock()
	r.valid = false
	r.cache = nil
	r.gen++
	r.mu.Unlock()
}

// LoadAll memuat 16 partisi statis dan memetakan tiap program lewat Aggregate.
func (r *Registry) LoadAll(ctx context.Context) []model.UnifiedProgram {
	r.mu.RLock()
	if r.valid {
		out := append([]model.UnifiedProgram(nil), r.cache...)
		r.mu.RUnlock()
		return out
	}
	gen := r.gen
	r.mu.RUnlock()

	var programs []model.UnifiedProgram
	for _, l := range r.loader.LoadMany(ctx, model.AllPartitions()) {
		for _, prog := range l.Collection.Programs {
			programs = append(programs, ToUnified(l.Partition, prog))
		}
	}

	// jangan simpan hasil yang sudah basi karena ada perubahan di tengah load
	r.mu.Lock()
	if r.gen == gen {
		r.cache = programs
		r.valid = true
	}
	r.mu.Unlock()
	return append([]model.UnifiedProgram(nil), programs...)
}

// Collections: koleksi mentah 16 partisi (dipakai kalender & statistik).
func (r *Registry) Collections(ctx context.Context) []Loaded {
	return r.loader.LoadMany(ctx, model.AllPartitions())
}

func ToUnified(p model.Partition, prog model.Program) model.UnifiedProgram {
	s := Aggregate(prog)

	desc := prog.PlanType
	if p.Source == model.SourceMatrix && prog.Reference != "" {
		desc = prog.Reference
	}
	assigned := s.PicName
	if assigned == "" {
		assigned = "HSE Team"
	}

	return model.UnifiedProgram{
		ID:          p.UnifiedID(prog.ID),
		ProgramID:   prog.ID,
		Name:        prog.Name,
		Description: desc,
		Source:      p.Source,
		Region:      p.Region(),
		Base:        p.Base,
		Category:    p.Category(),
		Status:      s.Status,
		PlanType:    prog.PlanType,
		Reference:   prog.Reference,
		Progress:    s.Progress,
		TotalPlan:   s.TotalPlan,
		TotalActual: s.TotalActual,
		PlanDate:    s.FirstPlanDate,
		ImplDate:    s.LastImplDate,
		PicName:     s.PicName,
		PicEmail:    s.PicEmail,
		WptsID:      s.WptsID,
		TargetDate:  prog.DueDate,
		AssignedTo:  assigned,
	}
}

// Criteria: nilai kosong atau "all" = tanpa filter.
type Criteria struct {
	Region   string `query:"region"`
	Base     string `query:"base"`
	Source   string `query:"source"`
	Category string `query:"category"`
	Status   string `query:"status"`
	Search   string `query:"search"`
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, "all")
}

// Filter menerapkan semua kriteria aktif sebagai AND.
func Filter(programs []model.UnifiedProgram, c Criteria) []model.UnifiedProgram {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(c.Search))

	out := make([]model.UnifiedProgram, 0, len(programs))
	for _, p := range programs {
		if active(c.Region) && !strings.EqualFold(p.Region, c.Region) {
			continue
		}
		if active(c.Base) && !strings.EqualFold(p.Base, c.Base) {
			continue
		}
		if active(c.Source) && !strings.EqualFold(string(p.Source), c.Source) {
			continue
		}
		if active(c.Category) && !strings.EqualFold(p.Category, c.Category) {
			continue
		}
		if active(c.Status) {
			want, ok := model.ParseStatus(strings.TrimSpace(c.Status))
			if !ok || p.Status != want {
				continue
			}
		}
		if needle != "" {
			hay := fold.String(p.Name + "\n" + p.Description + "\n" + p.PicName)
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	InProgress     int `json:"in_progress"`
	Upcoming       int `json:"upcoming"`
	OTPCount       int `json:"otp_count"`
	MatrixCount    int `json:"matrix_count"`
	CompletionRate int `json:"completion_rate"`
}

func ComputeStats(programs []model.UnifiedProgram) Stats {
	var s Stats
	s.Total = len(programs)
	for _, p := range programs {
		switch p.Status {
		case model.StatusCompleted:
			s.Completed++
		case model.StatusInProgress:
			s.InProgress++
		default:
			s.Upcoming++
		}
		if p.Source == model.SourceOTP {
			s.OTPCount++
		} else {
			s.MatrixCount++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
