package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/broadcast"
	"hsetrack_backend/internals/features/programs/model"
)

var ErrProgramNotFound = errors.New("program not found")

// RemoteStore adalah mirror remote yang bisa upsert per (program_id, month, year).
type RemoteStore interface {
	UpsertProgress(ctx context.Context, row model.ProgressUpsert) error
	UpsertMaster(ctx context.Context, row model.MasterProgramModel) error
}

// Patch: field nil = tidak disentuh (partial update).
type Patch struct {
	Status          *string `json:"status"`
	Month           *string `json:"month"`
	Plan            *int    `json:"plan"`
	WptsID          *string `json:"wpts_id"`
	PlanDate        *string `json:"plan_date"`
	ImplDate        *string `json:"impl_date"`
	PicName         *string `json:"pic_name"`
	PicEmail        *string `json:"pic_email"`
	PicManagerName  *string `json:"pic_manager"`
	PicManagerEmail *string `json:"pic_manager_email"`
}

// UpdateResult memisahkan dua fase dual-write: commit lokal lalu sync remote.
type UpdateResult struct {
	LocalCommitted bool              `json:"local_committed"`
	RemoteSynced   bool              `json:"remote_synced"`
	Month          model.Month       `json:"month"`
	Partition      model.Partition   `json:"partition"`
	ProgramID      int               `json:"program_id"`
	Record         model.MonthRecord `json:"record"`
}

// Engine adalah satu-satunya jalur mutasi MonthRecord dan koleksi program.
// Read-modify-write lokal diserialisasi oleh mu.
type Engine struct {
	mu      sync.Mutex
	loader  *Loader
	hub     *broadcast.Hub
	remote  RemoteStore
	log     *logrus.Logger
	now     func() time.Time
	timeout time.Duration
}

type EngineOption func(*Engine)

func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func WithRemoteTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine: remote boleh nil (local-only mode).
func NewEngine(loader *Loader, hub *broadcast.Hub, remote RemoteStore, log *logrus.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		loader:  loader,
		hub:     hub,
		remote:  remote,
		log:     log,
		now:     time.Now,
		timeout: 3 * time.Second,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Update adalah kontrak boolean: true hanya jika commit lokal berhasil.
func (e *Engine) Update(ctx context.Context, id string, patch Patch) bool {
	res, err := e.Apply(ctx, id, patch)
	return err == nil && res.LocalCommitted
}

// Apply: decode id → resolve bulan → commit lokal → broadcast → upsert remote (best-effort).
func (e *Engine) Apply(ctx context.Context, id string, patch Patch) (UpdateResult, error) {
	part, programID, err := model.ParseUnifiedID(id)
	if err != nil {
		return UpdateResult{}, err
	}
	month, err := ResolveMonth(patch, e.now())
	if err != nil {
		return UpdateResult{}, err
	}

	e.mu.Lock()
	coll, err := e.loader.Load(ctx, part)
	if err != nil {
		// lazy-init gagal: dianggap koleksi kosong, berujung not found
		e.log.WithError(err).Warnf("[SYNC] load %s gagal saat update %s", part, id)
		coll = model.Collection{}
	}
	idx := coll.IndexOf(programID)
	if idx < 0 {
		e.mu.Unlock()
		return UpdateResult{}, fmt.Errorf("%w: %s", ErrProgramNotFound, id)
	}

	prog := &coll.Programs[idx]
	rec := applyPatch(prog.Month(month), patch)
	prog.SetMonth(month, rec)

	if err := e.loader.Save(ctx, part, coll); err != nil {
		e.mu.Unlock()
		return UpdateResult{}, fmt.Errorf("commit %s: %w", part, err)
	}
	e.mu.Unlock()

	e.publish(part)

	res := UpdateResult{
		LocalCommitted: true,
		Month:          month,
		Partition:      part,
		ProgramID:      programID,
		Record:         rec,
	}
	res.RemoteSynced = e.syncRemote(ctx, part, programID, month, rec, patch)
	return res, nil
}

func (e *Engine) publish(part model.Partition) {
	if e.hub != nil {
		e.hub.Publish(broadcast.Change{Topic: broadcast.TopicPrograms, Key: part.StorageKey()})
	}
}

// ResolveMonth: month eksplisit → bulan planDate → bulan implDate → bulan sekarang.
// Tanggal yang tidak bisa di-parse dilewati ke aturan berikutnya.
func ResolveMonth(p Patch, now time.Time) (model.Month, error) {
	if p.Month != nil && strings.TrimSpace(*p.Month) != "" {
		return model.ParseMonth(*p.Month)
	}
	if p.PlanDate != nil {
		if m, ok := model.MonthOf(*p.PlanDate); ok {
			return m, nil
		}
	}
	if p.ImplDate != nil {
		if m, ok := model.MonthOf(*p.ImplDate); ok {
			return m, nil
		}
	}
	return model.MonthFromTime(now), nil
}

// applyPatch menimpa field yang ada di patch, lalu auto-actual:
// status Completed atau implDate terisi → actual = plan (atau 1 kalau plan 0).
func applyPatch(rec model.MonthRecord, p Patch) model.MonthRecord {
	if p.Plan != nil {
		rec.Plan = *p.Plan
		if rec.Plan < 0 {
			rec.Plan = 0
		}
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&rec.WptsID, p.WptsID)
	set(&rec.PlanDate, p.PlanDate)
	set(&rec.ImplDate, p.ImplDate)
	set(&rec.PicName, p.PicName)
	set(&rec.PicEmail, p.PicEmail)
	set(&rec.PicManagerName, p.PicManagerName)
	set(&rec.PicManagerEmail, p.PicManagerEmail)

	if markedDone(p) {
		if rec.Plan > 0 {
			rec.Actual = rec.Plan
		} else {
			rec.Actual = 1
		}
	}
	return rec
}

func markedDone(p Patch) bool {
	if p.Status != nil {
		if st, ok := model.ParseStatus(strings.TrimSpace(*p.Status)); ok && st == model.StatusCompleted {
			return true
		}
	}
	return p.ImplDate != nil && strings.TrimSpace(*p.ImplDate) != ""
}

// syncRemote tidak pernah membatalkan commit lokal; gagal cukup di-log.
func (e *Engine) syncRemote(ctx context.Context, part model.Partition, programID int, month model.Month, rec model.MonthRecord, p Patch) bool {
	if e.remote == nil {
		return false
	}
	row := buildUpsert(part, programID, month, rec, p, e.now())

	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	entry := e.log.WithFields(logrus.Fields{
		"program_id": programID,
		"month":      month,
		"year":       row.Year,
		"partition":  part.String(),
	})
	if err := e.remote.UpsertProgress(rctx, row); err != nil {
		entry.WithError(err).Error("[SYNC] remote upsert gagal, local tetap berlaku")
		return false
	}
	entry.Info("[SYNC] remote upsert ok")
	return true
}

func buildUpsert(part model.Partition, programID int, month model.Month, rec model.MonthRecord, p Patch, now time.Time) model.ProgressUpsert {
	row := model.ProgressUpsert{
		ProgramID:   programID,
		Month:       month,
		Year:        now.Year(),
		ActualValue: rec.Actual,
		UpdatedAt:   now,
	}
	pick := func(v *string, cur string) *string {
		if v == nil {
			return nil
		}
		s := cur
		return &s
	}
	if p.Plan != nil {
		v := rec.Plan
		row.PlanValue = &v
	}
	row.PlanDate = pick(p.PlanDate, rec.PlanDate)
	row.ImplDate = pick(p.ImplDate, rec.ImplDate)
	row.PicName = pick(p.PicName, rec.PicName)
	row.PicEmail = pick(p.PicEmail, rec.PicEmail)
	row.PicManagerName = pick(p.PicManagerName, rec.PicManagerName)
	row.PicManagerEmail = pick(p.PicManagerEmail, rec.PicManagerEmail)
	row.WptsID = pick(p.WptsID, rec.WptsID)
	if part.Source == model.SourceMatrix {
		t := part.ProgramType()
		row.ProgramType = &t
	}
	return row
}
