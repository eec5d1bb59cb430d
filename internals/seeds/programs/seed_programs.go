package programs

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/features/programs/model"
	"hsetrack_backend/internals/features/programs/service"
)

//go:embed data/*.json
var dataFS embed.FS

// Embedded: dataset bawaan per partisi bernama, di-parse sekali lalu di-cache.
type Embedded struct {
	fsys fs.FS

	mu    sync.Mutex
	cache map[string]model.Collection
}

func NewEmbedded() *Embedded {
	return &Embedded{fsys: dataFS, cache: map[string]model.Collection{}}
}

func fileFor(p model.Partition) (string, bool) {
	switch {
	case p.Source == model.SourceOTP && p.Dimension == model.RegionAsia:
		return "data/otp_asia.json", true
	case p.Source == model.SourceOTP && p.Base == model.BaseAll:
		// indonesia/all disintesis loader dari seed per-base
		return "", false
	case p.Source == model.SourceOTP:
		return fmt.Sprintf("data/otp_%s_%s.json", p.Dimension, p.Base), true
	default:
		return fmt.Sprintf("data/matrix_%s_%s.json", p.Dimension, p.Base), true
	}
}

// Seed mengembalikan koleksi seed; caller wajib Clone sebelum mutasi.
func (e *Embedded) Seed(p model.Partition) (model.Collection, error) {
	name, ok := fileFor(p)
	if !ok {
		return model.Collection{}, service.ErrNoSeed
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if c, ok := e.cache[name]; ok {
		return c, nil
	}

	raw, err := fs.ReadFile(e.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Collection{}, service.ErrNoSeed
	}
	if err != nil {
		return model.Collection{}, fmt.Errorf("read %s: %w", name, err)
	}
	var c model.Collection
	if err := sonic.Unmarshal(raw, &c); err != nil {
		return model.Collection{}, fmt.Errorf("decode %s: %w", name, err)
	}
	e.cache[name] = c
	return c, nil
}

// MasterSink menerima baris master_programs (dipenuhi repository.RemoteProgress).
type MasterSink interface {
	UpsertMaster(ctx context.Context, row model.MasterProgramModel) error
}

// SeedMasterPrograms menyalin semua program seed ke master_programs.
func SeedMasterPrograms(ctx context.Context, src service.SeedSource, sink MasterSink, log *logrus.Logger) (int, error) {
	inserted := 0
	var failed int
	for _, p := range model.AllPartitions() {
		c, err := src.Seed(p)
		if errors.Is(err, service.ErrNoSeed) {
			continue
		}
		if err != nil {
			log.WithError(err).Errorf("❌ Gagal baca seed %s", p)
			failed++
			continue
		}
		for _, prog := range c.Programs {
			if err := sink.UpsertMaster(ctx, service.MasterRow(p, prog)); err != nil {
				log.WithError(err).Errorf("❌ Gagal upsert master %q (%s)", prog.Name, p)
				failed++
				continue
			}
			inserted++
		}
	}
	log.Infof("✅ master_programs: %d baris di-upsert", inserted)
	if failed > 0 {
		return inserted, fmt.Errorf("%d seed rows failed", failed)
	}
	return inserted, nil
}
