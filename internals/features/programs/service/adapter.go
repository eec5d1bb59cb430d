package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/databases/localstore"
	"hsetrack_backend/internals/features/programs/model"
)

// ErrNoSeed: tidak ada dataset bawaan untuk partisi tersebut.
var ErrNoSeed = errors.New("no seed dataset for partition")

// SeedSource menyediakan dataset statis per partisi bernama.
type SeedSource interface {
	Seed(p model.Partition) (model.Collection, error)
}

// Loader membaca koleksi partisi dengan urutan:
// override di local store → seed partisi → merge seed per-base (untuk "all").
type Loader struct {
	store localstore.Documents
	seeds SeedSource
	year  int
	log   *logrus.Logger
}

func NewLoader(store localstore.Documents, seeds SeedSource, year int, log *logrus.Logger) *Loader {
	return &Loader{store: store, seeds: seeds, year: year, log: log}
}

func (l *Loader) Load(ctx context.Context, p model.Partition) (model.Collection, error) {
	var c model.Collection
	found, err := l.store.Get(ctx, p.StorageKey(), &c)
	if err != nil {
		return model.Collection{}, fmt.Errorf("load override %s: %w", p, err)
	}
	if found {
		return c, nil
	}
	if p.IsMerged() {
		return l.merge(p)
	}
	return l.seed(p)
}

func (l *Loader) Save(ctx context.Context, p model.Partition, c model.Collection) error {
	return l.store.Put(ctx, p.StorageKey(), c)
}

func (l *Loader) empty(p model.Partition) model.Collection {
	c := model.Collection{Year: l.year, Programs: []model.Program{}}
	if p.Source == model.SourceMatrix {
		c.Category = p.Dimension
		c.Region = p.Region()
	}
	return c
}

func (l *Loader) seed(p model.Partition) (model.Collection, error) {
	if l.seeds == nil {
		return l.empty(p), nil
	}
	c, err := l.seeds.Seed(p)
	if errors.Is(err, ErrNoSeed) {
		return l.empty(p), nil
	}
	if err != nil {
		return model.Collection{}, fmt.Errorf("load seed %s: %w", p, err)
	}
	c = c.Clone()
	if c.Year == 0 {
		c.Year = l.year
	}
	if p.Source == model.SourceMatrix {
		c.Category = p.Dimension
		c.Region = p.Region()
	}
	if c.Programs == nil {
		c.Programs = []model.Program{}
	}
	return c, nil
}

// merge menggabungkan seed per-base: dedup by name (first wins), id di-nomori ulang dari 1.
func (l *Loader) merge(p model.Partition) (model.Collection, error) {
	out := l.empty(p)
	seen := make(map[string]struct{})
	for _, child := range p.NamedChildren() {
		c, err := l.seed(child)
		if err != nil {
			return model.Collection{}, err
		}
		if c.Year != 0 {
			out.Year = c.Year
		}
		for _, prog := range c.Programs {
			if _, dup := seen[prog.Name]; dup {
				continue
			}
			seen[prog.Name] = struct{}{}
			prog.ID = len(out.Programs) + 1
			out.Programs = append(out.Programs, prog)
		}
	}
	return out, nil
}

// Loaded: hasil per partisi untuk LoadMany.
type Loaded struct {
	Partition  model.Partition
	Collection model.Collection
}

// LoadMany: gagal di satu partisi tidak menggagalkan partisi lain (log & lanjut).
func (l *Loader) LoadMany(ctx context.Context, parts []model.Partition) []Loaded {
	out := make([]Loaded, 0, len(parts))
	for _, p := range parts {
		c, err := l.Load(ctx, p)
		if err != nil {
			l.log.WithError(err).Errorf("[PROGRAMS] gagal load partisi %s, dilewati", p)
			continue
		}
		out = append(out, Loaded{Partition: p, Collection: c})
	}
	return out
}
