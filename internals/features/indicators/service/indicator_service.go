package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/broadcast"
	"hsetrack_backend/internals/databases/localstore"
	"hsetrack_backend/internals/features/indicators/model"
	"hsetrack_backend/internals/helpers/export"
)

const StorageKey = "indicators/ll"

var (
	ErrYearNotFound      = errors.New("indicator year not found")
	ErrYearExists        = errors.New("indicator year already exists")
	ErrIndicatorNotFound = errors.New("indicator not found")
)

type Service struct {
	mu          sync.Mutex
	store       localstore.Documents
	hub         *broadcast.Hub
	log         *logrus.Logger
	defaultYear int
}

func NewService(store localstore.Documents, hub *broadcast.Hub, defaultYear int, log *logrus.Logger) *Service {
	return &Service{store: store, hub: hub, log: log, defaultYear: defaultYear}
}

// DefaultStore: tiga tahun kosong sampai tahun program berjalan.
func (s *Service) DefaultStore() model.Store {
	st := model.Store{Data: map[int]model.YearData{}}
	for y := s.defaultYear; y > s.defaultYear-3; y-- {
		st.Years = append(st.Years, y)
		st.Data[y] = model.EmptyYear(y)
	}
	return st
}

func (s *Service) Load(ctx context.Context) (model.Store, error) {
	var st model.Store
	found, err := s.store.Get(ctx, StorageKey, &st)
	if err != nil {
		return model.Store{}, fmt.Errorf("load indicators: %w", err)
	}
	if !found {
		return s.DefaultStore(), nil
	}
	if st.Data == nil {
		st.Data = map[int]model.YearData{}
	}
	return st, nil
}

func (s *Service) save(ctx context.Context, st model.Store) error {
	sort.Sort(sort.Reverse(sort.IntSlice(st.Years)))
	if err := s.store.Put(ctx, StorageKey, st); err != nil {
		return fmt.Errorf("save indicators: %w", err)
	}
	if s.hub != nil {
		s.hub.Publish(broadcast.Change{Topic: broadcast.TopicIndicators, Key: StorageKey})
	}
	return nil
}

func (s *Service) Years(ctx context.Context) ([]int, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := append([]int(nil), st.Years...)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out, nil
}

func normalize(d model.YearData) model.YearData {
	if d.Lagging == nil {
		d.Lagging = []model.Indicator{}
	}
	if d.Leading == nil {
		d.Leading = []model.Indicator{}
	}
	return d
}

func (s *Service) Year(ctx context.Context, year int) (model.YearData, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return model.YearData{}, err
	}
	d, ok := st.Data[year]
	if !ok {
		return model.YearData{}, ErrYearNotFound
	}
	return normalize(d), nil
}

func (s *Service) AddYear(ctx context.Context, year int) (model.YearData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.Load(ctx)
	if err != nil {
		return model.YearData{}, err
	}
	if _, ok := st.Data[year]; ok {
		return model.YearData{}, ErrYearExists
	}
	d := model.EmptyYear(year)
	st.Data[year] = d
	st.Years = append(st.Years, year)
	if err := s.save(ctx, st); err != nil {
		return model.YearData{}, err
	}
	s.log.WithField("year", year).Info("[INDICATORS] year added")
	return d, nil
}

// SaveYear: replace penuh kedua daftar; tahun baru otomatis terdaftar.
func (s *Service) SaveYear(ctx context.Context, data model.YearData) (model.YearData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.Load(ctx)
	if err != nil {
		return model.YearData{}, err
	}
	if _, ok := st.Data[data.Year]; !ok {
		st.Years = append(st.Years, data.Year)
	}
	data = normalize(data)
	st.Data[data.Year] = data
	if err := s.save(ctx, st); err != nil {
		return model.YearData{}, err
	}
	return data, nil
}

// mutate menjalankan fn atas data satu tahun lalu menyimpan seluruh store.
func (s *Service) mutate(ctx context.Context, year int, fn func(d *model.YearData) error) (model.YearData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.Load(ctx)
	if err != nil {
		return model.YearData{}, err
	}
	d, ok := st.Data[year]
	if !ok {
		return model.YearData{}, ErrYearNotFound
	}
	d = normalize(d)
	if err := fn(&d); err != nil {
		return model.YearData{}, err
	}
	st.Data[year] = d
	if err := s.save(ctx, st); err != nil {
		return model.YearData{}, err
	}
	return d, nil
}

// AddIndicator: id = id terbesar di daftar yang sama + 1.
func (s *Service) AddIndicator(ctx context.Context, year int, kind model.Kind, ind model.Indicator) (model.Indicator, error) {
	var created model.Indicator
	_, err := s.mutate(ctx, year, func(d *model.YearData) error {
		list := d.List(kind)
		next := 1
		for _, it := range *list {
			if it.ID >= next {
				next = it.ID + 1
			}
		}
		ind.ID = next
		*list = append(*list, ind)
		created = ind
		return nil
	})
	return created, err
}

type Patch struct {
	Name   *string
	Icon   *string
	Target *string
	Actual *string
	Intent *string
}

func (s *Service) UpdateIndicator(ctx context.Context, year int, kind model.Kind, id int, p Patch) (model.Indicator, error) {
	var updated model.Indicator
	_, err := s.mutate(ctx, year, func(d *model.YearData) error {
		list := *d.List(kind)
		for i := range list {
			if list[i].ID != id {
				continue
			}
			it := &list[i]
			if p.Name != nil {
				it.Name = *p.Name
			}
			if p.Icon != nil {
				it.Icon = *p.Icon
			}
			if p.Target != nil {
				it.Target = *p.Target
			}
			if p.Actual != nil {
				it.Actual = *p.Actual
			}
			if p.Intent != nil {
				it.Intent = *p.Intent
			}
			updated = *it
			return nil
		}
		return ErrIndicatorNotFound
	})
	return updated, err
}

func (s *Service) DeleteIndicator(ctx context.Context, year int, kind model.Kind, id int) error {
	_, err := s.mutate(ctx, year, func(d *model.YearData) error {
		list := d.List(kind)
		for i, it := range *list {
			if it.ID == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return nil
			}
		}
		return ErrIndicatorNotFound
	})
	return err
}

var ReportHeader = []string{"Type", "#", "Icon", "Indicator Name", "Target", "Actual", "Intent"}

// ReportTable: lagging dulu lalu leading, nomor urut per daftar mulai 1.
func ReportTable(d model.YearData) export.Table {
	t := export.Table{Sheet: fmt.Sprintf("LL %d", d.Year), Header: ReportHeader}
	for _, kind := range []model.Kind{model.KindLagging, model.KindLeading} {
		for i, it := range *d.List(kind) {
			t.Append(kind.Label(), i+1, it.Icon, it.Name, it.Target, it.Actual, it.Intent)
		}
	}
	return t
}
