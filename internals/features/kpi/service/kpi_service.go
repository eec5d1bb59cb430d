package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/broadcast"
	"hsetrack_backend/internals/databases/localstore"
	"hsetrack_backend/internals/features/kpi/model"
	"hsetrack_backend/internals/helpers/export"
)

const StorageKey = "kpi/all"

var (
	ErrYearNotFound = errors.New("kpi year not found")
	ErrYearExists   = errors.New("kpi year already exists")
)

type Service struct {
	mu          sync.Mutex
	store       localstore.Documents
	hub         *broadcast.Hub
	log         *logrus.Logger
	defaultYear int
}

// defaultYear: tahun yang disiapkan saat store masih kosong.
func NewService(store localstore.Documents, hub *broadcast.Hub, defaultYear int, log *logrus.Logger) *Service {
	return &Service{store: store, hub: hub, log: log, defaultYear: defaultYear}
}

func (s *Service) DefaultStore() model.Store {
	return model.Store{
		Years: []int{s.defaultYear},
		Data:  map[int]model.YearData{s.defaultYear: model.EmptyYear(s.defaultYear)},
	}
}

// Load: belum pernah disimpan → satu tahun default dengan metrik nol.
func (s *Service) Load(ctx context.Context) (model.Store, error) {
	var st model.Store
	found, err := s.store.Get(ctx, StorageKey, &st)
	if err != nil {
		return model.Store{}, fmt.Errorf("load kpi: %w", err)
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
		return fmt.Errorf("save kpi: %w", err)
	}
	if s.hub != nil {
		s.hub.Publish(broadcast.Change{Topic: broadcast.TopicKPI, Key: StorageKey})
	}
	return nil
}

// Years: urut menurun (terbaru dulu).
func (s *Service) Years(ctx context.Context) ([]int, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := append([]int(nil), st.Years...)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out, nil
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
	if d.Metrics == nil {
		d.Metrics = []model.Metric{}
	}
	return d, nil
}

// AddYear: tahun baru berisi semua metrik standar dengan nilai nol.
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
	s.log.WithField("year", year).Info("[KPI] year added")
	return d, nil
}

// SaveYear: replace penuh isi satu tahun; tahun yang belum ada ikut didaftarkan.
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
	if data.Metrics == nil {
		data.Metrics = []model.Metric{}
	}
	st.Data[data.Year] = data
	if err := s.save(ctx, st); err != nil {
		return model.YearData{}, err
	}
	return data, nil
}

func (s *Service) DeleteYear(ctx context.Context, year int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := st.Data[year]; !ok {
		return ErrYearNotFound
	}
	delete(st.Data, year)
	years := st.Years[:0]
	for _, y := range st.Years {
		if y != year {
			years = append(years, y)
		}
	}
	st.Years = years
	return s.save(ctx, st)
}

var ReportHeader = []string{"Icon", "Metric", "Target", "Result", "Status"}

// ReportTable: "KPI Report for <year>", baris man hours, lalu satu baris per metrik.
func ReportTable(d model.YearData) export.Table {
	t := export.Table{
		Sheet:    fmt.Sprintf("KPI %d", d.Year),
		Preamble: [][]string{{fmt.Sprintf("KPI Report for %d", d.Year)}, {"Man Hours", strconv.FormatInt(d.ManHours, 10)}},
		Header:   ReportHeader,
	}
	for _, m := range d.Metrics {
		t.Append(m.Icon, m.Name, m.Target, m.Result, string(model.CalculateStatus(m.Target, m.Result)))
	}
	return t
}
