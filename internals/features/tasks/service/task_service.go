package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/broadcast"
	"hsetrack_backend/internals/databases/localstore"
	programModel "hsetrack_backend/internals/features/programs/model"
	"hsetrack_backend/internals/features/tasks/model"
)

const StorageKey = "tasks/all"

var ErrTaskNotFound = errors.New("task not found")

type Service struct {
	mu    sync.Mutex
	store localstore.Documents
	hub   *broadcast.Hub
	log   *logrus.Logger
	now   func() time.Time
}

func NewService(store localstore.Documents, hub *broadcast.Hub, log *logrus.Logger) *Service {
	return &Service{store: store, hub: hub, log: log, now: time.Now}
}

// SetClock untuk test.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Load membaca semua task; belum ada dokumen → data default.
// Task lama tanpa region/base/year dimigrasi saat dibaca.
func (s *Service) Load(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	found, err := s.store.Get(ctx, StorageKey, &tasks)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if !found {
		tasks = DefaultTasks()
	}
	for i := range tasks {
		migrate(&tasks[i])
	}
	return tasks, nil
}

func migrate(t *model.Task) {
	if t.Region == "" {
		t.Region = model.RegionIndonesia
	}
	if t.Base == "" {
		t.Base = programModel.BaseNarogong
	}
	if t.Year == 0 {
		t.Year = 2026
		for _, d := range []string{t.ImplementationDate, t.CreatedAt} {
			if tm, ok := programModel.ParseDate(d); ok {
				t.Year = tm.Year()
				break
			}
		}
	}
	if st, ok := programModel.ParseStatus(string(t.Status)); ok {
		t.Status = st
	} else if t.Status == "" {
		t.Status = programModel.StatusUpcoming
	}
	t.HasAttachment = t.HasAttachment || len(t.Attachments) > 0
}

func (s *Service) save(ctx context.Context, tasks []model.Task) error {
	if err := s.store.Put(ctx, StorageKey, tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (s *Service) publish() {
	if s.hub != nil {
		s.hub.Publish(broadcast.Change{Topic: broadcast.TopicTasks, Key: StorageKey})
	}
}

func matches(filter, value string) bool {
	filter = strings.TrimSpace(filter)
	return filter == "" || strings.EqualFold(filter, "all") || strings.EqualFold(filter, value)
}

// Filter: region, base, year, status digabung AND.
func Filter(tasks []model.Task, f model.Filters) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matches(f.Region, t.Region) || !matches(f.Base, t.Base) || !matches(f.Year, strconv.Itoa(t.Year)) {
			continue
		}
		if st := strings.TrimSpace(f.Status); st != "" && !strings.EqualFold(st, "all") {
			want, ok := programModel.ParseStatus(st)
			if !ok || t.Status != want {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func (s *Service) List(ctx context.Context, f model.Filters) ([]model.Task, error) {
	tasks, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(tasks, f), nil
}

func (s *Service) Get(ctx context.Context, id string) (model.Task, error) {
	tasks, err := s.Load(ctx)
	if err != nil {
		return model.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

func (s *Service) ByProgram(ctx context.Context, programID string) ([]model.Task, error) {
	tasks, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Task{}
	for _, t := range tasks {
		if t.ProgramID == programID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, t model.Task) (model.Task, error) {
	s.mu.Lock()
	tasks, err := s.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return model.Task{}, err
	}
	t.ID = "task_" + uuid.NewString()
	t.CreatedAt = s.now().Format("2006-01-02")
	migrate(&t)
	tasks = append(tasks, t)
	if err := s.save(ctx, tasks); err != nil {
		s.mu.Unlock()
		return model.Task{}, err
	}
	s.mu.Unlock()
	s.publish()
	return t, nil
}

// Patch: field nil = tidak diubah.
type Patch struct {
	ProgramID          *string
	ProgramName        *string
	Code               *string
	Title              *string
	ImplementationDate *string
	Frequency          *model.Frequency
	PicName            *string
	PicEmail           *string
	Status             *programModel.Status
	Region             *string
	Base               *string
	Year               *int
	WptsID             *string
}

func (p Patch) apply(t *model.Task) {
	setS := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setS(&t.ProgramID, p.ProgramID)
	setS(&t.ProgramName, p.ProgramName)
	setS(&t.Code, p.Code)
	setS(&t.Title, p.Title)
	setS(&t.ImplementationDate, p.ImplementationDate)
	setS(&t.PicName, p.PicName)
	setS(&t.PicEmail, p.PicEmail)
	setS(&t.Region, p.Region)
	setS(&t.Base, p.Base)
	setS(&t.WptsID, p.WptsID)
	if p.Frequency != nil {
		t.Frequency = *p.Frequency
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Year != nil {
		t.Year = *p.Year
	}
}

func (s *Service) Update(ctx context.Context, id string, p Patch) (model.Task, error) {
	return s.mutate(ctx, id, func(t *model.Task) { p.apply(t) })
}

func (s *Service) AddAttachment(ctx context.Context, id string, a model.Attachment) (model.Task, error) {
	return s.mutate(ctx, id, func(t *model.Task) {
		t.Attachments = append(t.Attachments, a)
		t.HasAttachment = true
	})
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*model.Task)) (model.Task, error) {
	s.mu.Lock()
	tasks, err := s.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return model.Task{}, err
	}
	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	fn(&tasks[idx])
	migrate(&tasks[idx])
	if err := s.save(ctx, tasks); err != nil {
		s.mu.Unlock()
		return model.Task{}, err
	}
	out := tasks[idx]
	s.mu.Unlock()
	s.publish()
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	tasks, err := s.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if err := s.save(ctx, kept); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	s.publish()
	return nil
}
