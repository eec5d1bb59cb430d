package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/broadcast"
	"hsetrack_backend/internals/databases/localstore"
	"hsetrack_backend/internals/features/calendar/model"
	programModel "hsetrack_backend/internals/features/programs/model"
	programService "hsetrack_backend/internals/features/programs/service"
	taskModel "hsetrack_backend/internals/features/tasks/model"
)

const StorageKey = "calendar/events"

// Project: proyeksi total & stateless dari program + task ke event kalender.
func Project(collections []programService.Loaded, tasks []taskModel.Task) []model.Event {
	events := make([]model.Event, 0, 64)
	for _, l := range collections {
		p := l.Partition
		for _, prog := range l.Collection.Programs {
			uid := p.UnifiedID(prog.ID)
			for _, m := range programModel.Months {
				rec := prog.Month(m)
				if rec.PlanDate == "" && rec.ImplDate == "" {
					continue
				}
				events = append(events, model.Event{
					ID:          uid + "_" + string(m),
					RefID:       uid,
					Source:      string(p.Source),
					Category:    p.Category(),
					Region:      p.Region(),
					Base:        p.Base,
					Title:       prog.Name,
					ProgramName: prog.Name,
					Month:       string(m),
					PlanDate:    rec.PlanDate,
					ImplDate:    rec.ImplDate,
					PicName:     rec.PicName,
					PlanType:    prog.PlanType,
					PlanValue:   rec.Plan,
					ActualValue: rec.Actual,
					Status:      string(programService.DeriveStatus(rec.Plan, rec.Actual)),
				})
			}
		}
	}

	for _, t := range tasks {
		if t.ImplementationDate == "" {
			continue
		}
		ev := model.Event{
			ID:          "task_" + strings.TrimPrefix(t.ID, "task_"),
			RefID:       t.ID,
			Source:      model.SourceTask,
			Category:    "task",
			Region:      t.Region,
			Base:        t.Base,
			Title:       t.Title,
			ProgramName: t.ProgramName,
			Code:        t.Code,
			PicName:     t.PicName,
			PlanType:    string(t.Frequency),
			Status:      string(t.Status),
		}
		if mo, ok := programModel.MonthOf(t.ImplementationDate); ok {
			ev.Month = string(mo)
		}
		if t.Status == programModel.StatusCompleted {
			ev.ImplDate = t.ImplementationDate
		} else {
			ev.PlanDate = t.ImplementationDate
		}
		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Date() < events[j].Date() })
	return events
}

type ProgramSource interface {
	Collections(ctx context.Context) []programService.Loaded
}

type TaskSource interface {
	Load(ctx context.Context) ([]taskModel.Task, error)
}

type Service struct {
	mu       sync.Mutex
	store    localstore.Documents
	programs ProgramSource
	tasks    TaskSource
	log      *logrus.Logger
	stop     []func()
}

func NewService(store localstore.Documents, programs ProgramSource, tasks TaskSource, log *logrus.Logger) *Service {
	return &Service{store: store, programs: programs, tasks: tasks, log: log}
}

// Listen: rebuild penuh setiap ada perubahan program/task.
func (s *Service) Listen(hub *broadcast.Hub) {
	rebuild := func(c broadcast.Change) {
		if _, err := s.Rebuild(context.Background()); err != nil {
			s.log.WithError(err).WithField("trigger", c.Topic).Error("[CALENDAR] rebuild gagal")
		}
	}
	s.stop = append(s.stop,
		hub.Subscribe(broadcast.Filter{Topic: broadcast.TopicPrograms}, rebuild),
		hub.Subscribe(broadcast.Filter{Topic: broadcast.TopicTasks}, rebuild),
	)
}

func (s *Service) Close() {
	for _, fn := range s.stop {
		fn()
	}
	s.stop = nil
}

// Rebuild menimpa calendar/events secara utuh.
func (s *Service) Rebuild(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.tasks.Load(ctx)
	if err != nil {
		s.log.WithError(err).Warn("[CALENDAR] load tasks gagal, lanjut tanpa task")
		tasks = nil
	}
	events := Project(s.programs.Collections(ctx), tasks)
	if err := s.store.Put(ctx, StorageKey, events); err != nil {
		return 0, fmt.Errorf("save calendar: %w", err)
	}
	s.log.WithField("events", len(events)).Debug("[CALENDAR] rebuilt")
	return len(events), nil
}

// List membaca proyeksi tersimpan; year/month 0 = tanpa filter.
// Belum pernah dibangun → rebuild dulu.
func (s *Service) List(ctx context.Context, year, month int) ([]model.Event, error) {
	var events []model.Event
	found, err := s.store.Get(ctx, StorageKey, &events)
	if err != nil {
		return nil, err
	}
	if !found {
		if _, err := s.Rebuild(ctx); err != nil {
			return nil, err
		}
		if _, err := s.store.Get(ctx, StorageKey, &events); err != nil {
			return nil, err
		}
	}

	prefix := ""
	switch {
	case year > 0 && month > 0:
		prefix = fmt.Sprintf("%04d-%02d", year, month)
	case year > 0:
		prefix = fmt.Sprintf("%04d", year)
	}
	if prefix == "" && month <= 0 {
		return events, nil
	}

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if matchDate(e.PlanDate, prefix, month) || matchDate(e.ImplDate, prefix, month) {
			out = append(out, e)
		}
	}
	return out, nil
}

func matchDate(date, prefix string, month int) bool {
	if date == "" {
		return false
	}
	if prefix != "" {
		return strings.HasPrefix(date, prefix)
	}
	// hanya month: cocokkan bagian MM
	return len(date) >= 7 && date[5:7] == fmt.Sprintf("%02d", month)
}
