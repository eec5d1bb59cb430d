package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	programService "hsetrack_backend/internals/features/programs/service"
	taskModel "hsetrack_backend/internals/features/tasks/model"
)

var ErrAlreadyRunning = errors.New("reminder run already in progress")

type ProgramSource interface {
	Collections(ctx context.Context) []programService.Loaded
}

type TaskSource interface {
	Load(ctx context.Context) ([]taskModel.Task, error)
}

type Summary struct {
	Date      string         `json:"date"`
	Total     int            `json:"total_alerts"`
	Sent      int            `json:"emails_sent"`
	Failed    int            `json:"failed"`
	Breakdown map[string]int `json:"breakdown"`
}

type Service struct {
	programs ProgramSource
	tasks    TaskSource
	sender   Sender
	appURL   string
	log      *logrus.Logger
	now      func() time.Time

	running sync.Mutex
}

func NewService(programs ProgramSource, tasks TaskSource, sender Sender, appURL string, log *logrus.Logger) *Service {
	return &Service{programs: programs, tasks: tasks, sender: sender, appURL: appURL, log: log, now: time.Now}
}

func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Pending: alert yang akan dikirim hari ini (tanpa mengirim).
func (s *Service) Pending(ctx context.Context) ([]Alert, error) {
	tasks, err := s.tasks.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return Collect(s.programs.Collections(ctx), tasks, s.now()), nil
}

// Run mengirim semua alert hari ini. Gagal kirim dihitung, batch tetap lanjut.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	if !s.running.TryLock() {
		return Summary{}, ErrAlreadyRunning
	}
	defer s.running.Unlock()

	alerts, err := s.Pending(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum := s.dispatch(ctx, alerts)
	s.log.WithFields(logrus.Fields{
		"total": sum.Total, "sent": sum.Sent, "failed": sum.Failed,
	}).Info("[REMINDER] run selesai")
	return sum, nil
}

// SendTest mengirim satu alert contoh (H-14) ke alamat tertentu.
func (s *Service) SendTest(ctx context.Context, email string) (Summary, error) {
	now := s.now()
	alert := Alert{
		ItemType:    ItemTask,
		ItemName:    "Test HSE Program",
		ProgramName: "Test Program",
		TaskID:      "test-task-id",
		PicName:     "Test User",
		PicEmail:    email,
		PlanDate:    now.AddDate(0, 0, 14).Format("2006-01-02"),
		Frequency:   "Monthly",
		Base:        "narogong",
		Region:      "indonesia",
		DaysUntil:   14,
	}
	return s.dispatch(ctx, []Alert{alert}), nil
}

func (s *Service) dispatch(ctx context.Context, alerts []Alert) Summary {
	sum := Summary{
		Date:      s.now().Format("2006-01-02"),
		Total:     len(alerts),
		Breakdown: map[string]int{string(ItemTask): 0, string(ItemOTP): 0, string(ItemMatrix): 0},
	}
	for _, a := range alerts {
		sum.Breakdown[string(a.ItemType)]++

		subject, body, err := Render(a, s.appURL)
		if err == nil {
			err = s.sender.Send(ctx, a.PicEmail, a.PicName, subject, body)
		}
		if err != nil {
			sum.Failed++
			s.log.WithError(err).WithField("to", a.PicEmail).Warnf("[REMINDER] gagal kirim %q", a.ItemName)
			continue
		}
		sum.Sent++
	}
	return sum
}

// StartScheduler menjadwalkan Run harian; caller wajib Stop() saat shutdown.
func (s *Service) StartScheduler(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := s.Run(ctx); err != nil {
			s.log.WithError(err).Error("[REMINDER] run terjadwal gagal")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("add reminder cron %q: %w", spec, err)
	}
	s.log.Infof("[REMINDER] started schedule=%q", spec)
	c.Start()
	return c, nil
}
