package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/databases/localstore"
	"hsetrack_backend/internals/features/auditlogs/model"
)

const (
	StorageKey = "audit/logs"

	DefaultLimit = 100
	MaxEntries   = 1000
)

// Service menyimpan jejak audit terbaru (newest first, dibatasi MaxEntries)
// dan menulis setiap entry ke logger audit.
type Service struct {
	mu    sync.Mutex
	store localstore.Documents
	log   *logrus.Logger
	now   func() time.Time
}

func NewService(store localstore.Documents, log *logrus.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

func (s *Service) SetClock(now func() time.Time) { s.now = now }

func (s *Service) load(ctx context.Context) ([]model.Entry, error) {
	var entries []model.Entry
	if _, err := s.store.Get(ctx, StorageKey, &entries); err != nil {
		return nil, fmt.Errorf("load audit logs: %w", err)
	}
	return entries, nil
}

func (s *Service) Record(ctx context.Context, e model.Entry) (model.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	s.log.WithFields(logrus.Fields{
		"action":     e.Action,
		"resource":   e.Resource,
		"record_id":  e.RecordID,
		"actor":      e.Actor,
		"path":       e.Path,
		"status":     e.Status,
		"request_id": e.RequestID,
	}).Info("[AUDIT] " + e.Action.Label())

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return e, err
	}
	entries = append([]model.Entry{e}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	if err := s.store.Put(ctx, StorageKey, entries); err != nil {
		return e, fmt.Errorf("save audit logs: %w", err)
	}
	return e, nil
}

// List: newest first. limit <= 0 → DefaultLimit.
func (s *Service) List(ctx context.Context, limit int) ([]model.Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
