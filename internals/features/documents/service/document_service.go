package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/broadcast"
	"hsetrack_backend/internals/databases/localstore"
	"hsetrack_backend/internals/features/documents/model"
)

const StorageKey = "documents/all"

var ErrDocumentNotFound = errors.New("document not found")

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

func (s *Service) SetClock(now func() time.Time) { s.now = now }

func DefaultDocuments() []model.Document {
	return []model.Document{
		{ID: "1", Name: "HSE Policy Manual", Type: model.TypeManual, WptsID: "WPTS-DOC-001", Size: "2.4 MB", CreatedAt: "2024-01-15"},
		{ID: "2", Name: "Emergency Response Plan", Type: model.TypeProcedure, WptsID: "WPTS-DOC-002", Size: "1.8 MB", CreatedAt: "2024-02-20"},
		{ID: "3", Name: "Risk Assessment Template", Type: model.TypeTemplate, WptsID: "WPTS-DOC-003", Size: "450 KB", CreatedAt: "2024-03-10"},
		{ID: "4", Name: "Safety Training Materials", Type: model.TypeTraining, WptsID: "WPTS-DOC-004", Size: "15.2 MB", CreatedAt: "2024-04-05"},
		{ID: "5", Name: "Incident Report Form", Type: model.TypeForm, WptsID: "WPTS-DOC-005", Size: "125 KB", CreatedAt: "2024-05-12"},
		{ID: "6", Name: "PPE Requirements Guide", Type: model.TypeGuideline, WptsID: "WPTS-DOC-006", Size: "890 KB", CreatedAt: "2024-06-01"},
	}
}

// Load: belum ada dokumen tersimpan → data default.
func (s *Service) Load(ctx context.Context) ([]model.Document, error) {
	var docs []model.Document
	found, err := s.store.Get(ctx, StorageKey, &docs)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	if !found {
		return DefaultDocuments(), nil
	}
	return docs, nil
}

func (s *Service) save(ctx context.Context, docs []model.Document) error {
	if err := s.store.Put(ctx, StorageKey, docs); err != nil {
		return fmt.Errorf("save documents: %w", err)
	}
	return nil
}

func (s *Service) publish() {
	if s.hub != nil {
		s.hub.Publish(broadcast.Change{Topic: broadcast.TopicDocuments, Key: StorageKey})
	}
}

// Search: query kosong = semua; cocokkan name, type, wpts_id (case-insensitive).
func Search(docs []model.Document, query string) []model.Document {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return docs
	}
	out := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(string(d.Type)), q) ||
			strings.Contains(strings.ToLower(d.WptsID), q) {
			out = append(out, d)
		}
	}
	return out
}

func (s *Service) List(ctx context.Context, query string) ([]model.Document, error) {
	docs, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Search(docs, query), nil
}

func (s *Service) Get(ctx context.Context, id string) (model.Document, error) {
	docs, err := s.Load(ctx)
	if err != nil {
		return model.Document{}, err
	}
	for _, d := range docs {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Document{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
}

// Create menaruh dokumen baru di urutan paling atas.
func (s *Service) Create(ctx context.Context, d model.Document) (model.Document, error) {
	s.mu.Lock()
	docs, err := s.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return model.Document{}, err
	}
	d.ID = "doc-" + uuid.NewString()
	d.CreatedAt = s.now().Format("2006-01-02")
	docs = append([]model.Document{d}, docs...)
	if err := s.save(ctx, docs); err != nil {
		s.mu.Unlock()
		return model.Document{}, err
	}
	s.mu.Unlock()
	s.publish()
	return d, nil
}

type Patch struct {
	Name   *string
	Type   *model.DocType
	WptsID *string
	Size   *string
}

func (s *Service) Update(ctx context.Context, id string, p Patch) (model.Document, error) {
	doc, _, err := s.mutate(ctx, id, func(d *model.Document) {
		if p.Name != nil {
			d.Name = *p.Name
		}
		if p.Type != nil {
			d.Type = *p.Type
		}
		if p.WptsID != nil {
			d.WptsID = *p.WptsID
		}
		if p.Size != nil {
			d.Size = *p.Size
		}
	})
	return doc, err
}

// Attach mengganti attachment dokumen; attachment lama dikembalikan supaya objeknya bisa dihapus.
func (s *Service) Attach(ctx context.Context, id string, a model.Attachment, size int64) (model.Document, *model.Attachment, error) {
	return s.mutate(ctx, id, func(d *model.Document) {
		d.Attachment = &a
		if size > 0 {
			d.Size = FormatFileSize(size)
		}
	})
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*model.Document)) (model.Document, *model.Attachment, error) {
	s.mu.Lock()
	docs, err := s.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return model.Document{}, nil, err
	}
	idx := -1
	for i := range docs {
		if docs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return model.Document{}, nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	prev := docs[idx].Attachment
	fn(&docs[idx])
	if err := s.save(ctx, docs); err != nil {
		s.mu.Unlock()
		return model.Document{}, nil, err
	}
	out := docs[idx]
	s.mu.Unlock()
	s.publish()
	return out, prev, nil
}

// Delete mengembalikan dokumen yang dihapus (untuk bersih-bersih attachment).
func (s *Service) Delete(ctx context.Context, id string) (model.Document, error) {
	s.mu.Lock()
	docs, err := s.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return model.Document{}, err
	}
	var (
		removed model.Document
		found   bool
	)
	kept := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if d.ID == id && !found {
			removed, found = d, true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		s.mu.Unlock()
		return model.Document{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	if err := s.save(ctx, kept); err != nil {
		s.mu.Unlock()
		return model.Document{}, err
	}
	s.mu.Unlock()
	s.publish()
	return removed, nil
}

// FormatFileSize: <1 KB dalam B, <1 MB dalam KB bulat, selebihnya MB 1 desimal.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.0f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}
