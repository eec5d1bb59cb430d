package helper

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// --------------------------------------------------
// Mock untuk unit test
// --------------------------------------------------

type MockBlobStore struct {
	mu       sync.Mutex
	UploadFn func(ctx context.Context, dir string, fh *multipart.FileHeader) (Stored, error)
	Deleted  []string
}

func (m *MockBlobStore) Upload(ctx context.Context, dir string, fh *multipart.FileHeader) (Stored, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, dir, fh)
	}
	if fh == nil {
		return Stored{}, errors.New("nil file header")
	}
	key := BuildObjectKey("mock", dir, fh.Filename, time.Now())
	return Stored{
		Key:         key,
		URL:         "https://mock.local/" + key,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}, nil
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, key)
	return nil
}

// GetFile: ambil file multipart dari beberapa nama field umum.
func GetFile(c *fiber.Ctx, fieldNames ...string) (*multipart.FileHeader, error) {
	if len(fieldNames) == 0 {
		fieldNames = []string{"file", "attachment", "image"}
	}
	for _, name := range fieldNames {
		if fh, err := c.FormFile(name); err == nil && fh != nil {
			return fh, nil
		}
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
}
