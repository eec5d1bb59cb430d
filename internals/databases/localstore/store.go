// Package localstore menyimpan dokumen JSON utuh per key (read/write whole-document).
package localstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocalDocument struct {
	Key       string         `gorm:"column:doc_key;primaryKey;type:varchar(160)" json:"key"`
	Value     datatypes.JSON `gorm:"column:doc_value;not null" json:"value"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (LocalDocument) TableName() string { return "local_documents" }

// Documents adalah kontrak store yang dipakai service.
type Documents interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Put(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&LocalDocument{})
}

// Get mengisi out dari dokumen di key. found=false kalau key belum pernah ditulis.
func (s *Store) Get(ctx context.Context, key string, out any) (bool, error) {
	var doc LocalDocument
	err := s.db.WithContext(ctx).Where("doc_key = ?", key).Take(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := sonic.Unmarshal(doc.Value, out); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Put menimpa dokumen utuh dalam satu statement upsert.
func (s *Store) Put(ctx context.Context, key string, value any) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	doc := LocalDocument{Key: key, Value: datatypes.JSON(raw), UpdatedAt: s.now()}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doc_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"doc_value", "updated_at"}),
		}).
		Create(&doc).Error
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("doc_key = ?", key).Delete(&LocalDocument{}).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Keys mengembalikan semua key berawalan prefix, terurut.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	if err := s.db.WithContext(ctx).Model(&LocalDocument{}).Order("doc_key ASC").Pluck("doc_key", &keys).Error; err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	out := keys[:0]
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}
