package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var (
	// DB: remote mirror (Postgres). nil kalau remote sync dimatikan.
	DB *gorm.DB
	// LocalDB: local store (sqlite), sumber kebenaran UI.
	LocalDB *gorm.DB
)

// ConnectDB membuka koneksi remote. dsn kosong = remote off, bukan error.
func ConnectDB(dsn string, gl gormLogger.Interface, log *logrus.Logger) error {
	if strings.TrimSpace(dsn) == "" {
		log.Warn("[DB] remote DSN kosong, lewati koneksi Postgres")
		return nil
	}
	log.Info("🔌 Koneksi ke PostgreSQL (remote mirror)...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{Logger: gl})
	if err != nil {
		return fmt.Errorf("connect remote: %w", err)
	}
	DB = db
	log.Info("✅ Remote DB connected.")
	return nil
}

// OpenLocal membuka sqlite. ":memory:" menghasilkan DB in-memory yang terisolasi.
func OpenLocal(path string, gl gormLogger.Interface) (*gorm.DB, error) {
	dsn := path
	memory := path == "" || path == ":memory:"
	if memory {
		dsn = fmt.Sprintf("file:hse_%s?mode=memory&cache=shared", uuid.NewString())
	} else if !strings.Contains(dsn, "?") {
		dsn += "?_busy_timeout=5000&_journal_mode=WAL"
	}

	cfg := &gorm.Config{}
	if gl != nil {
		cfg.Logger = gl
	} else {
		cfg.Logger = gormLogger.Default.LogMode(gormLogger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	// sqlite: satu writer; in-memory wajib satu koneksi agar data tidak hilang
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		if memory {
			sqlDB.SetConnMaxLifetime(0)
			sqlDB.SetConnMaxIdleTime(0)
		}
	}
	return db, nil
}

func ConnectLocal(path string, gl gormLogger.Interface, log *logrus.Logger) error {
	db, err := OpenLocal(path, gl)
	if err != nil {
		return err
	}
	LocalDB = db
	log.Infof("✅ Local store siap (%s)", path)
	return nil
}

func TunePool(log *logrus.Logger) {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		log.Warnf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries(log *logrus.Logger) {
	if DB == nil {
		return
	}
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(DB); err != nil {
			log.Warnf("warm-up ping err: %v", err)
		}
	}()
}

func Ping(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("db not configured")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close menutup remote + local pool (dipanggil saat graceful shutdown).
func Close() {
	for _, db := range []*gorm.DB{DB, LocalDB} {
		if db == nil {
			continue
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
