package configs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"hsetrack_backend/internals/logger"
)

// Config adalah konfigurasi statis aplikasi (dibaca sekali saat boot).
type Config struct {
	Port   string `env:"PORT" envDefault:"3000"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	// Local store (sumber kebenaran UI), sqlite file
	LocalDBPath string `env:"LOCAL_DB_PATH" envDefault:"hse_local.db"`

	// Remote mirror (Postgres). Kosong = remote sync dimatikan.
	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"require"`

	RemoteSyncTimeoutMS int `env:"REMOTE_SYNC_TIMEOUT_MS" envDefault:"3000"`
	ProgramYear         int `env:"PROGRAM_YEAR" envDefault:"2026"`

	JWTSecret     string `env:"JWT_SECRET"`
	CORSOrigins   string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000,http://localhost:5173"`
	RateLimitMax  int    `env:"RATE_LIMIT_MAX" envDefault:"100"`
	SeedOnStartup bool   `env:"SEED_ON_STARTUP" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogOutput string `env:"LOG_OUTPUT" envDefault:"stdout"`
	LogPath   string `env:"LOG_PATH" envDefault:"logs"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"HSE Management System <no-reply@hse.local>"`
	ReminderCron string `env:"REMINDER_CRON" envDefault:"0 8 * * *"`
	AppURL       string `env:"APP_URL" envDefault:"https://hse-plan.vercel.app"`

	OSSEndpoint  string `env:"ALI_OSS_ENDPOINT"`
	OSSAccessKey string `env:"ALI_OSS_ACCESS_KEY"`
	OSSSecretKey string `env:"ALI_OSS_SECRET_KEY"`
	OSSBucket    string `env:"ALI_OSS_BUCKET"`
	OSSPrefix    string `env:"ALI_OSS_PREFIX" envDefault:"hse"`
	OSSPublicURL string `env:"ALI_OSS_PUBLIC_URL"`
}

// RemoteEnabled: remote mirror hanya aktif kalau host DB diset.
func (c *Config) RemoteEnabled() bool { return strings.TrimSpace(c.DBHost) != "" }

func (c *Config) MailEnabled() bool { return strings.TrimSpace(c.SMTPHost) != "" }

func (c *Config) OSSEnabled() bool {
	return c.OSSEndpoint != "" && c.OSSAccessKey != "" && c.OSSSecretKey != "" && c.OSSBucket != ""
}

func (c *Config) RemoteSyncTimeout() time.Duration {
	if c.RemoteSyncTimeoutMS <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.RemoteSyncTimeoutMS) * time.Millisecond
}

// PostgresDSN membangun DSN lengkap + statement_timeout.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=hsetrack&options=-c statement_timeout=3000",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() (*Config, error) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			logrus.Warn("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			logrus.Info("✅ .env file berhasil dimuat!")
		}
	} else {
		logrus.Info("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ProgramYear < 2000 {
		return nil, errors.New("PROGRAM_YEAR must be a four digit year")
	}

	if cfg.JWTSecret == "" {
		logrus.Warn("❌ JWT_SECRET belum diset! Semua route admin akan menolak request.")
	}
	if !cfg.RemoteEnabled() {
		logrus.Warn("⚠️ DB_HOST kosong, remote sync dimatikan (local-only mode)")
	}
	return cfg, nil
}

// LogConfig memetakan bagian logging Config ke konfigurasi logger.
func (c *Config) LogConfig() *logger.LogConfig {
	lc := logger.DefaultConfig()
	lc.Level = c.LogLevel
	lc.Format = c.LogFormat
	lc.Output = c.LogOutput
	lc.LogPath = c.LogPath
	return lc
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
	log           *logrus.Logger
}

func NewGormLogger(l *logrus.Logger) gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
		log:           l,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.log.Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.log.Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.log.Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	entry := l.log.WithFields(logrus.Fields{
		"file":    utils.FileWithLineNum(),
		"elapsed": elapsed.String(),
		"rows":    rows,
	})

	switch {
	case err != nil && !errors.Is(err, gormLogger.ErrRecordNotFound):
		entry.WithError(err).Errorf("[SQL] %s", sql)
	case elapsed > l.SlowThreshold:
		entry.Warnf("[SLOW SQL] %s", sql)
	case l.LogLevel >= gormLogger.Info:
		entry.Debugf("[QUERY] %s", sql)
	}
}
