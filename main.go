package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"hsetrack_backend/internals/broadcast"
	"hsetrack_backend/internals/configs"
	database "hsetrack_backend/internals/databases"
	"hsetrack_backend/internals/databases/localstore"
	auditService "hsetrack_backend/internals/features/auditlogs/service"
	calendarService "hsetrack_backend/internals/features/calendar/service"
	documentService "hsetrack_backend/internals/features/documents/service"
	indicatorService "hsetrack_backend/internals/features/indicators/service"
	kpiService "hsetrack_backend/internals/features/kpi/service"
	"hsetrack_backend/internals/features/programs/repository"
	programService "hsetrack_backend/internals/features/programs/service"
	reminderService "hsetrack_backend/internals/features/reminders/service"
	statisticsService "hsetrack_backend/internals/features/statistics/service"
	taskService "hsetrack_backend/internals/features/tasks/service"
	helper "hsetrack_backend/internals/helpers"
	helperOSS "hsetrack_backend/internals/helpers/oss"
	"hsetrack_backend/internals/logger"
	middlewares "hsetrack_backend/internals/middlewares"
	routes "hsetrack_backend/internals/route"
	"hsetrack_backend/internals/seeds"
	seedPrograms "hsetrack_backend/internals/seeds/programs"
)

func main() {
	cfg, err := configs.LoadEnv()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	if err := logger.Init(cfg.LogConfig()); err != nil {
		logrus.Fatalf("logger: %v", err)
	}
	log := logger.App()
	gormLog := configs.NewGormLogger(logger.GetLogger("db"))

	// 🔌 local store (wajib) + remote mirror (opsional)
	if err := database.ConnectLocal(cfg.LocalDBPath, gormLog, log); err != nil {
		log.Fatalf("local store: %v", err)
	}
	store := localstore.New(database.LocalDB)
	if err := store.Migrate(); err != nil {
		log.Fatalf("migrate local store: %v", err)
	}

	var remote programService.RemoteStore
	if cfg.RemoteEnabled() {
		if err := database.ConnectDB(cfg.PostgresDSN(), gormLog, log); err != nil {
			// remote gagal tidak fatal: update tetap commit lokal
			log.WithError(err).Error("[DB] remote mirror tidak tersedia, lanjut local-only")
		} else {
			database.TunePool(log)
			database.WarmUpQueries(log)
			repo := repository.NewRemoteProgress(database.DB)
			if err := repo.Migrate(); err != nil {
				log.WithError(err).Error("[DB] migrate remote gagal")
			}
			remote = repo
		}
	}
	if cfg.SeedOnStartup {
		seeds.RunAllSeeds(database.DB)
	}

	// 🧩 program engine
	hub := broadcast.NewHub()
	loader := programService.NewLoader(store, seedPrograms.NewEmbedded(), cfg.ProgramYear, logger.Sync())
	registry := programService.NewRegistry(loader, hub)
	engine := programService.NewEngine(loader, hub, remote, logger.Sync(),
		programService.WithRemoteTimeout(cfg.RemoteSyncTimeout()))

	tasks := taskService.NewService(store, hub, log)
	calendar := calendarService.NewService(store, registry, tasks, log)
	calendar.Listen(hub)
	if _, err := calendar.Rebuild(context.Background()); err != nil {
		log.WithError(err).Warn("[CALENDAR] rebuild awal gagal")
	}
	statistics := statisticsService.NewService(registry)
	documents := documentService.NewService(store, hub, log)
	kpis := kpiService.NewService(store, hub, cfg.ProgramYear, log)
	indicators := indicatorService.NewService(store, hub, cfg.ProgramYear, log)
	audit := auditService.NewService(store, logger.Audit())

	// interface tetap nil kalau OSS tidak dikonfigurasi
	var blob helperOSS.BlobStore
	if cfg.OSSEnabled() {
		svc, err := helperOSS.NewOSSService(helperOSS.OSSConfig{
			Endpoint:   cfg.OSSEndpoint,
			AccessKey:  cfg.OSSAccessKey,
			SecretKey:  cfg.OSSSecretKey,
			Bucket:     cfg.OSSBucket,
			Prefix:     cfg.OSSPrefix,
			PublicBase: cfg.OSSPublicURL,
		}, log)
		if err != nil {
			log.WithError(err).Error("[OSS] init gagal, upload attachment dimatikan")
		} else {
			blob = svc
		}
	}

	// ✉️ reminders
	var sender reminderService.Sender = reminderService.LogSender{Log: logger.Audit()}
	if cfg.MailEnabled() {
		sender = reminderService.NewSMTPSender(reminderService.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
	} else {
		log.Warn("[REMINDER] SMTP_HOST kosong, email hanya dicatat ke log")
	}
	reminders := reminderService.NewService(registry, tasks, sender, cfg.AppURL, logger.Audit())
	var scheduler *cron.Cron
	if cfg.ReminderCron != "" {
		if scheduler, err = reminders.StartScheduler(cfg.ReminderCron); err != nil {
			log.WithError(err).Error("[REMINDER] scheduler tidak berjalan")
		}
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.JsonFiberError,
		BodyLimit:               20 * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app, cfg, log)

	routes.SetupRoutes(app, routes.Deps{
		Config:     cfg,
		Log:        log,
		Loader:     loader,
		Registry:   registry,
		Engine:     engine,
		Tasks:      tasks,
		Calendar:   calendar,
		Statistics: statistics,
		Documents:  documents,
		Reminders:  reminders,
		KPI:        kpis,
		Indicators: indicators,
		Audit:      audit,
		Blob:       blob,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Infof("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("🛑 Shutting down...")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	calendar.Close()
	registry.Close()
	database.Close()
}

