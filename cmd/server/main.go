package main // Entry point package

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/minsu-han/warehouse-inbound/internal/config"
	"github.com/minsu-han/warehouse-inbound/internal/database"
	"github.com/minsu-han/warehouse-inbound/internal/handler"
	"github.com/minsu-han/warehouse-inbound/internal/ledger"
	"github.com/minsu-han/warehouse-inbound/internal/middleware"
	"github.com/minsu-han/warehouse-inbound/internal/queue"
	"github.com/minsu-han/warehouse-inbound/internal/repository"
	"github.com/minsu-han/warehouse-inbound/internal/router"
	"github.com/minsu-han/warehouse-inbound/internal/schedule"
	"github.com/minsu-han/warehouse-inbound/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	log := zerolog.New(os.Stderr).With().Timestamp().Str("app", "warehouse-inbound").Logger()
	cfg := config.Load()

	// Persistence. MySQL when DB_HOST is configured, otherwise the
	// in-memory stores (single-node deployments and local development).
	var (
		scheduleStore  repository.ScheduleStore
		timesheetStore repository.TimesheetStore
		outboundStore  repository.OutboundStore
		vasStore       repository.VASStore
		settingsStore  repository.SettingsStore
	)
	if cfg.UseDatabase() {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatal().Err(err).Msg("database connect failed")
		}
		defer db.Close()
		scheduleStore = repository.NewScheduleRepo(db)
		timesheetStore = repository.NewTimesheetRepo(db)
		outboundStore = repository.NewOutboundRepo(db)
		vasStore = repository.NewVASRepo(db)
		settingsStore = repository.NewSettingsRepo(db)
		log.Info().Str("host", cfg.DBHost).Msg("using mysql stores")
	} else {
		scheduleStore = repository.NewMemoryScheduleStore()
		timesheetStore = repository.NewMemoryTimesheetStore()
		outboundStore = repository.NewMemoryOutboundStore()
		vasStore = repository.NewMemoryVASStore()
		settingsStore = repository.NewMemorySettingsStore()
		log.Info().Msg("using in-memory stores")
	}

	// The slot ledger persists through Redis when available and falls
	// back to process memory otherwise.
	rdb := config.NewRedisClient()
	var ledgerStore ledger.Store
	if rdb != nil {
		ledgerStore = ledger.NewRedisStore(rdb)
		log.Info().Msg("ledger backed by redis")
	} else {
		ledgerStore = ledger.NewMemoryStore()
		log.Warn().Msg("redis unavailable, ledger state is process-local")
	}
	led := ledger.New(ledgerStore, cfg.LedgerSeed, log)

	rec := schedule.NewReconciler(scheduleStore, led, log)

	var pub *service.Publisher
	if cfg.EventsEnabled {
		pub = service.NewPublisher(log)
		go queue.StartCheckInConsumer(log)
	}

	h := router.Handlers{
		Auth:       handler.NewAuthHandler(cfg),
		Schedule:   handler.NewScheduleHandler(scheduleStore, rec, log),
		Assignment: handler.NewAssignmentHandler(rec, pub, log),
		Location:   handler.NewLocationHandler(led, rec),
		Dock:       handler.NewDockHandler(scheduleStore, led),
		Import:     handler.NewImportHandler(scheduleStore, log),
		Timesheet:  handler.NewTimesheetHandler(timesheetStore),
		Outbound:   handler.NewOutboundHandler(outboundStore),
		VAS:        handler.NewVASHandler(vasStore),
		Settings:   handler.NewSettingsHandler(settingsStore),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	router.RegisterRoutes(e, h)
	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.RegisterAPI(e, h, cfg.JWTSecret, rl)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
