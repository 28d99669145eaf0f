// Package main is the entry point for the LottoLab lottery suggestion tool.
// It wires the databases, the number pool registry, the strategy engine, and
// the HTTP server, then runs until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/lottolab/internal/config"
	"github.com/aristath/lottolab/internal/database"
	"github.com/aristath/lottolab/internal/modules/draws"
	drawshandlers "github.com/aristath/lottolab/internal/modules/draws/handlers"
	"github.com/aristath/lottolab/internal/modules/generator"
	generatorhandlers "github.com/aristath/lottolab/internal/modules/generator/handlers"
	"github.com/aristath/lottolab/internal/modules/pool"
	"github.com/aristath/lottolab/internal/modules/stats"
	statshandlers "github.com/aristath/lottolab/internal/modules/stats/handlers"
	"github.com/aristath/lottolab/internal/modules/strategy"
	"github.com/aristath/lottolab/internal/reliability"
	"github.com/aristath/lottolab/internal/scheduler"
	"github.com/aristath/lottolab/internal/server"
	"github.com/aristath/lottolab/internal/version"
	"github.com/aristath/lottolab/pkg/logger"
)

// quarantineRetention is how long invalid draws stay inspectable before the
// cleanup job purges them.
const quarantineRetention = 90 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Str("version", version.Version).Msg("Starting LottoLab")

	// Three databases: durable draw history, generated combinations, and a
	// recomputable statistics cache.
	historyDB := mustOpenDB(log, cfg, "history", database.ProfileStandard)
	defer historyDB.Close()
	combinationsDB := mustOpenDB(log, cfg, "combinations", database.ProfileStandard)
	defer combinationsDB.Close()
	cacheDB := mustOpenDB(log, cfg, "cache", database.ProfileCache)
	defer cacheDB.Close()

	registry := pool.NewRegistry()
	engine := strategy.NewEngine(log)

	drawRepo := draws.NewRepository(historyDB.Conn(), registry, log)
	comboRepo := draws.NewComboRepository(combinationsDB.Conn(), log)

	statsService := stats.NewService(cacheDB.Conn(), registry, drawRepo, log)

	generatorService := generator.NewService(generator.ServiceConfig{
		Registry:     registry,
		Engine:       engine,
		History:      drawRepo,
		Store:        comboRepo,
		HistoryLimit: cfg.HistoryLimit,
		Log:          log,
	})

	sched := scheduler.New(log)
	mustAddJob(log, sched, "stats_refresh", cfg.StatsRefreshCron, statsService.RefreshAll)
	mustAddJob(log, sched, "quarantine_cleanup", cfg.QuarantineCleanupCron, func() error {
		_, err := drawRepo.PurgeQuarantine(quarantineRetention)
		return err
	})

	if cfg.Backup.Enabled {
		s3Client, err := reliability.NewS3Client(context.Background(), cfg.Backup)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create backup S3 client")
		}
		backupService := reliability.NewBackupService(
			s3Client, cfg.Backup.Bucket, cfg.DataDir, cfg.Backup.RetentionDays, log)
		mustAddJob(log, sched, "backup", cfg.BackupCron, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			return backupService.CreateAndUploadBackup(ctx)
		})
	} else {
		log.Info().Msg("Backups disabled")
	}

	srv := server.New(server.Config{
		Log:               log,
		Port:              cfg.Port,
		DevMode:           cfg.DevMode,
		HistoryDB:         historyDB,
		CombinationsDB:    combinationsDB,
		CacheDB:           cacheDB,
		GeneratorHandlers: generatorhandlers.NewHandler(generatorService, log),
		DrawsHandlers:     drawshandlers.NewHandler(drawRepo, comboRepo, log),
		StatsHandlers:     statshandlers.NewHandler(statsService, log),
		SystemHandlers:    server.NewSystemHandlers(log, historyDB, combinationsDB, cacheDB),
	})

	sched.Start()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// Warm the statistics cache so the dashboard's first stats request does
	// not pay the refresh cost.
	go func() {
		if err := statsService.RefreshAll(); err != nil {
			log.Warn().Err(err).Msg("Initial statistics refresh failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("LottoLab stopped")
}

func mustOpenDB(log zerolog.Logger, cfg *config.Config, name string, profile database.Profile) *database.DB {
	db, err := database.New(database.Config{
		Path:    cfg.DatabasePath(name),
		Profile: profile,
		Name:    name,
	})
	if err != nil {
		log.Fatal().Err(err).Str("database", name).Msg("Failed to open database")
	}
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Str("database", name).Msg("Failed to migrate database")
	}
	return db
}

func mustAddJob(log zerolog.Logger, sched *scheduler.Scheduler, name, spec string, fn func() error) {
	if err := sched.AddJob(name, spec, fn); err != nil {
		log.Fatal().Err(err).Str("job", name).Msg("Failed to schedule job")
	}
}
