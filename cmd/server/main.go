package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/stationaryhq/stationary/internal/config"
	"github.com/stationaryhq/stationary/internal/extract"
	"github.com/stationaryhq/stationary/internal/repository/localstore"
	"github.com/stationaryhq/stationary/internal/scheduler"
	"github.com/stationaryhq/stationary/internal/server/handlers"
	"github.com/stationaryhq/stationary/internal/server/router"
	authsvc "github.com/stationaryhq/stationary/internal/service/auth"
	importersvc "github.com/stationaryhq/stationary/internal/service/importer"
	inventorysvc "github.com/stationaryhq/stationary/internal/service/inventory"
	rendersvc "github.com/stationaryhq/stationary/internal/service/render"
	"github.com/stationaryhq/stationary/pkg/clients/gemini"
	"github.com/stationaryhq/stationary/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := localstore.New(cfg.Storage.DataFile, baseLogger.Named("repo.localstore"))
	if err != nil {
		baseLogger.Fatal("failed to open data file", zap.Error(err))
	}

	inventory := inventorysvc.NewService(store, baseLogger.Named("svc.inventory"))

	authStore, err := authsvc.NewStore(store, baseLogger.Named("svc.auth"))
	if err != nil {
		baseLogger.Fatal("failed to init auth store", zap.Error(err))
	}

	// The extraction model is optional; without a key imports load demo data.
	aiClient := gemini.NewClient(cfg.AI.GeminiKey)
	if aiClient.Configured() {
		baseLogger.Info("gemini extraction client enabled")
	} else {
		baseLogger.Warn("gemini api key missing, document imports will load demo data")
	}

	extractor := extract.NewPDFExtractor(baseLogger.Named("extract.pdf"))
	importer := importersvc.NewService(extractor, aiClient, inventory, baseLogger.Named("svc.importer"))
	renderer := rendersvc.NewPDFRenderer(cfg.Export.Dir, baseLogger.Named("svc.render"))

	handler := handlers.New(inventory, importer, authStore, renderer, baseLogger.Named("handlers"))
	engine := router.New(handler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Snapshot.CronSchedule, cfg.Snapshot.Dir, store, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
