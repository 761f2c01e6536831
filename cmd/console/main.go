package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventconsole/internal/actions"
	"eventconsole/internal/api"
	"eventconsole/internal/config"
	"eventconsole/internal/core/reconcile"
	httpx "eventconsole/internal/http"
	"eventconsole/internal/pagecache"
	"eventconsole/internal/services/customer"
	"eventconsole/internal/services/customization"
	"eventconsole/internal/services/event"
	"eventconsole/internal/services/eventtype"
	"eventconsole/internal/services/landing"
	"eventconsole/internal/services/organizer"
	"eventconsole/internal/store/postgres"
	"eventconsole/internal/upload"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	config.SetupLogging(cfg.App)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithUserAgent("eventconsole/1"),
	)

	// View cache: Redis when configured, process memory otherwise
	var views pagecache.Cache = pagecache.NewMemory(cfg.Redis.ViewTTL)
	if cfg.Redis.Addr != "" {
		rdb, err := pagecache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, 30*time.Second)
		if err != nil {
			log.Fatal().Err(err).Msg("view cache unavailable")
		}
		defer rdb.Close()
		views = pagecache.NewRedis(rdb, cfg.Redis.ViewTTL)
	}

	deps := httpx.RouterDependencies{
		Config:        cfg,
		Views:         views,
		Actions:       actions.New(client, views),
		Customers:     customer.NewService(client),
		Organizers:    organizer.NewService(client),
		Events:        event.NewService(client),
		EventTypes:    eventtype.NewService(client),
		Customization: customization.NewService(client),
		Landing:       landing.NewService(client),
	}

	// Upload journal is optional
	var uploadOpts []upload.Option
	if cfg.DB.DSN != "" {
		pool := postgres.MustOpen(ctx, cfg.DB.DSN, 30*time.Second)
		defer pool.Close()
		repo := postgres.NewRepo(pool)
		if err := repo.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("db migrate fail")
		}
		journal := repo.Uploads()
		deps.Journal = journal
		uploadOpts = append(uploadOpts, upload.WithJournal(journal))

		worker := reconcile.NewWorker(journal, cfg.DB.StaleAfter)
		go worker.Run(ctx)
	}
	deps.Uploader = upload.NewUploader(client, cfg.Blob.BaseURL, uploadOpts...)

	if cfg.Sec.AdminToken == "" {
		log.Warn().Msg("ADMIN_TOKEN is empty, console routes are unprotected")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      httpx.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("backend", cfg.API.BaseURL).Msgf("event console listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
