package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Furiouss38/podv2/internal/config"
	"github.com/Furiouss38/podv2/internal/db"
	"github.com/Furiouss38/podv2/internal/handler"
	"github.com/Furiouss38/podv2/internal/logging"
	"github.com/Furiouss38/podv2/internal/metrics"
	"github.com/Furiouss38/podv2/internal/middleware"
	"github.com/Furiouss38/podv2/internal/repository"
	"github.com/Furiouss38/podv2/internal/router"
	"github.com/Furiouss38/podv2/internal/service"
	"github.com/Furiouss38/podv2/internal/storage"
)

// maxUploadSize bounds multipart bodies (video files included).
const maxUploadSize = 2 << 30

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, "pod-api")
	log := logging.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, cfg.DefaultTypeID); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	metrics.Init(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	store, err := storage.NewMinioStore(ctx, storage.Options{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to object storage")
	}

	// Repositories
	channelRepo := repository.NewChannelRepo(pool)
	themeRepo := repository.NewThemeRepo(pool)
	ownerRepo := repository.NewOwnerRepo(pool)
	videoRepo := repository.NewVideoRepo(pool)
	viewRepo := repository.NewViewCountRepo(pool)

	// Services
	media := service.NewMediaService(store, cfg.VideosDir, cfg.FilesDir)
	viewWorker := service.NewViewWorker(viewRepo, cfg.ViewFlushInterval)
	videoSvc := service.NewVideoService(videoRepo, ownerRepo, media, cache, cfg.DefaultTypeID, cfg.DefaultLanguage)

	workerDone := make(chan struct{})
	go func() {
		viewWorker.Start(ctx)
		close(workerDone)
	}()

	app := fiber.New(fiber.Config{
		AppName:      "Pod API",
		ServerHeader: "Pod",
		BodyLimit:    maxUploadSize,
	})

	stopLimiters := router.Setup(app, &router.Handlers{
		Health: handler.NewHealthHandler(pool, cache.Client(), store),
		Directory: handler.NewDirectoryHandler(service.NewDirectoryService(
			ownerRepo, repository.NewGroupRepo(pool), cfg.OwnerHashSecret)),
		Channel: handler.NewChannelHandler(service.NewChannelService(channelRepo, themeRepo, cache)),
		Theme:   handler.NewThemeHandler(service.NewThemeService(themeRepo, channelRepo, cache)),
		Type: handler.NewTaxonHandler(
			service.NewTaxonService(repository.NewTypeRepo(pool), "type"), "Type"),
		Discipline: handler.NewTaxonHandler(
			service.NewTaxonService(repository.NewDisciplineRepo(pool), "discipline"), "Discipline"),
		Video: handler.NewVideoHandler(videoSvc, middleware.Choices{
			Cursus: cfg.CursusCodes,
			Langs:  cfg.MainLangChoices,
		}),
		View:   handler.NewViewHandler(service.NewViewService(viewRepo, videoRepo, viewWorker)),
		Upload: handler.NewUploadHandler(media),
		Stats:  handler.NewStatsHandler(service.NewStatsService(repository.NewStatsRepo(pool), cache)),
	}, cfg.CORSOrigins)
	defer stopLimiters()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("pod backend starting")
	if err := app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true}); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("server stopped")
	}

	// Wait for the final view flush before the pool closes.
	stop()
	<-workerDone
}
