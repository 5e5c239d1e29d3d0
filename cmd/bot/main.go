package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"eventbot/internal/adapters/discord"
	"eventbot/internal/adapters/httpapi"
	"eventbot/internal/application"
	"eventbot/internal/config"
	"eventbot/internal/extract"
	"eventbot/internal/infrastructure/cache"
	"eventbot/internal/infrastructure/database"
	"eventbot/internal/infrastructure/i18n"
	"eventbot/internal/infrastructure/llm"
	"eventbot/internal/infrastructure/metrics"
	"eventbot/internal/infrastructure/sqlite"
	"eventbot/internal/infrastructure/vk"
	"eventbot/internal/logging"
	"eventbot/internal/ports/output"
)

func main() {
	if err := run(); err != nil {
		slog.Error("❌ eventbot stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events, languages, closeStore, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	collector, err := metrics.NewCollector()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	completer, err := llm.NewCompleter(llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		FolderID: cfg.LLM.FolderID,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
	}, logger)
	if err != nil {
		return err
	}

	var translator output.TextTranslator
	if completer != nil {
		store, closeCache := openCache(cfg, logger)
		defer closeCache()
		translator = llm.NewTranslator(completer, store, logger)
		logger.Info("🤖 ai analysis enabled", "provider", completer.Name())
	} else {
		logger.Info("ai analysis disabled, using rule-based extraction")
	}

	messages := i18n.NewTranslator(cfg.Languages.Default.String(), logger)

	resolver := extract.NewDateResolver(cfg.Extraction.MinEventDate, extract.SystemClock)
	fields := extract.NewFieldExtractor(cfg.Extraction.LocationKeywords, cfg.Extraction.DefaultLocation)
	analyzer := application.NewAnalyzer(completer, resolver, cfg.LLM.AITimeout, collector, logger)
	pipeline := application.NewPipeline(analyzer, resolver, fields, translator, messages,
		application.PipelineConfig{
			Institution:        cfg.Extraction.Institution,
			TranslationTimeout: cfg.LLM.TranslationTimeout,
		}, collector, logger)

	wall := vk.NewClient(vk.Config{Token: cfg.VK.Token, APIVersion: cfg.VK.APIVersion}, nil, logger)
	eventSvc := application.NewEventService(
		events,
		wall,
		pipeline,
		application.NewDedupStore(events, collector, logger),
		application.ScanConfig{
			Groups:    cfg.VK.Groups,
			Languages: cfg.Languages.Enabled,
			PostCount: cfg.VK.PostCount,
		},
		extract.SystemClock,
		collector,
		logger,
	)
	prefSvc := application.NewPreferenceService(languages, cfg.Languages.Default, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		eventSvc.RunSchedule(ctx, cfg.ParseInterval)
		return nil
	})

	if cfg.HTTPAddr != "" {
		gin.SetMode(gin.ReleaseMode)
		router := httpapi.NewRouter(
			httpapi.NewHandler(eventSvc, cfg.Languages.Default.String(), cfg.HTTPAdminToken, logger),
			collector,
		)
		srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
		g.Go(func() error {
			logger.Info("✅ http api listening", "addr", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if cfg.Discord.Token != "" {
		handler := discord.NewHandler(eventSvc, prefSvc, messages, cfg.IsAdmin, logger)
		bot, err := discord.NewBot(cfg.Discord.Token, cfg.Discord.GuildID, handler, logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return bot.Run(ctx) })
	}

	err = g.Wait()
	logger.Info("🔄 shutting down")
	return err
}

// openStorage returns the repositories of the configured driver and a close
// function.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (output.EventRepository, output.LanguageRepository, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres":
		if cfg.Storage.Migrations {
			if err := database.RunMigrations(cfg.Storage.DatabaseURL, logger); err != nil {
				return nil, nil, nil, err
			}
		}
		pool, err := database.NewPool(ctx, cfg.Storage.DatabaseURL, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		q := database.New(pool)
		return database.NewEventRepository(q), database.NewLanguageRepository(q), pool.Close, nil
	default:
		store, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("✅ sqlite store ready", "path", cfg.Storage.SQLitePath)
		closeFn := func() {
			if err := store.Close(); err != nil {
				logger.Warn("⚠️ close sqlite store", "error", err)
			}
		}
		return sqlite.NewEventRepository(store), sqlite.NewLanguageRepository(store), closeFn, nil
	}
}

func openCache(cfg *config.Config, logger *slog.Logger) (output.Cache, func()) {
	if cfg.Cache.Driver != "redis" {
		return cache.NewMemory(cfg.Cache.TTL), func() {}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
	return cache.NewRedis(rdb, cfg.Cache.TTL, logger), func() { _ = rdb.Close() }
}
