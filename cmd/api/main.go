package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-care-assistant/internal/adapters/models/gemini"
	modellog "pet-care-assistant/internal/adapters/models/logging"
	"pet-care-assistant/internal/adapters/models/openai"
	"pet-care-assistant/internal/adapters/models/stub"
	pg "pet-care-assistant/internal/adapters/storage/postgres"
	"pet-care-assistant/internal/domain/carereport"
	"pet-care-assistant/internal/metrics"
	"pet-care-assistant/internal/platform/config"
	"pet-care-assistant/internal/platform/logger"
	"pet-care-assistant/internal/ports/models"
	"pet-care-assistant/internal/router"
)

// @title        Pet Care Assistant API
// @version      1.0
// @description  Two-stage pet care reports: photo analysis followed by a personalized care plan.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	metrics.Register()

	catalog, err := buildCatalog(cfg)
	if err != nil {
		return fmt.Errorf("variants: %w", err)
	}

	vision, text, err := buildModels(cfg)
	if err != nil {
		return fmt.Errorf("models: %w", err)
	}
	decoOpts := modellog.Options{LogPrompts: cfg.LogPrompts}
	vision = modellog.NewVision(vision, log, decoOpts)
	text = modellog.NewText(text, log, decoOpts)

	pipeline := carereport.NewPipeline(vision, text, carereport.Options{
		CallTimeout:   cfg.ModelCallTimeout,
		MaxImageBytes: cfg.MaxImageBytes,
		Recorder:      metrics.NewRecorder(),
	})

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = pg.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			return fmt.Errorf("postgres schema: %w", err)
		}
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			DB:            db,
			Pipeline:      pipeline,
			Catalog:       catalog,
			Logger:        log,
			MaxImageBytes: cfg.MaxImageBytes,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":     cfg.Addr(),
			"provider": cfg.ModelProvider,
			"variant":  catalog.DefaultKey(),
			"storage":  storageName(db),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildCatalog(cfg *config.Config) (*carereport.Catalog, error) {
	if cfg.VariantsFile != "" {
		return carereport.LoadCatalogFile(cfg.VariantsFile, cfg.DefaultVariant)
	}
	return carereport.NewCatalog(cfg.DefaultVariant, carereport.BuiltinVariants()...)
}

// buildModels: el mismo proveedor atiende ambos stages.
func buildModels(cfg *config.Config) (models.VisionModel, models.TextModel, error) {
	switch cfg.ModelProvider {
	case config.ProviderGemini:
		c, err := gemini.NewClient(gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
			Timeout: cfg.ModelCallTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	case config.ProviderOpenAI:
		c, err := openai.NewClient(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.ModelCallTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	case config.ProviderStub:
		c := stub.NewClient()
		return c, c, nil
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", cfg.ModelProvider)
	}
}

func storageName(db *sql.DB) string {
	if db != nil {
		return "postgres"
	}
	return "memory"
}
