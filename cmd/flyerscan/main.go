package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/crimson-sun/flyerscan/internal/api"
	"github.com/crimson-sun/flyerscan/internal/auth"
	"github.com/crimson-sun/flyerscan/internal/config"
	"github.com/crimson-sun/flyerscan/internal/engine"
	"github.com/crimson-sun/flyerscan/internal/engine/entity"
	"github.com/crimson-sun/flyerscan/internal/logging"
	"github.com/crimson-sun/flyerscan/internal/nearby"
	"github.com/crimson-sun/flyerscan/internal/ocr"
	"github.com/crimson-sun/flyerscan/internal/store"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize the entity recognizer. Without model files the engine
	// falls back to regex heuristics.
	var rec entity.Recognizer = entity.Noop{}
	if !cfg.Engine.DisableNER {
		r, err := entity.NewONNXRecognizer(
			cfg.Engine.ModelPath, cfg.Engine.VocabPath, cfg.Engine.LabelsPath)
		if err != nil {
			logger.Fatal("failed to load NER model", logging.Error(err))
		}
		rec = r
	}
	defer rec.Close()

	eng := engine.New(rec)

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to open database", logging.Error(err))
	}
	defer st.Close()

	ocrClient := ocr.New(cfg.OCR.Endpoint, cfg.OCR.APIKey,
		ocr.WithTimeout(cfg.OCR.Timeout),
		ocr.WithLogger(logger))

	nearbySvc := nearby.NewService(nearbySources(cfg, logger), cfg.Nearby.MaxResults, logger)

	server := api.NewServer(api.Deps{
		Config: cfg,
		Log:    logger,
		Store:  st,
		Engine: eng,
		OCR:    ocrClient,
		JWT:    auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiry),
		Nearby: nearbySvc,
	})

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", logging.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown", logging.Error(err))
		}
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server error", logging.Error(err))
		}
	}
}

// nearbySources instantiates every registered discovery provider with
// its credentials. Unconfigured providers stay in the list; the
// aggregator skips them per search.
func nearbySources(cfg config.Config, logger logging.Logger) []nearby.Source {
	tokens := map[string]string{
		"eventbrite": cfg.Nearby.EventbriteToken,
	}

	var sources []nearby.Source
	for _, name := range nearby.Providers() {
		ctor, err := nearby.Get(name)
		if err != nil {
			continue
		}
		src := ctor(tokens[name])
		if !src.Configured() {
			logger.Warn("nearby provider has no credentials",
				logging.String("provider", name))
		}
		sources = append(sources, src)
	}
	return sources
}
