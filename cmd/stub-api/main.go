package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-desk/internal/config"
	"github.com/medicore/hospital-desk/internal/stubapi"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	log.Info().Str("env", cfg.Env).Str("port", cfg.StubHTTPPort).Msg("stub-api starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := stubapi.NewServer(cfg, log)
	if err := server.Seed(uint64(os.Getpid()), cfg.SeedDoctors, cfg.SeedPatients); err != nil {
		log.Fatal().Err(err).Msg("seed error")
	}
	log.Info().Str("password", stubapi.DemoPassword).Msg("demo accounts ready (admin1, reception1, doc1, ...)")

	httpServer := &http.Server{
		Addr:    ":" + cfg.StubHTTPPort,
		Handler: server.Router(),
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("shutting down stub-api")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
