package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/pkg/config"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/server"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/pkg/logger"
)

func main() {
	// A .env file is optional; real environment variables take precedence.
	envErr := godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{Service: "examconsole"})
		log.Error().Err(err).Msg("configuration invalid")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "examconsole",
	})
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn().Err(envErr).Msg(".env file not loaded")
	}

	srv, err := server.New(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		log.Error().Err(err).Msg("server execution failed or shutdown encountered errors")
		os.Exit(1)
	}
}
