package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hireloop/jobboard/internal/infrastructure/config"
	httpserver "github.com/hireloop/jobboard/internal/infrastructure/http"
	"github.com/hireloop/jobboard/internal/infrastructure/http/handlers"
	"github.com/hireloop/jobboard/internal/quiz"
	"github.com/hireloop/jobboard/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadQuiz(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env != "production",
		Service: "quiz-api",
	})

	bank, err := quiz.LoadDefault()
	if err != nil {
		log.Fatal().Err(err).Msg("load question bank")
	}

	e := httpserver.NewServer(log, httpserver.ServerOptions{Subsystem: "quiz"})
	quiz.NewHandler(bank).Register(e)
	e.GET("/health", handlers.NewHealthHandler().Liveness)

	go func() {
		log.Info().Str("port", cfg.Port).Strs("categories", bank.Categories()).Msg("quiz api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("quiz api stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpserver.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
