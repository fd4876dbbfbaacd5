package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	_ "github.com/hireloop/jobboard/docs"
	"github.com/hireloop/jobboard/internal/api"
	"github.com/hireloop/jobboard/internal/api/handler"
	"github.com/hireloop/jobboard/internal/core/ports"
	"github.com/hireloop/jobboard/internal/core/service"
	"github.com/hireloop/jobboard/internal/infrastructure/config"
	mongodb "github.com/hireloop/jobboard/internal/infrastructure/db/mongo"
	redisdb "github.com/hireloop/jobboard/internal/infrastructure/db/redis"
	httpserver "github.com/hireloop/jobboard/internal/infrastructure/http"
	"github.com/hireloop/jobboard/internal/infrastructure/http/handlers"
	"github.com/hireloop/jobboard/internal/infrastructure/notify"
	"github.com/hireloop/jobboard/internal/infrastructure/queue"
	"github.com/hireloop/jobboard/pkg/logger"
)

// @title                       Job Board API
// @version                     1.0
// @description                 Job postings, candidate and employer profiles, and applications.
// @host                        localhost:8080
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "jobboard-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	candidates := mongodb.NewCandidateRepository(db)
	employers := mongodb.NewEmployerRepository(db)
	jobs := mongodb.NewJobRepository(db)
	applications := mongodb.NewApplicationRepository(db)

	// --- Notifications ---
	sender, closeSender, err := newSender(cfg, log)
	if err != nil {
		return err
	}
	defer closeSender()

	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, sender, logger.Component("dispatcher"))
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	// --- Use cases ---
	services := api.Services{
		Auth: service.NewAuthService(service.AuthDeps{
			Users:      users,
			Candidates: candidates,
			Employers:  employers,
			Limiter:    redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window),
			Notifier:   dispatcher,
			Log:        logger.Component("auth"),
		}, cfg.JWTSecret, cfg.JWTTTL),
		Profiles: service.NewProfileService(users, candidates, employers, logger.Component("profiles")),
		Jobs: service.NewJobService(jobs, employers,
			redisdb.NewFeaturedJobCache(rdb, cfg.Redis.FeaturedTTL), logger.Component("jobs")),
		Applications: service.NewApplicationService(service.ApplicationDeps{
			Applications: applications,
			Jobs:         jobs,
			Candidates:   candidates,
			Employers:    employers,
			Users:        users,
			Notifier:     dispatcher,
			Log:          logger.Component("applications"),
		}),
	}

	// --- HTTP ---
	e := httpserver.NewServer(log, httpserver.ServerOptions{
		Subsystem:    "api",
		ErrorHandler: api.NewHTTPErrorHandler(log),
		Validator:    handler.NewValidator(),
	})
	api.RegisterRoutes(e, services, cfg.JWTSecret, map[string]handlers.Checker{
		"mongodb": handlers.MongoChecker(db),
		"redis":   handlers.RedisChecker(rdb),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("notify_driver", cfg.Notify.Driver).Msg("job board api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpserver.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newSender picks the notification transport named by NOTIFY_DRIVER.
func newSender(cfg *config.Config, log zerolog.Logger) (ports.NotificationSender, func(), error) {
	noop := func() {}
	switch cfg.Notify.Driver {
	case "smtp":
		s, err := notify.NewSMTPSender(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		return s, noop, err
	case "nats":
		p, err := notify.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.Subject, logger.Component("nats"))
		if err != nil {
			return nil, noop, err
		}
		return p, func() {
			if err := p.Close(); err != nil {
				log.Warn().Err(err).Msg("nats drain")
			}
		}, nil
	default:
		return notify.NewLogSender(logger.Component("notifications")), noop, nil
	}
}
