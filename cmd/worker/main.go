package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/budgetly/budgetly/internal/account"
	"github.com/budgetly/budgetly/internal/app"
	jobmetrics "github.com/budgetly/budgetly/internal/jobs"
	"github.com/budgetly/budgetly/internal/mail"
	"github.com/budgetly/budgetly/internal/platform/cache"
	"github.com/budgetly/budgetly/internal/platform/db"
	"github.com/budgetly/budgetly/internal/security"
	"github.com/budgetly/budgetly/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	// The worker always delivers directly; the queue transport is the API's.
	var sender mail.Sender = mail.NewSMTPSender(cfg.SMTP())
	if cfg.MailTransport == app.MailTransportLog {
		sender = mail.NewLogSender(logger)
	}

	renderer, err := mail.NewRenderer()
	if err != nil {
		logger.Error("init mail renderer", slog.Any("error", err))
		os.Exit(1)
	}
	hasher, err := security.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		logger.Error("init hasher", slog.Any("error", err))
		os.Exit(1)
	}
	accountService := account.NewService(
		account.NewRepository(pool),
		hasher,
		sender,
		renderer,
		cache.NewLocker(redisClient, "budgetly:"),
		account.ServiceConfig{
			BaseURL:           cfg.AppBaseURL,
			VerificationTTL:   cfg.VerificationTTL,
			ResetTTL:          cfg.ResetTTL,
			RedirectAllowlist: cfg.ResetRedirectAllowlist,
		},
		logger,
	)

	metrics := jobmetrics.NewMetrics(nil)
	mailJob := jobs.NewMailJob(sender, logger, metrics)
	purgeJob := jobs.NewLedgerPurgeJob(accountService, logger, metrics)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeSendEmail, Handler: mailJob.Handle},
			{Type: jobs.TaskLedgerPurge, Handler: purgeJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.PurgeSchedule, Task: jobs.NewLedgerPurgeTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
