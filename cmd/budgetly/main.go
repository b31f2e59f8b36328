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

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/budgetly/budgetly/cmd/budgetly/cli"
	"github.com/budgetly/budgetly/internal/account"
	"github.com/budgetly/budgetly/internal/app"
	"github.com/budgetly/budgetly/internal/budgets"
	"github.com/budgetly/budgetly/internal/mail"
	"github.com/budgetly/budgetly/internal/news"
	"github.com/budgetly/budgetly/internal/observability"
	"github.com/budgetly/budgetly/internal/platform/cache"
	"github.com/budgetly/budgetly/internal/platform/db"
	"github.com/budgetly/budgetly/internal/security"
	"github.com/budgetly/budgetly/internal/view"
	"github.com/budgetly/budgetly/jobs"
)

const usage = `usage: budgetly [command]

commands:
  serve               run the HTTP API (default)
  migrate             apply database migrations and exit
  jobs purge          enqueue an expired-ledger purge
  jobs inspect        print default queue statistics`

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	args := os.Args[1:]
	command := "serve"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "serve":
		err = serve(ctx, cfg, logger)
	case "migrate":
		err = migrate(ctx, cfg, logger)
	case "jobs":
		err = runJobs(ctx, cfg, args[1:])
	case "help", "-h", "--help":
		fmt.Println(usage)
		return
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(command, slog.Any("error", err))
		os.Exit(1)
	}
}

func migrate(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}

func runJobs(ctx context.Context, cfg *app.Config, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	ops := cli.NewJobsCLI(cfg.RedisAddr)
	defer func() { _ = ops.Close() }()

	switch args[0] {
	case "purge":
		info, err := ops.Trigger(ctx, jobs.TaskLedgerPurge)
		if err != nil {
			return err
		}
		fmt.Printf("enqueued %s id=%s\n", info.Type, info.ID)
	case "inspect":
		stats, err := ops.InspectQueue(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("queue=%s pending=%d active=%d scheduled=%d retry=%d\n",
			stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry)
	default:
		return fmt.Errorf("unknown jobs command %q", args[0])
	}
	return nil
}

func serve(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.DBAutoMigrate {
		if err := db.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	queue := jobs.NewClient(redisOpts)
	defer func() { _ = queue.Close() }()
	inspector := asynq.NewInspector(redisOpts)
	defer func() { _ = inspector.Close() }()

	sender, err := newMailSender(cfg, logger, queue)
	if err != nil {
		return err
	}
	renderer, err := mail.NewRenderer()
	if err != nil {
		return err
	}
	hasher, err := security.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	templates, err := view.NewEngine()
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics()

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
	accountService.WithMetrics(metrics)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		AccountHandler: account.NewHandler(logger, accountService, templates),
		BudgetHandler:  budgets.NewHandler(logger, budgets.NewService(budgets.NewRepository(pool), logger)),
		NewsHandler:    news.NewHandler(logger, news.NewService(news.NewRepository(pool), logger)),
		JobHandler:     jobs.NewHandler(inspector, logger),
		Metrics:        metrics,
		Probes:         probes(pool, redisClient),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("mail_transport", cfg.MailTransport))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
	return nil
}

func newMailSender(cfg *app.Config, logger *slog.Logger, queue *jobs.Client) (mail.Sender, error) {
	switch cfg.MailTransport {
	case app.MailTransportSMTP:
		return mail.NewSMTPSender(cfg.SMTP()), nil
	case app.MailTransportQueue:
		return queue, nil
	case app.MailTransportLog:
		return mail.NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.MailTransport)
	}
}

func probes(pool *pgxpool.Pool, client *redis.Client) map[string]app.Probe {
	return map[string]app.Probe{
		"postgres": pool.Ping,
		"redis": func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}
