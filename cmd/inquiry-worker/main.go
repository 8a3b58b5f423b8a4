package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/wolfman30/maldives-travel-platform/cmd/mainconfig"
	"github.com/wolfman30/maldives-travel-platform/internal/app/bootstrap"
	appconfig "github.com/wolfman30/maldives-travel-platform/internal/config"
	"github.com/wolfman30/maldives-travel-platform/internal/events"
	"github.com/wolfman30/maldives-travel-platform/internal/notify"
	"github.com/wolfman30/maldives-travel-platform/internal/worker/inquiry"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.NewWithOptions(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.InquiryQueueURL == "" {
		logger.Error("INQUIRY_QUEUE_URL is required")
		os.Exit(1)
	}

	awsConfig, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	queue := events.NewSQSQueue(sqs.NewFromConfig(awsConfig), cfg.InquiryQueueURL)
	sender := bootstrap.BuildEmailSender(cfg, sesv2.NewFromConfig(awsConfig), logger)
	notifier := notify.NewService(sender, cfg.AgencyInbox, logger.Component("notify"), nil)

	opts := []inquiry.Option{inquiry.WithWorkerCount(cfg.WorkerCount)}
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		opts = append(opts, inquiry.WithProcessedStore(events.NewProcessedStore(pool)))
	} else {
		logger.Warn("DATABASE_URL not set, duplicate deliveries will not be filtered")
	}

	worker := inquiry.NewWorker(queue, notifier, logger.Component("inquiry-worker"), opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	logger.Info("inquiry worker started", "workers", cfg.WorkerCount, "queue", cfg.InquiryQueueURL)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down inquiry worker...")
	cancel()

	doneCtx, doneCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer doneCancel()

	waitCh := make(chan struct{})
	go func() {
		worker.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
		logger.Info("inquiry worker stopped")
	case <-doneCtx.Done():
		logger.Error("inquiry worker shutdown timed out", "error", doneCtx.Err())
	}
}
