package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/maldives-travel-platform/cmd/mainconfig"
	"github.com/wolfman30/maldives-travel-platform/internal/app/bootstrap"
	appconfig "github.com/wolfman30/maldives-travel-platform/internal/config"
	"github.com/wolfman30/maldives-travel-platform/internal/events"
	"github.com/wolfman30/maldives-travel-platform/internal/notify"
	"github.com/wolfman30/maldives-travel-platform/internal/observability/metrics"
	"github.com/wolfman30/maldives-travel-platform/internal/wizard"
	"github.com/wolfman30/maldives-travel-platform/internal/worker/inquiry"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

func setupMetrics() (http.Handler, *metrics.WizardMetrics, *metrics.NotificationMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewWizardMetrics(reg), metrics.NewNotificationMetrics(reg)
}

func connectPostgresPool(ctx context.Context, url string, logger *logging.Logger) *pgxpool.Pool {
	if url == "" {
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(pingCtx, url)
	if err != nil {
		logger.Warn("failed to create postgres pool, using in-memory inquiries", "error", err)
		return nil
	}
	if err := pool.Ping(pingCtx); err != nil {
		logger.Warn("postgres unreachable, using in-memory inquiries", "error", err)
		pool.Close()
		return nil
	}
	return pool
}

// openSQL opens the database/sql handle the catalog store reads from.
func openSQL(ctx context.Context, url string, logger *logging.Logger) *sql.DB {
	if url == "" {
		return nil
	}
	db, err := sql.Open("pgx", url)
	if err != nil {
		logger.Warn("failed to open catalog database", "error", err)
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Warn("catalog database unreachable, using embedded resorts", "error", err)
		db.Close()
		return nil
	}
	return db
}

// notificationPipeline bundles the queue side of inquiry submission. worker is
// only set when the in-process memory queue is in use.
type notificationPipeline struct {
	queue  events.Queue
	pub    *events.Publisher
	worker *inquiry.Worker
}

func (p *notificationPipeline) publisher() wizard.EventPublisher {
	if p == nil || p.pub == nil {
		return nil
	}
	return p.pub
}

func setupNotifications(ctx context.Context, cfg *appconfig.Config, pool *pgxpool.Pool, m *metrics.NotificationMetrics, logger *logging.Logger) (*notificationPipeline, error) {
	if cfg.UseMemoryQueue {
		queue := events.NewMemoryQueue(128)
		var ses notify.SESAPI
		if cfg.EmailProvider == "ses" {
			awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
			if err != nil {
				return nil, err
			}
			ses = sesv2.NewFromConfig(awsCfg)
		}
		sender := bootstrap.BuildEmailSender(cfg, ses, logger)
		opts := []inquiry.Option{inquiry.WithWorkerCount(cfg.WorkerCount)}
		if pool != nil {
			opts = append(opts, inquiry.WithProcessedStore(events.NewProcessedStore(pool)))
		}
		worker := inquiry.NewWorker(queue,
			notify.NewService(sender, cfg.AgencyInbox, logger.Component("notify"), m),
			logger.Component("inquiry-worker"),
			opts...,
		)
		logger.Info("using in-memory inquiry queue with inline worker", "workers", cfg.WorkerCount)
		return &notificationPipeline{
			queue:  queue,
			pub:    events.NewPublisher(queue, logger.Component("events")),
			worker: worker,
		}, nil
	}

	if cfg.InquiryQueueURL == "" {
		logger.Warn("INQUIRY_QUEUE_URL not set, inquiry notifications are disabled")
		return &notificationPipeline{}, nil
	}
	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	queue := events.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.InquiryQueueURL)
	return &notificationPipeline{
		queue: queue,
		pub:   events.NewPublisher(queue, logger.Component("events")),
	}, nil
}
