// Package inquiry consumes inquiry.submitted events and sends the resulting
// notification e-mails.
package inquiry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wolfman30/maldives-travel-platform/internal/events"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

// Consumer is the processed-events key under which notifications are deduped.
const Consumer = "inquiry-notify"

const (
	defaultWorkerCount   = 2
	defaultWaitSeconds   = 10
	defaultBatchSize     = 5
	maxWaitSeconds       = 20
	maxBatchSize         = 10
	deleteTimeoutSeconds = 5
	maxBackoff           = 5 * time.Second
)

// Notifier sends the notifications for one inquiry.
type Notifier interface {
	NotifyInquirySubmitted(ctx context.Context, evt events.InquirySubmittedV1) error
}

// ProcessedStore remembers handled event ids.
type ProcessedStore interface {
	AlreadyProcessed(ctx context.Context, consumer, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, consumer, eventID string) (bool, error)
}

// Worker polls the queue with a fixed number of goroutines.
type Worker struct {
	queue     events.Queue
	notifier  Notifier
	processed ProcessedStore
	logger    *logging.Logger

	workers     int
	waitSeconds int
	batchSize   int
	sleep       func(time.Duration)

	wg sync.WaitGroup
}

// Option customizes a Worker.
type Option func(*Worker)

// WithWorkerCount sets the number of consumer goroutines.
func WithWorkerCount(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.workers = n
		}
	}
}

// WithReceiveWaitSeconds sets the long-poll wait, capped at 20s.
func WithReceiveWaitSeconds(seconds int) Option {
	return func(w *Worker) {
		if seconds < 0 {
			return
		}
		if seconds > maxWaitSeconds {
			seconds = maxWaitSeconds
		}
		w.waitSeconds = seconds
	}
}

// WithReceiveBatchSize sets how many messages one poll may return.
func WithReceiveBatchSize(n int) Option {
	return func(w *Worker) {
		if n <= 0 {
			return
		}
		if n > maxBatchSize {
			n = maxBatchSize
		}
		w.batchSize = n
	}
}

// WithProcessedStore enables redelivery dedupe.
func WithProcessedStore(store ProcessedStore) Option {
	return func(w *Worker) { w.processed = store }
}

// NewWorker creates a worker. queue and notifier are required.
func NewWorker(queue events.Queue, notifier Notifier, logger *logging.Logger, opts ...Option) *Worker {
	if queue == nil {
		panic("inquiry: queue cannot be nil")
	}
	if notifier == nil {
		panic("inquiry: notifier cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	w := &Worker{
		queue:       queue,
		notifier:    notifier,
		logger:      logger,
		workers:     defaultWorkerCount,
		waitSeconds: defaultWaitSeconds,
		batchSize:   defaultBatchSize,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Start launches worker goroutines until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.run(ctx, i+1)
	}
}

// Wait blocks until all worker goroutines exit.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context, workerID int) {
	defer w.wg.Done()
	w.logger.Debug("inquiry worker started", "worker_id", workerID)

	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("inquiry worker stopping", "worker_id", workerID)
			return
		default:
		}

		messages, err := w.queue.Receive(ctx, w.batchSize, w.waitSeconds)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			w.logger.Error("failed to receive inquiry events", "error", err, "worker_id", workerID)
			w.sleep(backoff)
			if backoff < maxBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		for _, msg := range messages {
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage processes one message. Messages that cannot be decoded are
// deleted; failed sends are left on the queue for redelivery.
func (w *Worker) handleMessage(ctx context.Context, msg events.Message) {
	env, err := events.DecodeEnvelope(msg.Body)
	if err != nil {
		w.logger.Error("failed to decode inquiry event", "error", err, "msg_id", msg.ID)
		w.deleteMessage(msg.ReceiptHandle)
		return
	}
	if env.EventType != events.TypeInquirySubmittedV1 {
		w.logger.Warn("ignoring unexpected event type", "event_type", env.EventType, "event_id", env.EventID)
		w.deleteMessage(msg.ReceiptHandle)
		return
	}
	var evt events.InquirySubmittedV1
	if err := events.DecodePayload(env, &evt); err != nil {
		w.logger.Error("failed to decode inquiry payload", "error", err, "event_id", env.EventID)
		w.deleteMessage(msg.ReceiptHandle)
		return
	}

	eventID := env.EventID.String()
	if w.processed != nil {
		done, err := w.processed.AlreadyProcessed(ctx, Consumer, eventID)
		if err != nil {
			w.logger.Warn("processed lookup failed", "error", err, "event_id", eventID)
		} else if done {
			w.logger.Info("skipping duplicate inquiry event", "event_id", eventID, "inquiry_id", evt.InquiryID)
			w.deleteMessage(msg.ReceiptHandle)
			return
		}
	}

	if err := w.notifier.NotifyInquirySubmitted(ctx, evt); err != nil {
		w.logger.Error("inquiry notification failed", "error", err, "event_id", eventID, "inquiry_id", evt.InquiryID)
		return
	}

	if w.processed != nil {
		if _, err := w.processed.MarkProcessed(ctx, Consumer, eventID); err != nil {
			w.logger.Warn("failed to mark event processed", "error", err, "event_id", eventID)
		}
	}
	w.deleteMessage(msg.ReceiptHandle)
	w.logger.Info("inquiry notifications sent", "event_id", eventID, "inquiry_id", evt.InquiryID)
}

func (w *Worker) deleteMessage(receiptHandle string) {
	if receiptHandle == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), deleteTimeoutSeconds*time.Second)
	defer cancel()

	if err := w.queue.Delete(ctx, receiptHandle); err != nil {
		w.logger.Error("failed to delete inquiry event", "error", err)
	}
}
