package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

// Publisher enqueues canonical events for asynchronous processing.
type Publisher struct {
	queue  Queue
	logger *logging.Logger
}

// NewPublisher creates a queue-backed publisher.
func NewPublisher(queue Queue, logger *logging.Logger) *Publisher {
	if queue == nil {
		panic("events: queue cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Publisher{
		queue:  queue,
		logger: logger,
	}
}

// Publish wraps evt in an envelope and sends it.
func (p *Publisher) Publish(ctx context.Context, aggregate, correlationID string, evt CanonicalEvent, opts ...EnvelopeOption) (Envelope, error) {
	env, err := NewEnvelope(aggregate, correlationID, evt, opts...)
	if err != nil {
		return Envelope{}, err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return Envelope{}, fmt.Errorf("events: marshal envelope: %w", err)
	}
	if err := p.queue.Send(ctx, string(body)); err != nil {
		return Envelope{}, fmt.Errorf("events: failed to enqueue %s: %w", env.EventType, err)
	}
	p.logger.Debug("event enqueued", "event_id", env.EventID, "event_type", env.EventType, "aggregate", env.Aggregate)
	return env, nil
}

// PublishInquirySubmitted announces a stored inquiry.
func (p *Publisher) PublishInquirySubmitted(ctx context.Context, evt InquirySubmittedV1) error {
	_, err := p.Publish(ctx, "inquiry:"+evt.InquiryID, evt.InquiryID, evt)
	return err
}
