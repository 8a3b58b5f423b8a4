package events

import (
	"context"
	"errors"
	"testing"

	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

type stubQueue struct {
	sent []string
	err  error
}

func (s *stubQueue) Send(ctx context.Context, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, body)
	return nil
}

func (s *stubQueue) Receive(ctx context.Context, maxMessages int, waitSeconds int) ([]Message, error) {
	return nil, context.Canceled
}

func (s *stubQueue) Delete(ctx context.Context, receiptHandle string) error {
	return nil
}

func TestPublisher_PublishInquirySubmitted(t *testing.T) {
	queue := &stubQueue{}
	publisher := NewPublisher(queue, logging.Default())

	if err := publisher.PublishInquirySubmitted(context.Background(), sampleInquiryEvent()); err != nil {
		t.Fatalf("publish returned error: %v", err)
	}
	if len(queue.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(queue.sent))
	}

	env, err := DecodeEnvelope(queue.sent[0])
	if err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if env.Aggregate != "inquiry:inq-1" || env.CorrelationID != "inq-1" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestPublisher_SendFailure(t *testing.T) {
	publisher := NewPublisher(&stubQueue{err: errors.New("queue down")}, nil)
	if err := publisher.PublishInquirySubmitted(context.Background(), sampleInquiryEvent()); err == nil {
		t.Fatal("expected error")
	}
}
