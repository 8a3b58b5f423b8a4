package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultVisibilityTimeout matches the SQS default.
const DefaultVisibilityTimeout = 30 * time.Second

// MemoryQueue is a Queue backed by an in-memory buffered channel. Like SQS,
// a received message stays in flight until it is deleted; if the visibility
// timeout lapses first it is put back on the queue under a new receipt handle.
type MemoryQueue struct {
	ch         chan Message
	visibility time.Duration

	mu       sync.Mutex
	inFlight map[string]*inFlightMessage
}

type inFlightMessage struct {
	msg   Message
	timer *time.Timer
}

// MemoryQueueOption configures a MemoryQueue.
type MemoryQueueOption func(*MemoryQueue)

// WithVisibilityTimeout sets how long a received message stays hidden.
func WithVisibilityTimeout(d time.Duration) MemoryQueueOption {
	return func(q *MemoryQueue) {
		if d > 0 {
			q.visibility = d
		}
	}
}

// NewMemoryQueue creates a MemoryQueue with the provided buffer capacity.
func NewMemoryQueue(buffer int, opts ...MemoryQueueOption) *MemoryQueue {
	if buffer <= 0 {
		buffer = 128
	}
	q := &MemoryQueue{
		ch:         make(chan Message, buffer),
		visibility: DefaultVisibilityTimeout,
		inFlight:   make(map[string]*inFlightMessage),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}

// Send enqueues a payload or blocks until ctx is done.
func (q *MemoryQueue) Send(ctx context.Context, body string) error {
	msg := Message{
		ID:            uuid.NewString(),
		Body:          body,
		ReceiptHandle: uuid.NewString(),
	}

	select {
	case q.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive blocks until a message is available, ctx is done, or waitSeconds elapses.
func (q *MemoryQueue) Receive(ctx context.Context, maxMessages int, waitSeconds int) ([]Message, error) {
	if maxMessages <= 0 {
		maxMessages = 1
	}

	var timeout <-chan time.Time
	if waitSeconds > 0 {
		timer := time.NewTimer(time.Duration(waitSeconds) * time.Second)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timeout:
		return nil, nil
	case msg := <-q.ch:
		messages := q.collect(ctx, msg, maxMessages)
		for _, m := range messages {
			q.hide(m)
		}
		return messages, nil
	}
}

// Delete acknowledges a received message. Unknown handles are ignored.
func (q *MemoryQueue) Delete(_ context.Context, receiptHandle string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if f, ok := q.inFlight[receiptHandle]; ok {
		f.timer.Stop()
		delete(q.inFlight, receiptHandle)
	}
	return nil
}

// InFlight reports how many received messages await deletion.
func (q *MemoryQueue) InFlight() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.inFlight)
}

func (q *MemoryQueue) hide(msg Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	handle := msg.ReceiptHandle
	q.inFlight[handle] = &inFlightMessage{
		msg:   msg,
		timer: time.AfterFunc(q.visibility, func() { q.expire(handle) }),
	}
}

// expire returns an unacknowledged message to the queue. A full buffer
// postpones the redelivery by another visibility period.
func (q *MemoryQueue) expire(handle string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	f, ok := q.inFlight[handle]
	if !ok {
		return
	}
	redelivered := f.msg
	redelivered.ReceiptHandle = uuid.NewString()
	select {
	case q.ch <- redelivered:
		delete(q.inFlight, handle)
	default:
		f.timer.Reset(q.visibility)
	}
}

// Len reports how many messages are waiting to be received.
func (q *MemoryQueue) Len() int {
	return len(q.ch)
}

func (q *MemoryQueue) collect(ctx context.Context, first Message, max int) []Message {
	messages := make([]Message, 0, max)
	messages = append(messages, first)

	for len(messages) < max {
		select {
		case <-ctx.Done():
			return messages
		case msg := <-q.ch:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
	return messages
}
