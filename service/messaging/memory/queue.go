package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/viant/taskmgr/internal/idgen"
	"github.com/viant/taskmgr/service/messaging"
)

// ErrProcessed is returned when a message is acknowledged twice.
var ErrProcessed = errors.New("message already processed")

// Config for memory queue implementation
type Config struct {
	MaxRetries  int           `json:"maxRetries,omitempty" yaml:"maxRetries,omitempty"`
	DeadLetter  bool          `json:"deadLetter,omitempty" yaml:"deadLetter,omitempty"`
	QueueBuffer int           `json:"buffer,omitempty" yaml:"buffer,omitempty"`
	RetryDelay  time.Duration `json:"retryDelay,omitempty" yaml:"retryDelay,omitempty"`
}

// DefaultConfig returns a standard configuration for memory queue
func DefaultConfig() Config {
	return Config{
		MaxRetries:  3,
		DeadLetter:  true,
		QueueBuffer: 100,
	}
}

// Message implements messaging.Message for the in-memory queue
type Message[T any] struct {
	id         string
	payload    T
	queue      *Queue[T]
	retryCount int
	mu         sync.Mutex
	processed  bool
}

// ID returns the message id
func (m *Message[T]) ID() string {
	return m.id
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return ErrProcessed
	}
	m.processed = true
	return nil
}

// Nack marks the message as failed; it is requeued while under the retry
// limit, then moved to the dead letter list when enabled.
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	if m.processed {
		m.mu.Unlock()
		return ErrProcessed
	}
	m.processed = true
	retryCount := m.retryCount + 1
	m.mu.Unlock()

	q := m.queue
	if retryCount <= q.config.MaxRetries {
		retry := &Message[T]{id: m.id, payload: m.payload, queue: q, retryCount: retryCount}
		go func() {
			if q.config.RetryDelay > 0 {
				time.Sleep(q.config.RetryDelay)
			}
			select {
			case q.messages <- retry:
			default:
				q.deadLetter(retry)
			}
		}()
		return nil
	}
	q.deadLetter(m)
	return nil
}

// Queue implements an in-memory messaging.Queue
type Queue[T any] struct {
	messages chan *Message[T]
	config   Config
	dlqMu    sync.Mutex
	dlq      []*Message[T]
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		config:   config,
	}
}

// Publish adds a new item to the queue, waiting for buffer space until ctx is done
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := &Message[T]{id: idgen.New(), payload: *t, queue: q}
	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves a single item from the queue
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size returns the current number of messages in the queue
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// DLQSize returns the number of messages in the dead letter queue
func (q *Queue[T]) DLQSize() int {
	q.dlqMu.Lock()
	defer q.dlqMu.Unlock()
	return len(q.dlq)
}

func (q *Queue[T]) deadLetter(m *Message[T]) {
	if !q.config.DeadLetter {
		return
	}
	q.dlqMu.Lock()
	q.dlq = append(q.dlq, m)
	q.dlqMu.Unlock()
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
