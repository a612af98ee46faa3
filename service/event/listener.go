package event

import (
	"context"
	"errors"
	"sync"
)

// Listener dispatches events consumed from a publisher to a handler on a
// dedicated goroutine.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	onError   func(error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewListener creates a listener; onError may be nil.
func NewListener[T any](publisher *Publisher[T], handler func(*Event[T]), onError func(error)) *Listener[T] {
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		onError:   onError,
	}
}

// Start begins dispatching until ctx is done or Stop is called. Calling
// Start on a running listener is a no-op.
func (l *Listener[T]) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}
	ctx, l.cancel = context.WithCancel(ctx)
	l.done = make(chan struct{})
	go l.run(ctx, l.done)
}

func (l *Listener[T]) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		event, err := l.publisher.Consume(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if l.onError != nil && !errors.Is(err, context.Canceled) {
				l.onError(err)
			}
			continue
		}
		if event != nil {
			l.handler(event)
		}
	}
}

// Stop cancels dispatching and waits for the dispatch goroutine to exit.
func (l *Listener[T]) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
