// Package stream provides live query results: a subscriber receives the
// current result immediately and again after every matching change
// published on the hub, until it cancels or the query fails.
package stream

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/hub"
	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/metrics"
)

// Query produces the current result of a stream
type Query[T any] func(ctx context.Context) (T, error)

// Stream is a re-runnable query bound to the change events that invalidate it
type Stream[T any] struct {
	hub    *hub.Hub
	query  Query[T]
	filter func(hub.Event) bool
}

// New creates a Stream re-running query on every hub event accepted by filter
func New[T any](h *hub.Hub, query Query[T], filter func(hub.Event) bool) *Stream[T] {
	return &Stream[T]{
		hub:    h,
		query:  query,
		filter: filter,
	}
}

// Subscribe runs the query, passes the result to fn before returning, then
// keeps calling fn with fresh results after each matching change. An error
// from the first query is returned and no subscription is created. Calls to
// fn for one subscription never overlap.
func (s *Stream[T]) Subscribe(ctx context.Context, fn func(T)) (*Subscription, error) {
	// Register before the first query so a change committed in between is not lost.
	client := s.hub.Subscribe(s.filter)

	initial, err := s.run(ctx)
	if err != nil {
		s.hub.Unsubscribe(client)
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		id:     client.ID(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	fn(initial)

	go func() {
		defer close(sub.done)
		defer s.hub.Unsubscribe(client)

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-client.Events():
				if !ok {
					return
				}
			}

			value, err := s.run(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.WithFields(log.Fields{"subscription": sub.id, "err": err}).
					Warn("live stream query failed, terminating subscription")
				sub.setErr(err)
				return
			}
			fn(value)
		}
	}()

	return sub, nil
}

func (s *Stream[T]) run(ctx context.Context) (T, error) {
	value, err := s.query(ctx)
	if err != nil {
		metrics.StreamQueriesTotal.WithLabelValues(metrics.Fail).Inc()
		return value, err
	}
	metrics.StreamQueriesTotal.WithLabelValues(metrics.Ok).Inc()
	return value, nil
}

// Subscription is a handle on an active Stream subscription
type Subscription struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// ID returns the subscription's unique identifier
func (s *Subscription) ID() string {
	return s.id
}

// Cancel stops the subscription. It does not wait; use Wait or Done for that.
// Safe to call from within the subscriber callback.
func (s *Subscription) Cancel() {
	s.cancel()
}

// Done is closed once the subscription has stopped and fn will not be called again
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Err returns the query error which terminated the subscription, or nil if
// it is still running or was cancelled.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Wait blocks until the subscription stops and returns Err
func (s *Subscription) Wait() error {
	<-s.done
	return s.Err()
}

func (s *Subscription) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
