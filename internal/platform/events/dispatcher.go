// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	// ErrNotRunning is returned by Publish before Start or after Stop.
	ErrNotRunning = errors.New("events: dispatcher not running")

	// ErrQueueFull is returned when the bounded queue cannot take another event.
	ErrQueueFull = errors.New("events: queue full")
)

const (
	defaultQueueSize = 256
	deliveryTimeout  = 5 * time.Second
)

// DispatcherConfig holds dispatcher tuning.
type DispatcherConfig struct {
	Workers   int
	QueueSize int
}

// Dispatcher delivers events to subscribers from a pool of workers.
type Dispatcher struct {
	logger      *slog.Logger
	subscribers []Subscriber
	queue       chan *Event
	workers     int
	wg          sync.WaitGroup
	done        chan struct{}
	mu          sync.RWMutex
	running     bool
}

// NewDispatcher creates a dispatcher. Non-positive sizes fall back to defaults.
func NewDispatcher(logger *slog.Logger, cfg DispatcherConfig, subscribers ...Subscriber) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		logger:      logger,
		subscribers: subscribers,
		queue:       make(chan *Event, cfg.QueueSize),
		workers:     cfg.Workers,
		done:        make(chan struct{}),
	}
}

// Start launches the worker goroutines. Calling it twice is a no-op.
func (dispatcher *Dispatcher) Start() {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()

	if dispatcher.running {
		return
	}
	dispatcher.running = true

	dispatcher.logger.Info("events_dispatcher_started",
		slog.Int("workers", dispatcher.workers),
		slog.Int("subscribers", len(dispatcher.subscribers)),
	)

	for id := range dispatcher.workers {
		dispatcher.wg.Add(1)
		go dispatcher.worker(id)
	}
}

// Stop refuses new events, delivers what is already queued and waits for
// the workers to exit.
func (dispatcher *Dispatcher) Stop() {
	dispatcher.mu.Lock()
	if !dispatcher.running {
		dispatcher.mu.Unlock()
		return
	}
	dispatcher.running = false
	close(dispatcher.done)
	dispatcher.mu.Unlock()

	dispatcher.wg.Wait()
	dispatcher.logger.Info("events_dispatcher_stopped")
}

// Publish implements Notifier. It never blocks on delivery.
func (dispatcher *Dispatcher) Publish(_ context.Context, event *Event) error {
	dispatcher.mu.RLock()
	defer dispatcher.mu.RUnlock()

	if !dispatcher.running {
		return ErrNotRunning
	}

	select {
	case dispatcher.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

func (dispatcher *Dispatcher) worker(id int) {
	defer dispatcher.wg.Done()

	for {
		select {
		case event := <-dispatcher.queue:
			dispatcher.deliver(id, event)
		case <-dispatcher.done:
			// Drain whatever was accepted before Stop.
			for {
				select {
				case event := <-dispatcher.queue:
					dispatcher.deliver(id, event)
				default:
					return
				}
			}
		}
	}
}

// deliver hands the event to every subscriber. The request that published
// it has usually finished, so delivery runs on its own context.
func (dispatcher *Dispatcher) deliver(workerID int, event *Event) {
	for _, subscriber := range dispatcher.subscribers {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		err := subscriber.Handle(ctx, event)
		cancel()

		if err != nil {
			dispatcher.logger.Error("notifier_delivery_failed",
				slog.Int("worker_id", workerID),
				slog.String("subscriber", subscriber.Name()),
				slog.String("event_type", event.Type),
				slog.Any("error", err),
			)
		}
	}
}
