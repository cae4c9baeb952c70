package eventlog

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

var (
	ErrBufferFull = errors.New("event log buffer is full")
	ErrStopped    = errors.New("event log stopped")
)

// Dispatcher hands records to a Sink on a single background goroutine so
// request handlers never wait on slow writes.
type Dispatcher struct {
	sink    Sink
	items   chan Record
	stop    chan struct{}
	done    chan struct{}
	timeout time.Duration
	logger  *log.Logger

	started atomic.Bool

	// mu orders Add against Stop so nothing accepted is left behind
	// once the worker drains.
	mu      sync.RWMutex
	stopped bool
}

func NewDispatcher(sink Sink, buffer int, logger *log.Logger) *Dispatcher {
	if buffer <= 0 {
		buffer = 100
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "eventlog"})
	}
	return &Dispatcher{
		sink:    sink,
		items:   make(chan Record, buffer),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		timeout: 10 * time.Second,
		logger:  logger,
	}
}

func (d *Dispatcher) Start() {
	if d.started.Swap(true) {
		return
	}
	go d.processLoop()
}

// Stop flushes buffered records and waits for the worker, or for ctx.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.stop)
	}
	d.mu.Unlock()
	if !d.started.Load() {
		return nil
	}
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Add queues rec without blocking.
func (d *Dispatcher) Add(rec Record) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}
	select {
	case d.items <- rec:
		return nil
	default:
		return ErrBufferFull
	}
}

func (d *Dispatcher) processLoop() {
	defer close(d.done)
	d.logger.Debug("event log started")
	for {
		select {
		case <-d.stop:
			d.drain()
			d.logger.Debug("event log stopped")
			return
		case rec := <-d.items:
			d.write(rec)
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case rec := <-d.items:
			d.write(rec)
		default:
			return
		}
	}
}

func (d *Dispatcher) write(rec Record) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.sink.Write(ctx, rec); err != nil {
		d.logger.Warn("failed writing event", "id", rec.ID, "kind", rec.Kind, "group", rec.Group, "error", err)
	}
}
