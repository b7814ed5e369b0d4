package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
	"github.com/tagdemo/storefront/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	collectTimeout = 5 * time.Second
)

// Dispatcher forwards data layer events to a collector over a fixed set of
// workers, hashing on the user id so each shopper's events stay ordered.
type Dispatcher struct {
	workers   []chan domain.TagEvent
	collector ports.Collector
	log       zerolog.Logger
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, collector ports.Collector, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.TagEvent, numWorkers),
		collector: collector,
		log:       log.With().Str("component", "dispatcher").Str("collector", collector.Name()).Logger(),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.TagEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit when ctx is cancelled or
// after draining their channel once Stop is called.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its user. It never
// blocks: when the worker is saturated the event is dropped and counted.
func (d *Dispatcher) Enqueue(event domain.TagEvent) {
	idx := d.shardIndex(event.UserID)
	select {
	case d.workers[idx] <- event:
		metrics.ForwardQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.EventsForwardErrorsTotal.WithLabelValues(d.collector.Name()).Inc()
		d.log.Warn().Str("event", event.Name).Int("worker_id", idx).Msg("forward queue full, event dropped")
	}
}

// Stop closes the worker channels and waits for queued events to be delivered.
// Enqueue must not be called after Stop.
func (d *Dispatcher) Stop() {
	d.closeOnce.Do(func() {
		for _, ch := range d.workers {
			close(ch)
		}
	})
	d.wg.Wait()
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.TagEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.ForwardQueueDepth.WithLabelValues(label).Dec()
			d.deliver(ctx, id, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, event domain.TagEvent) {
	name := d.collector.Name()
	ctx, cancel := context.WithTimeout(ctx, collectTimeout)
	defer cancel()

	start := time.Now()
	err := d.collector.Collect(ctx, event)
	metrics.ForwardDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EventsForwardErrorsTotal.WithLabelValues(name).Inc()
		d.log.Error().Err(err).
			Str("event", event.Name).
			Int("worker_id", workerID).
			Msg("event forwarding failed")
		return
	}
	metrics.EventsForwardedTotal.WithLabelValues(name).Inc()
}
