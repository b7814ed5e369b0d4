package analytics

import (
	"sync"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/pkg/metrics"
)

const defaultCapacity = 1000

// DataLayer is the process-wide push-only event queue the external tag drains.
// It holds at most capacity events; when full the oldest event is dropped.
type DataLayer struct {
	mu       sync.Mutex
	events   []domain.TagEvent
	capacity int
	forward  func(domain.TagEvent)
}

// NewDataLayer returns an empty queue. capacity <= 0 selects the default.
func NewDataLayer(capacity int) *DataLayer {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &DataLayer{capacity: capacity}
}

// OnPush registers fn to receive a copy of every pushed event, e.g. to
// forward it to a collector. fn runs on the pushing goroutine and must not block.
func (d *DataLayer) OnPush(fn func(domain.TagEvent)) {
	d.mu.Lock()
	d.forward = fn
	d.mu.Unlock()
}

// Push appends an event.
func (d *DataLayer) Push(e domain.TagEvent) {
	d.mu.Lock()
	if len(d.events) >= d.capacity {
		d.events = d.events[1:]
		metrics.EventsDroppedTotal.Inc()
	}
	d.events = append(d.events, e)
	fwd := d.forward
	d.mu.Unlock()

	metrics.EventsEmittedTotal.WithLabelValues(e.Name).Inc()
	if fwd != nil {
		fwd(e)
	}
}

// Drain removes and returns every queued event in push order.
func (d *DataLayer) Drain() []domain.TagEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.events
	d.events = nil
	if out == nil {
		out = []domain.TagEvent{}
	}
	return out
}

// Snapshot returns the queued events without removing them.
func (d *DataLayer) Snapshot() []domain.TagEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.TagEvent, len(d.events))
	copy(out, d.events)
	return out
}

func (d *DataLayer) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.events)
}
