package api

import (
	"sync"

	"github.com/getkayan/biolock/events"
)

// Recorder keeps a bounded ring of the most recent bus events so the
// observability API can expose them without holding up emitters.
type Recorder struct {
	mu   sync.Mutex
	buf  []RecordedEvent
	next int
	full bool
}

// RecordedEvent pairs an event with its kind for serialization.
type RecordedEvent struct {
	Kind  events.Kind  `json:"kind"`
	Event events.Event `json:"event"`
}

// NewRecorder subscribes to every event kind on the bus and retains the
// last max events, oldest first.
func NewRecorder(bus *events.Bus, max int) *Recorder {
	if max <= 0 {
		max = 100
	}
	r := &Recorder{buf: make([]RecordedEvent, max)}
	for _, kind := range events.Kinds() {
		bus.On(kind, r.record)
	}
	return r
}

func (r *Recorder) record(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.next] = RecordedEvent{Kind: e.EventKind(), Event: e}
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
		r.full = true
	}
}

// Recent returns the retained events, oldest first.
func (r *Recorder) Recent() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]RecordedEvent, r.next)
		copy(out, r.buf[:r.next])
		return out
	}
	out := make([]RecordedEvent, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	out = append(out, r.buf[:r.next]...)
	return out
}
