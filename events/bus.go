package events

import (
	"sync"

	"go.uber.org/zap"
)

// Handler receives a dispatched event. Handlers run synchronously inside
// Emit; a panicking handler is recovered and logged without affecting the
// emitter or the remaining handlers.
type Handler func(Event)

// Subscription identifies a registered handler so it can be removed again.
// Go functions are not comparable, so On and Once hand back a token instead.
type Subscription struct {
	kind Kind
	fn   Handler
	once bool
}

// Kind returns the event kind this subscription is registered for.
func (s *Subscription) Kind() Kind { return s.kind }

// Bus is a typed publish/subscribe registry. The zero value is not usable;
// construct with NewBus. Safe for concurrent use.
type Bus struct {
	mu   sync.Mutex
	subs map[Kind][]*Subscription
	log  *zap.Logger
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[Kind][]*Subscription),
		log:  zap.NewNop(),
	}
}

// SetLogger replaces the logger used to report panicking handlers.
func (b *Bus) SetLogger(log *zap.Logger) {
	if log == nil {
		return
	}
	b.mu.Lock()
	b.log = log
	b.mu.Unlock()
}

// On registers a persistent handler for kind. Multiple handlers per kind are
// allowed; dispatch preserves insertion order.
func (b *Bus) On(kind Kind, fn Handler) *Subscription {
	return b.subscribe(kind, fn, false)
}

// Once registers a handler that is removed after its first dispatch for kind.
func (b *Bus) Once(kind Kind, fn Handler) *Subscription {
	return b.subscribe(kind, fn, true)
}

func (b *Bus) subscribe(kind Kind, fn Handler, once bool) *Subscription {
	sub := &Subscription{kind: kind, fn: fn, once: once}
	b.mu.Lock()
	b.subs[kind] = append(b.subs[kind], sub)
	b.mu.Unlock()
	return sub
}

// Off removes a specific subscription; a no-op if it is absent or was
// registered for a different kind. The kind's registry entry is dropped
// entirely once it becomes empty.
func (b *Bus) Off(kind Kind, sub *Subscription) {
	if sub == nil || sub.kind != kind {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[kind]
	for i, s := range list {
		if s == sub {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(b.subs, kind)
	} else {
		b.subs[kind] = list
	}
}

// RemoveAllListeners clears the given kinds, or every kind when none given.
func (b *Bus) RemoveAllListeners(kinds ...Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(kinds) == 0 {
		b.subs = make(map[Kind][]*Subscription)
		return
	}
	for _, kind := range kinds {
		delete(b.subs, kind)
	}
}

// Emit dispatches the event to a snapshot of the handlers registered for its
// kind, taken before any handler runs. Handlers added or removed during the
// dispatch do not affect the current pass. Once-handlers are pruned from the
// registry before dispatch begins, so a once-handler re-registering itself
// inside its own invocation is not re-invoked in the same pass.
func (b *Bus) Emit(e Event) {
	kind := e.EventKind()

	b.mu.Lock()
	list := b.subs[kind]
	snapshot := make([]*Subscription, len(list))
	copy(snapshot, list)

	remaining := list[:0]
	for _, s := range list {
		if !s.once {
			remaining = append(remaining, s)
		}
	}
	if len(remaining) == 0 {
		delete(b.subs, kind)
	} else {
		b.subs[kind] = remaining
	}
	log := b.log
	b.mu.Unlock()

	for _, s := range snapshot {
		dispatch(log, s, e)
	}
}

func dispatch(log *zap.Logger, sub *Subscription, e Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("event handler panicked",
				zap.String("kind", string(e.EventKind())),
				zap.Any("panic", r),
			)
		}
	}()
	sub.fn(e)
}

// ListenerCount returns the number of handlers currently registered for kind.
func (b *Bus) ListenerCount(kind Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[kind])
}

// EventNames returns the kinds that currently have at least one handler.
func (b *Bus) EventNames() []Kind {
	b.mu.Lock()
	defer b.mu.Unlock()

	names := make([]Kind, 0, len(b.subs))
	for kind := range b.subs {
		names = append(names, kind)
	}
	return names
}
