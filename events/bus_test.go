package events

import (
	"testing"
	"time"
)

func emitInit(b *Bus) {
	b.Emit(InitStart{At: time.Now()})
}

func TestOnceFiresExactlyOnce(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Once(KindInitStart, func(Event) { calls++ })

	emitInit(bus)
	emitInit(bus)

	if calls != 1 {
		t.Errorf("expected once-handler to fire exactly once, fired %d times", calls)
	}
	if n := bus.ListenerCount(KindInitStart); n != 0 {
		t.Errorf("expected once-handler to be pruned, %d listeners remain", n)
	}
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	bus := NewBus()

	secondRan := false
	bus.On(KindInitStart, func(Event) { panic("observer bug") })
	bus.On(KindInitStart, func(Event) { secondRan = true })

	emitInit(bus)

	if !secondRan {
		t.Error("second handler should run even when the first panics")
	}
}

func TestEmitDispatchesToSnapshot(t *testing.T) {
	bus := NewBus()

	lateRan := false
	bus.On(KindInitStart, func(Event) {
		// Registered mid-dispatch; must not run in this pass.
		bus.On(KindInitStart, func(Event) { lateRan = true })
	})

	emitInit(bus)

	if lateRan {
		t.Error("handler added during dispatch must not be invoked in the same pass")
	}
	if n := bus.ListenerCount(KindInitStart); n != 2 {
		t.Errorf("expected 2 listeners after dispatch, got %d", n)
	}
}

func TestOnceReregisteringItselfNotReinvoked(t *testing.T) {
	bus := NewBus()

	calls := 0
	var register func()
	register = func() {
		bus.Once(KindInitStart, func(Event) {
			calls++
			register()
		})
	}
	register()

	emitInit(bus)
	if calls != 1 {
		t.Errorf("re-registered once-handler invoked %d times in one pass, want 1", calls)
	}

	emitInit(bus)
	if calls != 2 {
		t.Errorf("expected re-registered handler to fire on the next emit, got %d calls", calls)
	}
}

func TestDispatchPreservesInsertionOrder(t *testing.T) {
	bus := NewBus()

	var order []int
	for i := 0; i < 4; i++ {
		i := i
		bus.On(KindInitStart, func(Event) { order = append(order, i) })
	}

	emitInit(bus)

	for i, got := range order {
		if got != i {
			t.Fatalf("dispatch order %v, want insertion order", order)
		}
	}
}

func TestOffRemovesSpecificHandler(t *testing.T) {
	bus := NewBus()

	firstCalls, secondCalls := 0, 0
	sub := bus.On(KindInitStart, func(Event) { firstCalls++ })
	bus.On(KindInitStart, func(Event) { secondCalls++ })

	bus.Off(KindInitStart, sub)
	// Removing again, or removing nil, is a no-op.
	bus.Off(KindInitStart, sub)
	bus.Off(KindInitStart, nil)

	emitInit(bus)

	if firstCalls != 0 {
		t.Error("removed handler should not fire")
	}
	if secondCalls != 1 {
		t.Errorf("remaining handler fired %d times, want 1", secondCalls)
	}
}

func TestOffDropsEmptyKindEntry(t *testing.T) {
	bus := NewBus()

	sub := bus.On(KindCacheUsed, func(Event) {})
	bus.Off(KindCacheUsed, sub)

	if names := bus.EventNames(); len(names) != 0 {
		t.Errorf("expected empty registry, got %v", names)
	}
}

func TestOffIgnoresKindMismatch(t *testing.T) {
	bus := NewBus()

	sub := bus.On(KindInitStart, func(Event) {})
	bus.Off(KindCacheUsed, sub)

	if n := bus.ListenerCount(KindInitStart); n != 1 {
		t.Errorf("mismatched Off must be a no-op, got %d listeners", n)
	}
}

func TestRemoveAllListeners(t *testing.T) {
	bus := NewBus()

	bus.On(KindInitStart, func(Event) {})
	bus.On(KindCacheUsed, func(Event) {})
	bus.On(KindCacheUsed, func(Event) {})

	bus.RemoveAllListeners(KindCacheUsed)
	if n := bus.ListenerCount(KindCacheUsed); n != 0 {
		t.Errorf("expected cache:used cleared, got %d listeners", n)
	}
	if n := bus.ListenerCount(KindInitStart); n != 1 {
		t.Errorf("other kinds must be untouched, got %d listeners", n)
	}

	bus.RemoveAllListeners()
	if names := bus.EventNames(); len(names) != 0 {
		t.Errorf("expected all kinds cleared, got %v", names)
	}
}

func TestKindsCoversEveryFamily(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 13 {
		t.Fatalf("expected 13 event kinds, got %d", len(kinds))
	}
	seen := map[Kind]bool{}
	for _, k := range kinds {
		if seen[k] {
			t.Errorf("duplicate kind %s", k)
		}
		seen[k] = true
	}
}
