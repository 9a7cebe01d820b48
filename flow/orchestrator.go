// Package flow contains the authentication orchestrator: the only component
// callers address directly. It sequences initialization, availability
// queries, and authenticate requests, consults the TTL cache, delegates the
// actual challenge to the biometric provider, and mirrors every state
// transition onto the event bus.
package flow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/getkayan/biolock/cache"
	"github.com/getkayan/biolock/events"
	"github.com/getkayan/biolock/provider"
)

// State is the orchestrator lifecycle state. Ready and Unavailable are
// terminal for the process; there is no re-initialization.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitializing  State = "initializing"
	StateReady         State = "ready"
	StateUnavailable   State = "unavailable"
)

const notAvailableMsg = "biometry not available"

// Orchestrator coordinates the biometric provider, the authentication cache,
// and the event bus. Construct with NewOrchestrator; safe for concurrent use.
// Unavailability established during initialization is sticky; a transient
// provider error on a later request is not — the next request retries fresh.
type Orchestrator struct {
	provider   provider.Provider
	cache      *cache.Cache
	bus        *events.Bus
	clock      cache.Clock
	log        *zap.Logger
	defaultTTL time.Duration

	initOnce sync.Once

	mu    sync.Mutex
	state State
}

func NewOrchestrator(p provider.Provider, c *cache.Cache, b *events.Bus) *Orchestrator {
	return &Orchestrator{
		provider:   p,
		cache:      c,
		bus:        b,
		clock:      cache.SystemClock(),
		log:        zap.NewNop(),
		defaultTTL: DefaultTTL,
		state:      StateUninitialized,
	}
}

// SetClock replaces the clock; call before the first request.
func (o *Orchestrator) SetClock(clock cache.Clock) { o.clock = clock }

// SetDefaultTTL replaces the TTL applied to requests that do not specify
// one; call before the first request. Out-of-range values are rejected at
// validation time like any caller-supplied TTL.
func (o *Orchestrator) SetDefaultTTL(ttl time.Duration) {
	if ttl > 0 {
		o.defaultTTL = ttl
	}
}

// SetLogger replaces the logger; call before the first request.
func (o *Orchestrator) SetLogger(log *zap.Logger) {
	if log != nil {
		o.log = log
	}
}

// Bus returns the event bus transitions are mirrored onto.
func (o *Orchestrator) Bus() *events.Bus { return o.bus }

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// ensureInit runs the one-time initialization probe. Every concurrent first
// caller blocks inside the same Do until the probe resolves, so all of them
// observe the same terminal state and none a partially initialized provider.
func (o *Orchestrator) ensureInit() State {
	o.initOnce.Do(o.initialize)
	return o.State()
}

func (o *Orchestrator) initialize() {
	start := o.clock.Now()
	o.setState(StateInitializing)
	o.bus.Emit(events.InitStart{At: start})

	if res, err := o.cache.Load(); err != nil {
		o.log.Warn("cache snapshot unreadable, starting empty", zap.Error(err))
	} else if res.Expired {
		o.bus.Emit(events.CacheExpired{At: o.clock.Now(), OriginalTTL: res.OriginalTTL})
	}

	ok, err := o.provider.CheckAvailability(context.Background())
	if err != nil {
		o.setState(StateUnavailable)
		o.log.Warn("initialization probe failed", zap.Error(err))
		o.bus.Emit(events.InitError{At: o.clock.Now(), Error: err.Error()})
		return
	}

	now := o.clock.Now()
	if !ok {
		o.setState(StateUnavailable)
		o.bus.Emit(events.InitComplete{At: now, Duration: now.Sub(start)})
		o.bus.Emit(events.DeviceUnavailable{At: now, Reason: notAvailableMsg})
		return
	}

	o.setState(StateReady)
	o.bus.Emit(events.InitComplete{At: now, Duration: now.Sub(start)})
}

// IsAvailable reports whether biometric authentication can be used right
// now. Never returns an error: provider errors are mapped to a
// device:unavailable event with the error's message as reason.
func (o *Orchestrator) IsAvailable(ctx context.Context) bool {
	if o.ensureInit() == StateUnavailable {
		o.bus.Emit(events.DeviceUnavailable{At: o.clock.Now(), Reason: notAvailableMsg})
		return false
	}

	ok, err := o.provider.CheckAvailability(ctx)
	if err != nil {
		o.bus.Emit(events.DeviceUnavailable{At: o.clock.Now(), Reason: err.Error()})
		return false
	}
	if !ok {
		o.bus.Emit(events.DeviceUnavailable{At: o.clock.Now(), Reason: notAvailableMsg})
		return false
	}

	biometry := provider.BiometryNone
	if ident, err := o.provider.DeviceIdentity(ctx); err == nil {
		biometry = ident.Biometry
	}
	o.bus.Emit(events.DeviceAvailable{At: o.clock.Now(), Biometry: biometry})
	return true
}

// Authenticate runs one request through the state machine. It always
// returns a structured result; a failed request never partially updates the
// cache, and every outcome is mirrored as events.
func (o *Orchestrator) Authenticate(ctx context.Context, opts Options) Result {
	start := o.clock.Now()
	requestID := uuid.NewString()
	opts = opts.withDefaults(o.defaultTTL)

	o.bus.Emit(events.AuthStart{
		At:        start,
		Method:    string(opts.Method),
		Reason:    opts.Reason,
		RequestID: requestID,
	})

	if o.ensureInit() == StateUnavailable {
		return o.fail(start, requestID, opts,
			provider.NewAuthError(provider.KindNotAvailable, notAvailableMsg))
	}

	if authErr := opts.validate(); authErr != nil {
		return o.fail(start, requestID, opts, authErr)
	}

	if opts.Method == MethodCached {
		decision := o.cache.Check()
		if decision.Hit {
			o.bus.Emit(events.CacheUsed{At: o.clock.Now(), Remaining: decision.Remaining})
			// The cache stores validity, not a duplicate identity; the
			// snapshot is fetched fresh on every hit.
			ident, err := o.provider.DeviceIdentity(ctx)
			if err != nil {
				return o.fail(start, requestID, opts, provider.Classify(err))
			}
			return o.succeed(start, requestID, opts, ident)
		}
		if decision.Expired {
			o.bus.Emit(events.CacheExpired{At: o.clock.Now(), OriginalTTL: decision.OriginalTTL})
		}
	}

	ident, err := o.provider.Challenge(ctx, opts.Reason, opts.TTL)
	if err != nil {
		authErr := provider.Classify(err)
		now := o.clock.Now()
		switch authErr.Kind {
		case provider.KindUserCancel:
			o.bus.Emit(events.AuthCancel{
				At:        now,
				Method:    string(opts.Method),
				Duration:  now.Sub(start),
				RequestID: requestID,
			})
		case provider.KindLockout:
			o.bus.Emit(events.DeviceLockout{
				At:       now,
				Duration: now.Sub(start),
				Reason:   authErr.Message,
			})
		}
		return o.fail(start, requestID, opts, authErr)
	}

	if opts.Method == MethodCached {
		if err := o.cache.Record(opts.TTL); err != nil {
			o.log.Warn("failed to persist authentication cache", zap.Error(err))
		}
		o.bus.Emit(events.CacheCreated{At: o.clock.Now(), TTL: opts.TTL})
	}
	return o.succeed(start, requestID, opts, ident)
}

func (o *Orchestrator) succeed(start time.Time, requestID string, opts Options, ident *provider.DeviceIdentity) Result {
	now := o.clock.Now()
	o.bus.Emit(events.AuthSuccess{
		At:        now,
		Method:    string(opts.Method),
		Duration:  now.Sub(start),
		Identity:  ident,
		RequestID: requestID,
	})
	return Result{Success: true, Identity: ident}
}

func (o *Orchestrator) fail(start time.Time, requestID string, opts Options, authErr *provider.AuthError) Result {
	now := o.clock.Now()
	o.log.Debug("authentication failed",
		zap.String("request_id", requestID),
		zap.String("kind", string(authErr.Kind)),
		zap.String("error", authErr.Message),
	)
	o.bus.Emit(events.AuthFailure{
		At:        now,
		Method:    string(opts.Method),
		Error:     authErr.Message,
		Duration:  now.Sub(start),
		RequestID: requestID,
	})
	return Result{Err: authErr}
}

// Test is a smoke-test convenience: it checks availability, runs one direct
// authentication, and terminates the process on any failure. Not intended
// for production call sites.
func (o *Orchestrator) Test(ctx context.Context) {
	if !o.IsAvailable(ctx) {
		o.log.Fatal("biometric authentication is not available on this device")
	}
	res := o.Authenticate(ctx, Options{Reason: DefaultReason})
	if !res.Success {
		o.log.Fatal("biometric smoke test failed", zap.String("error", res.Err.Message))
	}
	o.log.Info("biometric smoke test passed",
		zap.String("biometry", string(res.Identity.Biometry)),
		zap.String("model", res.Identity.Model),
	)
}
