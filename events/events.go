// Package events provides the typed publish/subscribe bus that mirrors every
// orchestrator state transition to registered observers.
//
// Events fall into four families — authentication, device, cache, and
// initialization — with one concrete struct per kind. Each struct carries a
// timestamp plus exactly its documented fields, so producing or consuming an
// event kind without its fields is a compile error rather than a runtime
// shape mismatch.
//
// # Example Usage
//
//	bus := events.NewBus()
//	bus.On(events.KindAuthSuccess, func(e events.Event) {
//	    s := e.(events.AuthSuccess)
//	    fmt.Println("authenticated in", s.Duration)
//	})
package events

import (
	"time"

	"github.com/getkayan/biolock/provider"
)

// Kind identifies an event family:name pair.
type Kind string

const (
	// Authentication events
	KindAuthStart   Kind = "authentication:start"
	KindAuthSuccess Kind = "authentication:success"
	KindAuthFailure Kind = "authentication:failure"
	KindAuthCancel  Kind = "authentication:cancel"

	// Device events
	KindDeviceAvailable   Kind = "device:available"
	KindDeviceUnavailable Kind = "device:unavailable"
	KindDeviceLockout     Kind = "device:lockout"

	// Cache events
	KindCacheCreated Kind = "cache:created"
	KindCacheUsed    Kind = "cache:used"
	KindCacheExpired Kind = "cache:expired"

	// Initialization events
	KindInitStart    Kind = "initialization:start"
	KindInitComplete Kind = "initialization:complete"
	KindInitError    Kind = "initialization:error"
)

// Kinds returns every event kind the orchestrator can emit.
func Kinds() []Kind {
	return []Kind{
		KindAuthStart, KindAuthSuccess, KindAuthFailure, KindAuthCancel,
		KindDeviceAvailable, KindDeviceUnavailable, KindDeviceLockout,
		KindCacheCreated, KindCacheUsed, KindCacheExpired,
		KindInitStart, KindInitComplete, KindInitError,
	}
}

// Event is the tagged union over all emitted payloads.
type Event interface {
	EventKind() Kind
	Timestamp() time.Time
}

// AuthStart is emitted at the beginning of every authenticate request.
type AuthStart struct {
	At        time.Time `json:"timestamp"`
	Method    string    `json:"method"`
	Reason    string    `json:"reason"`
	RequestID string    `json:"request_id"`
}

func (e AuthStart) EventKind() Kind      { return KindAuthStart }
func (e AuthStart) Timestamp() time.Time { return e.At }

// AuthSuccess is emitted when a request resolves successfully, whether by a
// fresh challenge or a cache hit.
type AuthSuccess struct {
	At        time.Time                `json:"timestamp"`
	Method    string                   `json:"method"`
	Duration  time.Duration            `json:"duration"`
	Identity  *provider.DeviceIdentity `json:"identity"`
	RequestID string                   `json:"request_id"`
}

func (e AuthSuccess) EventKind() Kind      { return KindAuthSuccess }
func (e AuthSuccess) Timestamp() time.Time { return e.At }

// AuthFailure is emitted on every unsuccessful request: unavailability,
// validation failure, or a provider error.
type AuthFailure struct {
	At        time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Error     string        `json:"error"`
	Duration  time.Duration `json:"duration"`
	RequestID string        `json:"request_id"`
}

func (e AuthFailure) EventKind() Kind      { return KindAuthFailure }
func (e AuthFailure) Timestamp() time.Time { return e.At }

// AuthCancel is emitted, in addition to AuthFailure, when the provider error
// classifies as a user cancellation.
type AuthCancel struct {
	At        time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Duration  time.Duration `json:"duration"`
	RequestID string        `json:"request_id"`
}

func (e AuthCancel) EventKind() Kind      { return KindAuthCancel }
func (e AuthCancel) Timestamp() time.Time { return e.At }

// DeviceAvailable is emitted when an availability check passes.
type DeviceAvailable struct {
	At       time.Time             `json:"timestamp"`
	Biometry provider.BiometryKind `json:"biometry"`
}

func (e DeviceAvailable) EventKind() Kind      { return KindDeviceAvailable }
func (e DeviceAvailable) Timestamp() time.Time { return e.At }

// DeviceUnavailable is emitted when an availability check fails or errors.
type DeviceUnavailable struct {
	At     time.Time `json:"timestamp"`
	Reason string    `json:"reason"`
}

func (e DeviceUnavailable) EventKind() Kind      { return KindDeviceUnavailable }
func (e DeviceUnavailable) Timestamp() time.Time { return e.At }

// DeviceLockout is emitted, in addition to AuthFailure, when the provider
// error classifies as a biometric lockout.
type DeviceLockout struct {
	At       time.Time     `json:"timestamp"`
	Duration time.Duration `json:"duration"`
	Reason   string        `json:"reason"`
}

func (e DeviceLockout) EventKind() Kind      { return KindDeviceLockout }
func (e DeviceLockout) Timestamp() time.Time { return e.At }

// CacheCreated is emitted when a successful cached-method authentication
// records a new cache entry.
type CacheCreated struct {
	At  time.Time     `json:"timestamp"`
	TTL time.Duration `json:"ttl"`
}

func (e CacheCreated) EventKind() Kind      { return KindCacheCreated }
func (e CacheCreated) Timestamp() time.Time { return e.At }

// CacheUsed is emitted when a cached-method request is satisfied without a
// fresh challenge.
type CacheUsed struct {
	At        time.Time     `json:"timestamp"`
	Remaining time.Duration `json:"remaining_ttl"`
}

func (e CacheUsed) EventKind() Kind      { return KindCacheUsed }
func (e CacheUsed) Timestamp() time.Time { return e.At }

// CacheExpired is emitted when an entry is found past its validity window,
// either at load time or on a cached-method request.
type CacheExpired struct {
	At          time.Time     `json:"timestamp"`
	OriginalTTL time.Duration `json:"original_ttl"`
}

func (e CacheExpired) EventKind() Kind      { return KindCacheExpired }
func (e CacheExpired) Timestamp() time.Time { return e.At }

// InitStart is emitted when the orchestrator begins its one-time
// initialization probe.
type InitStart struct {
	At time.Time `json:"timestamp"`
}

func (e InitStart) EventKind() Kind      { return KindInitStart }
func (e InitStart) Timestamp() time.Time { return e.At }

// InitComplete is emitted once the probe resolves without error.
type InitComplete struct {
	At       time.Time     `json:"timestamp"`
	Duration time.Duration `json:"duration"`
}

func (e InitComplete) EventKind() Kind      { return KindInitComplete }
func (e InitComplete) Timestamp() time.Time { return e.At }

// InitError is emitted when the probe itself errors; the orchestrator is
// unavailable for the rest of the process lifetime.
type InitError struct {
	At    time.Time `json:"timestamp"`
	Error string    `json:"error"`
}

func (e InitError) EventKind() Kind      { return KindInitError }
func (e InitError) Timestamp() time.Time { return e.At }
