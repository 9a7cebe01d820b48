// Package provider defines the Biometric Provider capability consumed by the
// orchestrator: the platform-specific code that performs the actual biometric
// challenge and device-identity lookup. The core only ever talks to this
// interface; real implementations (LocalAuthentication on darwin, Windows
// Hello, ...) live outside this module.
package provider

import (
	"context"
	"errors"
	"time"
)

// ErrDeclined is returned by a provider when the user dismissed the prompt.
var ErrDeclined = errors.New("user declined the biometric prompt")

// BiometryKind identifies the biometric hardware class of the device.
type BiometryKind string

const (
	BiometryTouchID     BiometryKind = "touch_id"
	BiometryFaceID      BiometryKind = "face_id"
	BiometryNone        BiometryKind = "none"
	BiometryUnsupported BiometryKind = "unsupported"
)

// DeviceIdentity is an opaque identity snapshot returned by a successful
// challenge. Immutable once produced; owned by the caller after return.
type DeviceIdentity struct {
	Biometry      BiometryKind `json:"biometry"`
	HardwareUUID  string       `json:"hardware_uuid"`
	Serial        string       `json:"serial"`
	Model         string       `json:"model"`
	SystemVersion string       `json:"system_version"`
}

// Provider is the consumed biometric capability.
//
// Challenge suspends until the platform returns success, decline, or error —
// possibly indefinitely until the user interacts — so callers needing bounded
// latency must apply their own timeout via ctx.
type Provider interface {
	// CheckAvailability reports whether a biometric challenge can be
	// presented on this device.
	CheckAvailability(ctx context.Context) (bool, error)

	// Challenge presents the biometric prompt with the given reason and
	// returns the device identity on success. ttlHint is advisory only.
	Challenge(ctx context.Context, reason string, ttlHint time.Duration) (*DeviceIdentity, error)

	// DeviceIdentity returns the current identity snapshot without
	// prompting.
	DeviceIdentity(ctx context.Context) (*DeviceIdentity, error)
}
