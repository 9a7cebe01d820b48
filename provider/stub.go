package provider

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Stub is a scriptable in-memory provider for tests, non-capable
// environments, and the smoke CLI.
type Stub struct {
	Available       bool
	AvailabilityErr error
	ChallengeErr    error
	IdentityErr     error
	Identity        DeviceIdentity

	// ChallengeDelay simulates the user taking time to respond.
	ChallengeDelay time.Duration
}

// NewDemoStub returns a stub that behaves like an enrolled Touch ID device.
func NewDemoStub() *Stub {
	return &Stub{
		Available: true,
		Identity: DeviceIdentity{
			Biometry:      BiometryTouchID,
			HardwareUUID:  uuid.NewString(),
			Serial:        "STUB0000DEMO",
			Model:         "BioLockStub1,1",
			SystemVersion: "1.0",
		},
	}
}

// Unsupported returns a stub for environments without biometric hardware:
// availability is false and every challenge declines.
func Unsupported() *Stub {
	return &Stub{
		Available:    false,
		ChallengeErr: ErrDeclined,
		Identity:     DeviceIdentity{Biometry: BiometryUnsupported},
	}
}

func (s *Stub) CheckAvailability(ctx context.Context) (bool, error) {
	if s.AvailabilityErr != nil {
		return false, s.AvailabilityErr
	}
	return s.Available, nil
}

func (s *Stub) Challenge(ctx context.Context, reason string, ttlHint time.Duration) (*DeviceIdentity, error) {
	if s.ChallengeDelay > 0 {
		select {
		case <-time.After(s.ChallengeDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.ChallengeErr != nil {
		return nil, s.ChallengeErr
	}
	ident := s.Identity
	return &ident, nil
}

func (s *Stub) DeviceIdentity(ctx context.Context) (*DeviceIdentity, error) {
	if s.IdentityErr != nil {
		return nil, s.IdentityErr
	}
	ident := s.Identity
	return &ident, nil
}
