package flow

import (
	"fmt"
	"strings"
	"time"

	"github.com/getkayan/biolock/provider"
)

// Method selects how an authenticate request may be satisfied.
type Method string

const (
	// MethodDirect always triggers a fresh biometric challenge.
	MethodDirect Method = "direct"
	// MethodCached reuses a recent successful authentication within its TTL.
	MethodCached Method = "cached"
)

const (
	DefaultReason = "Authenticate to continue"
	DefaultTTL    = 30 * time.Second
	MinTTL        = time.Second
	MaxTTL        = 5 * time.Minute
)

// Options parameterize a single authenticate request. The zero value is
// usable: defaults are applied before validation.
type Options struct {
	// Reason is the human-readable prompt text. Must be non-empty after
	// trimming when provided; defaults to DefaultReason when absent.
	Reason string
	// Method defaults to MethodDirect.
	Method Method
	// TTL bounds cache reuse for MethodCached; must lie in [MinTTL, MaxTTL].
	// Defaults to the orchestrator's configured default (DefaultTTL unless
	// overridden via SetDefaultTTL).
	TTL time.Duration
}

// withDefaults fills absent fields. A provided-but-blank reason is left
// alone so validation can reject it.
func (o Options) withDefaults(defaultTTL time.Duration) Options {
	if o.Reason == "" {
		o.Reason = DefaultReason
	}
	if o.Method == "" {
		o.Method = MethodDirect
	}
	if o.TTL == 0 {
		o.TTL = defaultTTL
	}
	return o
}

// validate rejects invalid options before any provider call.
func (o Options) validate() *provider.AuthError {
	if strings.TrimSpace(o.Reason) == "" {
		return provider.NewAuthError(provider.KindValidation, "reason must not be empty")
	}
	if o.Method != MethodDirect && o.Method != MethodCached {
		return provider.NewAuthError(provider.KindValidation,
			fmt.Sprintf("unknown authentication method %q", o.Method))
	}
	if o.TTL < MinTTL || o.TTL > MaxTTL {
		return provider.NewAuthError(provider.KindValidation,
			fmt.Sprintf("ttl %s out of range [%s, %s]", o.TTL, MinTTL, MaxTTL))
	}
	return nil
}

// Result is the structured outcome of an authenticate request. Exactly one
// of Err (on failure) or Identity (on success) is set.
type Result struct {
	Success  bool                     `json:"success"`
	Err      *provider.AuthError      `json:"error,omitempty"`
	Identity *provider.DeviceIdentity `json:"identity,omitempty"`
}
