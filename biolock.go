// Package biolock exposes local biometric authentication (Touch ID / Face ID
// class) through a narrow, observable API: availability checks,
// authentication with optional TTL-bounded reuse of a recent success, and a
// typed event feed describing every lifecycle, device, and cache transition.
//
// The platform biometric challenge itself is delegated to a
// provider.Provider implementation supplied by the caller.
package biolock

import (
	"gorm.io/gorm"

	"github.com/getkayan/biolock/cache"
	"github.com/getkayan/biolock/events"
	"github.com/getkayan/biolock/flow"
	"github.com/getkayan/biolock/persistence"
	"github.com/getkayan/biolock/provider"
)

// Convenience aliases for the most common call-site types.
type (
	Options        = flow.Options
	Result         = flow.Result
	DeviceIdentity = provider.DeviceIdentity
)

const (
	MethodDirect = flow.MethodDirect
	MethodCached = flow.MethodCached
)

// NewOrchestrator wires an orchestrator around any cache store.
func NewOrchestrator(p provider.Provider, store cache.Store) *flow.Orchestrator {
	c := cache.New(cache.SystemClock(), store)
	return flow.NewOrchestrator(p, c, events.NewBus())
}

// NewDefaultOrchestrator persists the cache snapshot in the given database.
func NewDefaultOrchestrator(db *gorm.DB, p provider.Provider) (*flow.Orchestrator, error) {
	repo := persistence.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		return nil, err
	}
	return NewOrchestrator(p, repo), nil
}

// NewFileOrchestrator persists the cache snapshot as a signed file.
func NewFileOrchestrator(path string, secret []byte, p provider.Provider) *flow.Orchestrator {
	return NewOrchestrator(p, persistence.NewFileStore(path, secret))
}
