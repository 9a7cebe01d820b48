// Package persistence provides durable stores for the authentication cache
// snapshot: a gorm-backed single-row store for database deployments and an
// HMAC-signed file store for plain installs. Both treat corruption or
// absence identically to "no cache entry".
package persistence

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DialectorOpener builds a gorm.Dialector for a given DSN.
type DialectorOpener = func(string) gorm.Dialector

var (
	registryMu sync.RWMutex
	openers    = make(map[string]DialectorOpener)
)

func init() {
	Register("sqlite", sqlite.Open)
	Register("postgres", postgres.Open)
	Register("mysql", mysql.Open)
}

// Register adds a database opener to the registry. Later registrations with
// the same name replace earlier ones.
func Register(name string, opener DialectorOpener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	openers[name] = opener
}

// NewStore opens the database identified by dbType and dsn, migrates the
// cache table, and returns a ready store.
func NewStore(dbType, dsn string) (*Repository, error) {
	registryMu.RLock()
	opener, ok := openers[dbType]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("persistence: unknown database type %q", dbType)
	}

	db, err := gorm.Open(opener(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	repo := NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		return nil, err
	}
	return repo, nil
}
