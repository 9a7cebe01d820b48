package persistence

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/getkayan/biolock/cache"
)

// snapshotRowID pins the cache snapshot to a single row: at most one
// orchestrator instance per process owns the persisted entry.
const snapshotRowID = 1

// CacheRecord is the database row for the persisted cache entry.
type CacheRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	LastSuccessAt int64     `json:"last_success_at"` // unix milliseconds
	TTLMillis     int64     `json:"ttl_millis"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (CacheRecord) TableName() string { return "auth_cache" }

// Repository is a gorm-backed cache.Store over a single snapshot row.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying handle for callers that share the connection.
func (r *Repository) DB() *gorm.DB { return r.db }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&CacheRecord{})
}

func (r *Repository) Read() (*cache.Entry, error) {
	var rec CacheRecord
	err := r.db.First(&rec, "id = ?", snapshotRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cache.Entry{
		LastSuccessAt: time.UnixMilli(rec.LastSuccessAt),
		TTL:           time.Duration(rec.TTLMillis) * time.Millisecond,
	}, nil
}

func (r *Repository) Write(entry *cache.Entry) error {
	rec := CacheRecord{
		ID:            snapshotRowID,
		LastSuccessAt: entry.LastSuccessAt.UnixMilli(),
		TTLMillis:     entry.TTL.Milliseconds(),
	}
	return r.db.Save(&rec).Error
}

func (r *Repository) Clear() error {
	return r.db.Delete(&CacheRecord{}, "id = ?", snapshotRowID).Error
}
