package persistence

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/getkayan/biolock/cache"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "biolock_cache.jwt")
	return NewFileStore(path, []byte("test-secret"))
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newFileStore(t)

	entry := &cache.Entry{
		LastSuccessAt: time.UnixMilli(1_700_000_000_123),
		TTL:           30 * time.Second,
	}
	if err := store.Write(entry); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got == nil {
		t.Fatal("expected an entry")
	}
	if !got.LastSuccessAt.Equal(entry.LastSuccessAt) {
		t.Errorf("lastSuccessAt = %v, want %v", got.LastSuccessAt, entry.LastSuccessAt)
	}
	if got.TTL != entry.TTL {
		t.Errorf("ttl = %s, want %s", got.TTL, entry.TTL)
	}
}

func TestFileStoreMissingFileIsAbsence(t *testing.T) {
	store := newFileStore(t)

	got, err := store.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != nil {
		t.Errorf("missing file must read as no entry, got %+v", got)
	}
}

func TestFileStoreCorruptionIsAbsence(t *testing.T) {
	store := newFileStore(t)
	if err := os.WriteFile(store.path, []byte("not a token"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != nil {
		t.Errorf("corrupt snapshot must read as no entry, got %+v", got)
	}
}

func TestFileStoreTamperedSnapshotIsAbsence(t *testing.T) {
	store := newFileStore(t)

	entry := &cache.Entry{LastSuccessAt: time.Now(), TTL: 30 * time.Second}
	if err := store.Write(entry); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatal(err)
	}
	// Flip the payload while keeping the signature.
	parts := strings.Split(string(data), ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", data)
	}
	parts[1] = "eyJsYXMiOjk5OTk5OTk5OTk5OTksInR0bCI6OTk5OTk5fQ"
	if err := os.WriteFile(store.path, []byte(strings.Join(parts, ".")), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != nil {
		t.Errorf("tampered snapshot must read as no entry, got %+v", got)
	}
}

func TestFileStoreWrongSecretIsAbsence(t *testing.T) {
	store := newFileStore(t)

	entry := &cache.Entry{LastSuccessAt: time.Now(), TTL: 30 * time.Second}
	if err := store.Write(entry); err != nil {
		t.Fatalf("write: %v", err)
	}

	other := NewFileStore(store.path, []byte("different-secret"))
	got, err := other.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != nil {
		t.Errorf("snapshot signed with another key must read as no entry, got %+v", got)
	}
}

func TestFileStoreClear(t *testing.T) {
	store := newFileStore(t)

	entry := &cache.Entry{LastSuccessAt: time.Now(), TTL: 30 * time.Second}
	if err := store.Write(entry); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	// Clearing an already-empty store is a no-op.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != nil {
		t.Errorf("cleared store must read as no entry, got %+v", got)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	store := newFileStore(t)

	store.Write(&cache.Entry{LastSuccessAt: time.UnixMilli(1_000), TTL: 5 * time.Second})
	store.Write(&cache.Entry{LastSuccessAt: time.UnixMilli(2_000), TTL: 10 * time.Second})

	got, err := store.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got == nil || got.TTL != 10*time.Second {
		t.Errorf("entry = %+v, want the overwritten snapshot", got)
	}
}
