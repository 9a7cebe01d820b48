package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/getkayan/biolock/cache"
)

// FileStore persists the cache entry as an HMAC-SHA256 signed token in a
// single file, making the snapshot tamper-evident across restarts. A
// missing, unparsable, or signature-invalid file reads as "no entry".
type FileStore struct {
	path   string
	secret []byte
}

func NewFileStore(path string, secret []byte) *FileStore {
	return &FileStore{path: path, secret: secret}
}

func (s *FileStore) Read() (*cache.Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(string(data), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		// Corrupt or tampered snapshot; same as no entry.
		return nil, nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil
	}
	las, ok := claims["las"].(float64)
	if !ok {
		return nil, nil
	}
	ttl, ok := claims["ttl"].(float64)
	if !ok {
		return nil, nil
	}

	return &cache.Entry{
		LastSuccessAt: time.UnixMilli(int64(las)),
		TTL:           time.Duration(int64(ttl)) * time.Millisecond,
	}, nil
}

func (s *FileStore) Write(entry *cache.Entry) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"las": entry.LastSuccessAt.UnixMilli(),
		"ttl": entry.TTL.Milliseconds(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return err
	}

	// Write-then-rename so a crash mid-write never leaves a torn snapshot.
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, []byte(signed), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
