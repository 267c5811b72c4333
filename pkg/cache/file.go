package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps resolved profiles on disk for the CLI, one JSON document
// per key. Profiles are stored inline so a cached entry can be read with any
// JSON tool; anything else is kept base64-encoded.
type FileCache struct {
	dir string
}

// NewFileCache opens the profile store rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create profile cache %s: %w", dir, err)
	}
	return &FileCache{dir: dir}, nil
}

// storedProfile is the on-disk form of one entry. Key is kept so a file
// found under the wrong name is never served.
type storedProfile struct {
	Key      string          `json:"key"`
	Profile  json.RawMessage `json:"profile,omitempty"`
	Raw      []byte          `json:"raw,omitempty"`
	StoredAt time.Time       `json:"stored_at"`
	Expires  time.Time       `json:"expires_at,omitzero"`
}

func (e storedProfile) payload() []byte {
	if e.Profile != nil {
		return e.Profile
	}
	return e.Raw
}

// Get returns the profile stored under key. Expired, unreadable and
// mismatched files count as misses and are removed.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e storedProfile
	if err := json.Unmarshal(data, &e); err != nil || e.Key != key {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !e.Expires.IsZero() && time.Now().After(e.Expires) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.payload(), true, nil
}

// Set stores data under key. The file is written to a temporary name and
// renamed, so concurrent readers see either the old entry or the new one.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := storedProfile{Key: key, StoredAt: time.Now().UTC()}
	if json.Valid(data) {
		e.Profile = data
	} else {
		e.Raw = data
	}
	if ttl > 0 {
		e.Expires = e.StoredAt.Add(ttl)
	}
	out, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode cached profile: %w", err)
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".profile-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Delete drops the profile stored under key.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Dir returns the root of the profile store.
func (c *FileCache) Dir() string { return c.dir }

// Clear drops every cached profile and leaves an empty store behind.
func (c *FileCache) Clear(ctx context.Context) error {
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("clear profile cache: %w", err)
	}
	return os.MkdirAll(c.dir, 0755)
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

// path shards entries by the first byte of the key hash.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h+".json")
}

var (
	_ Cache   = (*FileCache)(nil)
	_ Clearer = (*FileCache)(nil)
)
