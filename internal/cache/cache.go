// Package cache keeps translation artifacts on disk, keyed by a digest of
// the output style and the descriptor bytes.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"glslgen/internal/diag"
)

// Increment when Artifact changes shape or generated code changes meaning.
const schemaVersion uint16 = 1

// Digest identifies one cached translation.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// Key digests a descriptor for a style.
func Key(style string, descriptor []byte) Digest {
	h := sha256.New()
	fmt.Fprintf(h, "glslgen/%d/%s\x00", schemaVersion, style)
	h.Write(descriptor)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Artifact is the stored outcome of a translation that reached
// materialization.
type Artifact struct {
	Schema      uint16
	Style       string
	Name        string
	Source      string
	Diagnostic  string // engine complaint for a soft failure
	Diagnostics []diag.Diagnostic
}

// Cache is a directory of msgpack artifacts. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a cache rooted at dir, creating it if needed. An empty dir
// selects $XDG_CACHE_HOME/glslgen or ~/.cache/glslgen.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("cache: %w", err)
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "glslgen")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir is the cache root.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "artifacts", key.String()+".mp")
}

// Put writes a through a temp file and an atomic rename.
func (c *Cache) Put(key Digest, a *Artifact) error {
	if c == nil || a == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	stored := *a
	stored.Schema = schemaVersion
	if err := msgpack.NewEncoder(f).Encode(&stored); err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := os.Rename(f.Name(), p); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	committed = true
	return nil
}

// Get loads the artifact for key. Missing entries and entries written by
// another schema are misses.
func (c *Cache) Get(key Digest) (*Artifact, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache: %w", err)
	}
	defer f.Close()

	var a Artifact
	if err := msgpack.NewDecoder(f).Decode(&a); err != nil {
		return nil, false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	if a.Schema != schemaVersion {
		return nil, false, nil
	}
	return &a, true, nil
}

// DropAll removes every artifact.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	dir := filepath.Join(c.dir, "artifacts")
	old := dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cache: %w", err)
	}
	return os.RemoveAll(old)
}
