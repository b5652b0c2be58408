package pagefetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FSCache keeps pages on disk at {basePath}/{type}/{season}/{name}.json.
type FSCache struct {
	basePath string
	mu       sync.Mutex
}

// NewFSCache constructs a filesystem cache rooted at basePath.
func NewFSCache(basePath string) *FSCache {
	return &FSCache{basePath: basePath}
}

func (c *FSCache) Name() string { return SourceFSCache }

// BasePath exposes the cache root (primarily for testing).
func (c *FSCache) BasePath() string {
	if c == nil {
		return ""
	}
	return c.basePath
}

// PagePath builds the file path for a cached page.
func (c *FSCache) PagePath(req Request) string {
	return filepath.Join(c.basePath, cleanSegment(req.Type), cleanSegment(req.Season), cleanSegment(req.Name)+".json")
}

func (c *FSCache) Get(ctx context.Context, req Request) ([]byte, bool, error) {
	_ = ctx
	if err := c.check(req); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(c.PagePath(req))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Put writes the page atomically and records it in the manifest.
// Identical content is left untouched.
func (c *FSCache) Put(ctx context.Context, req Request, body []byte) error {
	_ = ctx
	if err := c.check(req); err != nil {
		return err
	}
	target := c.PagePath(req)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, body) {
		return c.updateManifest(req)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}
	return c.updateManifest(req)
}

func (c *FSCache) check(req Request) error {
	if c == nil || c.basePath == "" {
		return errors.New("page cache not configured")
	}
	if !req.Cacheable() {
		return fmt.Errorf("page %q lacks a cache key", req.URL)
	}
	return nil
}

// updateManifest must be called with c.mu held.
func (c *FSCache) updateManifest(req Request) error {
	m, _ := readManifest(filepath.Join(c.basePath, manifestFile))
	key := cleanSegment(req.Season) + "/" + cleanSegment(req.Name)

	meta := m.Pages[req.Type]
	if !containsKey(meta.Keys, key) {
		meta.Keys = append(meta.Keys, key)
		sort.Strings(meta.Keys)
	}
	meta.LastWritten = time.Now().UTC()
	m.Pages[req.Type] = meta

	return writeManifest(c.basePath, m)
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// cleanSegment keeps a key segment from escaping its directory.
func cleanSegment(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, `\`, "_")
	if s == "." || s == ".." {
		return "_"
	}
	return s
}
