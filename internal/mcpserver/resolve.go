// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes the breach pipeline as read-only tools over stdio.
package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
)

// ResolveDataset resolves a dataset path to an absolute, symlink-free path of
// a regular file.
func ResolveDataset(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("no dataset path given")
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("invalid dataset path %q", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}
	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("dataset %q does not exist", path)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("dataset %q does not exist", path)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%q is not a regular file", path)
	}
	return absPath, nil
}

// datasetCache keeps parsed datasets between tool calls. An entry is reused
// while the file's size and modification time are unchanged.
type datasetCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	ds      *dataset.Dataset
}

func newDatasetCache() *datasetCache {
	return &datasetCache{entries: make(map[string]cacheEntry)}
}

func (c *datasetCache) load(path string) (*dataset.Dataset, error) {
	abs, err := ResolveDataset(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat dataset: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[abs]; ok && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
		return e.ds, nil
	}
	ds, err := dataset.Load(abs)
	if err != nil {
		return nil, err
	}
	c.entries[abs] = cacheEntry{modTime: info.ModTime(), size: info.Size(), ds: ds}
	return ds, nil
}
