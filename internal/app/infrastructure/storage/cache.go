package storage

import (
	"encoding/json"
	"fmt"
	"github.com/maypok86/otter/v2"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Cache is an otter cache that can mirror its content to a JSON file.
type Cache[T any] struct {
	outer *otter.Cache[string, T]

	persist       bool
	flushOnChange bool
	filePath      string

	flushMu   sync.Mutex
	stopFlush chan struct{}
	closeOnce sync.Once
}

func NewCache[T any](capacity int, ttl time.Duration, persist bool, flushOnChange bool, filePath string, flushInterval time.Duration) *Cache[T] {
	c := &Cache[T]{
		persist:       persist && filePath != "",
		flushOnChange: flushOnChange,
		filePath:      filePath,
		stopFlush:     make(chan struct{}),
	}

	opts := &otter.Options[string, T]{
		MaximumSize: capacity,
	}
	if ttl > 0 {
		opts.ExpiryCalculator = otter.ExpiryAccessing[string, T](ttl)
	}
	c.outer = otter.Must(opts)

	if c.persist {
		_ = c.loadFromDisk()
	}

	if c.persist && !c.flushOnChange && flushInterval > 0 {
		go c.periodicFlush(flushInterval)
	}

	return c
}

func (c *Cache[T]) Set(key string, val T) {
	c.outer.Set(key, val)
	if c.persist && c.flushOnChange {
		_ = c.FlushToDisk()
	}
}

func (c *Cache[T]) Get(key string) (T, bool) {
	return c.outer.GetIfPresent(key)
}

func (c *Cache[T]) Len() int {
	return c.outer.EstimatedSize()
}

// All returns a snapshot of the live entries.
func (c *Cache[T]) All() map[string]T {
	items := make(map[string]T)
	for k, v := range c.outer.All() {
		items[k] = v
	}
	return items
}

func (c *Cache[T]) FlushToDisk() error {
	if !c.persist {
		return nil
	}

	c.flushMu.Lock()
	defer c.flushMu.Unlock()

	data, err := json.MarshalIndent(c.All(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	return writeFileAtomic(c.filePath, data)
}

// writeFileAtomic writes data next to path and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", filepath.Base(path), time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return os.Rename(tmp, path)
}

func (c *Cache[T]) periodicFlush(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.FlushToDisk()
		case <-c.stopFlush:
			return
		}
	}
}

func (c *Cache[T]) loadFromDisk() error {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		return err
	}

	var items map[string]T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	for k, v := range items {
		c.outer.Set(k, v)
	}

	return nil
}

// Close stops the periodic flush and writes the cache one last time.
func (c *Cache[T]) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.stopFlush)
		err = c.FlushToDisk()
	})
	return err
}
