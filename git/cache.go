package git

import (
	"bytes"
	"io"
	"sync"

	"github.com/andybalholm/brotli"

	"mergeview/logger"
)

// BlobCache holds blob contents compressed with brotli, keyed by blob
// hash. Oldest entries are evicted first once the cache is full.
type BlobCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	order   []string
	max     int
}

// NewBlobCache creates a cache holding at most max blobs.
func NewBlobCache(max int) *BlobCache {
	return &BlobCache{
		entries: make(map[string][]byte),
		max:     max,
	}
}

// Get decompresses and returns the cached content for key.
func (c *BlobCache) Get(key string) (string, bool) {
	c.mu.Lock()
	compressed, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return "", false
	}

	content, err := io.ReadAll(brotli.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		logger.Warn("blob cache: decompress %s: %v", key, err)
		c.drop(key)
		return "", false
	}
	return string(content), true
}

// Put compresses and stores content under key.
func (c *BlobCache) Put(key, content string) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if _, err := w.Write([]byte(content)); err != nil {
		logger.Warn("blob cache: compress %s: %v", key, err)
		return
	}
	if err := w.Close(); err != nil {
		logger.Warn("blob cache: compress %s: %v", key, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = buf.Bytes()
	for len(c.order) > c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Len reports the number of cached blobs.
func (c *BlobCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *BlobCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	c.order = nil
}

func (c *BlobCache) drop(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
