package git

import (
	"strings"
	"testing"

	"mergeview/assert"
)

func TestBlobCache_RoundTrip(t *testing.T) {
	c := NewBlobCache(4)

	content := strings.Repeat("the quick brown fox\n", 200)
	c.Put("abc123", content)

	got, ok := c.Get("abc123")
	assert.True(t, ok, "entry present")
	assert.Equal(t, content, got, "content survives compression round trip")
}

func TestBlobCache_Miss(t *testing.T) {
	c := NewBlobCache(4)
	_, ok := c.Get("nope")
	assert.False(t, ok, "unknown key misses")
}

func TestBlobCache_EvictsOldest(t *testing.T) {
	c := NewBlobCache(2)
	c.Put("a", "first")
	c.Put("b", "second")
	c.Put("c", "third")

	assert.Equal(t, 2, c.Len(), "capacity enforced")
	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry evicted")
	got, ok := c.Get("c")
	assert.True(t, ok, "newest entry kept")
	assert.Equal(t, "third", got, "newest entry content")
}

func TestBlobCache_PutSameKeyTwice(t *testing.T) {
	c := NewBlobCache(2)
	c.Put("a", "v1")
	c.Put("a", "v2")

	assert.Equal(t, 1, c.Len(), "same key stored once")
	got, _ := c.Get("a")
	assert.Equal(t, "v2", got, "latest content wins")
}

func TestBlobCache_Clear(t *testing.T) {
	c := NewBlobCache(4)
	c.Put("a", "x")
	c.Put("b", "y")
	c.Clear()

	assert.Equal(t, 0, c.Len(), "clear drops everything")
	_, ok := c.Get("a")
	assert.False(t, ok, "cleared key misses")
}

func TestBlobCache_EmptyContent(t *testing.T) {
	c := NewBlobCache(2)
	c.Put("empty", "")

	got, ok := c.Get("empty")
	assert.True(t, ok, "empty blob cached")
	assert.Equal(t, "", got, "empty blob round trips")
}
