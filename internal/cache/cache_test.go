package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCacheExpiry(t *testing.T) {
	now := time.Now()
	c := NewTTLCache[string, int]().(*ttlCache[string, int])
	c.now = func() time.Time { return now }

	c.Set("a", 1, time.Minute)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestTTLCacheDelete(t *testing.T) {
	c := NewTTLCache[string, string]()
	c.Set("k", "v", time.Minute)
	c.Delete("k")
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestWebhookDedup(t *testing.T) {
	d := NewWebhookDedup(time.Minute)

	assert.False(t, d.Seen("944000008", "invoice", "INV-000042"))
	d.Mark("944000008", "invoice", "INV-000042")
	assert.True(t, d.Seen("944000008", "invoice", "INV-000042"))

	// Same number, different document type is a different key.
	assert.False(t, d.Seen("944000008", "credit_note", "INV-000042"))

	d.Forget("944000008", "invoice", "INV-000042")
	assert.False(t, d.Seen("944000008", "invoice", "INV-000042"))
}
