package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	c.Set("a", 1, time.Minute)
	c.Set("forever", 2, 0)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	now = now.Add(time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok, "期限ちょうどで失効する")
	assert.Equal(t, 1, c.Len())

	v, ok = c.Get("forever")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}
