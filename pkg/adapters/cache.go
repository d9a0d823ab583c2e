package adapters

import (
	"sync"
	"time"
)

type cacheItem struct {
	value   any
	expires time.Time // ゼロ値は無期限
}

// MemoryCache は有効期限付きのプロセス内キャッシュです。SchemeCacher を満たします。
// 期限切れの項目は Get の時点で削除されます。
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]cacheItem
	now   func() time.Time
}

// NewMemoryCache は空のキャッシュを作成します。
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]cacheItem), now: time.Now}
}

func (c *MemoryCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if !item.expires.IsZero() && !c.now().Before(item.expires) {
		delete(c.items, key)
		return nil, false
	}
	return item.value, true
}

// Set は値を保存します。d が 0 以下の場合は無期限です。
func (c *MemoryCache) Set(key string, value any, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item := cacheItem{value: value}
	if d > 0 {
		item.expires = c.now().Add(d)
	}
	c.items[key] = item
}

// Len は保持している項目数を返します。期限切れで未削除の項目も含みます。
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
