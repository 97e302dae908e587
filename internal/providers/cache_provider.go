package providers

import (
	"unsafe"

	"github.com/coocood/freecache"

	"exportlens/internal/structures"
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Del(key string)
}

// CacheProvider holds session tables in a fixed-size freecache arena.
// Entries expire after the configured session TTL.
type CacheProvider struct {
	cache *freecache.Cache
	ttl   int
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if conf.Session.Size <= 0 {
		logger.Infof(TypeApp, "Session cache disabled")
		return &noopCache{}
	}

	sizeBytes := conf.Session.Size * 1024 * 1024
	ttl := max(int(conf.Session.TTL.Seconds()), 1)

	logger.Infof(TypeApp, "Session cache initialized: %dMB, TTL=%ds", conf.Session.Size, ttl)

	return &CacheProvider{
		cache: freecache.NewCache(sizeBytes),
		ttl:   ttl,
	}
}

// unsafeStringToBytes converts string to []byte without allocation.
// freecache only reads and copies keys.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set fails with freecache.ErrLargeEntry when a table exceeds 1/1024 of the arena.
func (c *CacheProvider) Set(key string, value []byte) error {
	return c.cache.Set(unsafeStringToBytes(key), value, c.ttl)
}

func (c *CacheProvider) Del(key string) {
	c.cache.Del(unsafeStringToBytes(key))
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool)  { return nil, false }
func (n *noopCache) Set(_ string, _ []byte) error { return nil }
func (n *noopCache) Del(_ string)                 {}
