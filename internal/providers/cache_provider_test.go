package providers

import (
	"testing"
	"time"

	"github.com/coocood/freecache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exportlens/internal/structures"
)

// local mock logger to avoid import cycle with testutil
type cacheTestLogger struct{}

func (m *cacheTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Close()                                        {}

func cacheConfig(size int, ttl time.Duration) *structures.Config {
	return &structures.Config{
		Session: structures.SessionConfig{
			Size: size,
			TTL:  ttl,
		},
	}
}

func TestCacheProvider_ZeroSizeReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(0, time.Hour), &cacheTestLogger{})
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_EnabledReturnsCacheProvider(t *testing.T) {
	c := NewCacheProvider(cacheConfig(1, time.Hour), &cacheTestLogger{})
	assert.IsType(t, &CacheProvider{}, c)
}

func TestCacheProvider_SetGetDel(t *testing.T) {
	c := NewCacheProvider(cacheConfig(1, time.Hour), &cacheTestLogger{})

	require.NoError(t, c.Set("table:s1", []byte("value1")))
	val, ok := c.Get("table:s1")
	assert.True(t, ok)
	assert.Equal(t, []byte("value1"), val)

	c.Del("table:s1")
	_, ok = c.Get("table:s1")
	assert.False(t, ok)
}

func TestCacheProvider_Miss(t *testing.T) {
	c := NewCacheProvider(cacheConfig(1, time.Hour), &cacheTestLogger{})

	val, ok := c.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestCacheProvider_Overwrite(t *testing.T) {
	c := NewCacheProvider(cacheConfig(1, time.Hour), &cacheTestLogger{})

	require.NoError(t, c.Set("key1", []byte("v1")))
	require.NoError(t, c.Set("key1", []byte("v2")))

	val, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), val)
}

func TestCacheProvider_EntryTooLarge(t *testing.T) {
	c := NewCacheProvider(cacheConfig(1, time.Hour), &cacheTestLogger{})

	err := c.Set("big", make([]byte, 2*1024*1024))
	assert.ErrorIs(t, err, freecache.ErrLargeEntry)
}

func TestNoopCache_AlwaysMiss(t *testing.T) {
	c := &noopCache{}
	assert.NoError(t, c.Set("key1", []byte("value1")))

	val, ok := c.Get("key1")
	assert.False(t, ok)
	assert.Nil(t, val)
	c.Del("key1")
}

func TestCacheProvider_TTLExpiry(t *testing.T) {
	c := NewCacheProvider(cacheConfig(1, time.Second), &cacheTestLogger{})

	require.NoError(t, c.Set("key1", []byte("value1")))
	_, ok := c.Get("key1")
	assert.True(t, ok)

	time.Sleep(2100 * time.Millisecond)

	_, ok = c.Get("key1")
	assert.False(t, ok)
}
