package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetPut(t *testing.T) {
	s := NewStore(10, time.Minute)
	defer s.Close()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Put("k1", "v1")
	got, ok := s.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "v1", got)

	// 覆寫取最新值
	s.Put("k1", "v2")
	got, ok = s.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "v2", got)
	assert.Equal(t, 1, s.Len())
}

func TestStoreTTLExpiry(t *testing.T) {
	s := NewStore(10, 10*time.Minute)
	defer s.Close()

	base := time.Now()
	s.now = func() time.Time { return base }
	s.Put("k", "v")

	// TTL 前一刻還拿得到
	s.now = func() time.Time { return base.Add(10*time.Minute - time.Second) }
	_, ok := s.Get("k")
	assert.True(t, ok)

	// TTL 過後拿不到，且條目被順手刪除
	s.now = func() time.Time { return base.Add(10*time.Minute + time.Second) }
	_, ok = s.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStoreReadDoesNotRefreshInsertedAt(t *testing.T) {
	s := NewStore(10, 10*time.Minute)
	defer s.Close()

	base := time.Now()
	s.now = func() time.Time { return base }
	s.Put("k", "v")

	// 中途讀取不應該延長壽命
	s.now = func() time.Time { return base.Add(9 * time.Minute) }
	_, ok := s.Get("k")
	require.True(t, ok)

	s.now = func() time.Time { return base.Add(11 * time.Minute) }
	_, ok = s.Get("k")
	assert.False(t, ok)
}

func TestStoreFIFOEviction(t *testing.T) {
	const capacity = 5
	s := NewStore(capacity, time.Hour)
	defer s.Close()

	for i := 0; i < capacity; i++ {
		s.Put(fmt.Sprintf("k%d", i), "v")
	}

	// 讀最舊的條目，如果是 LRU 它會活下來；插入順序淘汰不理會讀取
	_, ok := s.Get("k0")
	require.True(t, ok)

	s.Put("extra", "v")

	assert.Equal(t, capacity, s.Len())
	_, ok = s.Get("k0")
	assert.False(t, ok, "oldest-inserted entry should be evicted")
	for i := 1; i < capacity; i++ {
		_, ok := s.Get(fmt.Sprintf("k%d", i))
		assert.True(t, ok, "k%d should survive", i)
	}
	_, ok = s.Get("extra")
	assert.True(t, ok)
}

func TestStoreOverwriteMovesToBackOfOrder(t *testing.T) {
	s := NewStore(2, time.Hour)
	defer s.Close()

	s.Put("a", "1")
	s.Put("b", "2")
	// 覆寫 a 之後，最舊的變成 b
	s.Put("a", "3")
	s.Put("c", "4")

	_, ok := s.Get("b")
	assert.False(t, ok)
	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "3", got)
}

func TestStoreEvictExpired(t *testing.T) {
	s := NewStore(10, 10*time.Minute)
	defer s.Close()

	base := time.Now()
	s.now = func() time.Time { return base }
	s.Put("old1", "v")
	s.Put("old2", "v")

	s.now = func() time.Time { return base.Add(5 * time.Minute) }
	s.Put("fresh", "v")

	s.now = func() time.Time { return base.Add(12 * time.Minute) }
	evicted := s.EvictExpired()

	assert.Equal(t, 2, evicted)
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("fresh")
	assert.True(t, ok)
}

func TestStoreStats(t *testing.T) {
	s := NewStore(2, time.Hour)
	defer s.Close()

	s.Put("a", "1")
	s.Get("a")
	s.Get("nope")
	s.Put("b", "2")
	s.Put("c", "3") // 淘汰 a

	stats := s.GetStats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, 2, stats.MaxSize)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Evictions)
}
