package cache

import (
	"sync"
	"time"

	"chef-bonbon/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 有界的記憶體快取
// 淘汰策略為插入順序（FIFO），不追蹤訪問時間；過期採延遲刪除，
// Get 不會刷新 insertedAt，條目壽命由寫入時間與 TTL 決定。
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	order   []string // 插入順序，最舊的在最前面
	maxSize int
	ttl     time.Duration
	stats   storeStats
	now     func() time.Time

	closeOnce sync.Once
	done      chan struct{}
}

// entry 快取條目
type entry struct {
	value      string
	insertedAt time.Time
}

// storeStats 快取統計
type storeStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// Stats 對外的快取統計信息
type Stats struct {
	Size      int   `json:"size"`
	MaxSize   int   `json:"max_size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// NewStore 創建新的快取
func NewStore(maxSize int, ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
		done:    make(chan struct{}),
	}
}

// Get 獲取快取值
// 找不到或已過期都回傳 false；過期條目在查詢時順手刪除
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[key]
	if !exists {
		s.stats.misses++
		return "", false
	}

	// 檢查是否過期
	if s.now().Sub(e.insertedAt) >= s.ttl {
		s.removeLocked(key)
		s.stats.evictions++
		s.stats.misses++
		return "", false
	}

	s.stats.hits++
	return e.value, true
}

// Put 設置快取值
// 覆寫視同重新插入：insertedAt 刷新，插入順序移到最後；
// 超出容量時淘汰最舊插入的條目
func (s *Store) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; exists {
		s.removeOrderLocked(key)
	}

	s.entries[key] = entry{
		value:      value,
		insertedAt: s.now(),
	}
	s.order = append(s.order, key)

	// 檢查快取大小
	for len(s.entries) > s.maxSize {
		oldest := s.order[0]
		s.removeLocked(oldest)
		s.stats.evictions++
		common.LogInfo("快取已淘汰(插入順序)",
			zap.Int("目前容量", len(s.entries)),
		)
	}
}

// EvictExpired 清理過期的快取條目，回傳清理數量
func (s *Store) EvictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	count := 0

	// 依插入順序掃描，過期的一定排在前面，但覆寫會打亂時間序，仍全掃
	for _, key := range append([]string(nil), s.order...) {
		if e, exists := s.entries[key]; exists && now.Sub(e.insertedAt) >= s.ttl {
			s.removeLocked(key)
			s.stats.evictions++
			count++
		}
	}

	if count > 0 {
		common.LogInfo("快取清理執行",
			zap.Int("清理數量", count),
			zap.Int("剩餘容量", len(s.entries)),
		)
	}

	return count
}

// Len 回傳目前條目數量
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// GetStats 獲取快取統計信息
func (s *Store) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		Size:      len(s.entries),
		MaxSize:   s.maxSize,
		Hits:      s.stats.hits,
		Misses:    s.stats.misses,
		Evictions: s.stats.evictions,
	}
}

// StartCleanup 啟動定期清理過期快取的協程
func (s *Store) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.EvictExpired()
			case <-s.done:
				return
			}
		}
	}()
}

// Close 關閉快取並停止清理協程
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
	s.order = nil

	common.LogInfo("快取已關閉",
		zap.Int64("命中次數", s.stats.hits),
		zap.Int64("未命中次數", s.stats.misses),
		zap.Int64("淘汰次數", s.stats.evictions),
	)
	return nil
}

// removeLocked 移除條目與其插入順序記錄，呼叫端需持有鎖
func (s *Store) removeLocked(key string) {
	delete(s.entries, key)
	s.removeOrderLocked(key)
}

func (s *Store) removeOrderLocked(key string) {
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
