package cache

import (
	"context"
	"fmt"
	"time"

	"chef-bonbon/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// RemoteStore 以 Redis 為後端的共享食譜快取層
// 多個實例部署時放在記憶體快取之後：記憶體未命中再查這裡。
// TTL 交給 Redis 處理，容量不在此層控管。
type RemoteStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRemoteStore 創建共享快取層；未啟用時回傳 nil
func NewRemoteStore(cfg *config.Config) (*RemoteStore, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RemoteStore{
		client: client,
		ttl:    cfg.Cache.TTL,
	}, nil
}

// Get 獲取共享快取
func (s *RemoteStore) Get(ctx context.Context, key string) (string, bool) {
	if s == nil || s.client == nil {
		return "", false
	}

	val, err := s.client.Get(ctx, s.redisKey(key)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set 設置共享快取
func (s *RemoteStore) Set(ctx context.Context, key, value string) error {
	if s == nil || s.client == nil {
		return nil
	}

	if err := s.client.Set(ctx, s.redisKey(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set shared cache: %w", err)
	}
	return nil
}

// Close 關閉連接
func (s *RemoteStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *RemoteStore) redisKey(key string) string {
	return "recipe:result:" + key
}
