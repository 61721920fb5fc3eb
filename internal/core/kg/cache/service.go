package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"foodkg-recommender/internal/core/kg/sparql"
	"foodkg-recommender/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss 查詢結果不在快取中
var ErrCacheMiss = fmt.Errorf("cache miss")

// ErrCacheDisabled 快取未啟用
var ErrCacheDisabled = fmt.Errorf("cache is disabled")

// Service 查詢結果快取服務
type Service struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewService 創建緩存服務，未啟用時返回空服務
func NewService(cfg *config.CacheConfig) (*Service, error) {
	if !cfg.Enabled {
		return &Service{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// Enabled 快取是否啟用
func (s *Service) Enabled() bool {
	return s.config.Enabled && s.client != nil
}

// Get 獲取查詢結果快取
func (s *Service) Get(ctx context.Context, query string) (*sparql.Results, error) {
	if !s.Enabled() {
		return nil, ErrCacheDisabled
	}

	key := s.generateKey(query)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var results sparql.Results
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}

	return &results, nil
}

// Set 寫入查詢結果快取
func (s *Service) Set(ctx context.Context, query string, results *sparql.Results) error {
	if !s.Enabled() {
		return nil
	}

	key := s.generateKey(query)

	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := s.client.Set(ctx, key, data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Close 關閉 Redis 連接
func (s *Service) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// generateKey 生成緩存鍵，查詢文字先雜湊避免鍵值過長
func (s *Service) generateKey(query string) string {
	sum := sha256.Sum256([]byte(query))
	return "kg:query:" + hex.EncodeToString(sum[:])
}
