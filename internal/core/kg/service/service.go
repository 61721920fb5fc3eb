package service

import (
	"context"

	"foodkg-recommender/internal/core/kg/cache"
	"foodkg-recommender/internal/core/kg/sparql"
	"foodkg-recommender/internal/infrastructure/config"
	"foodkg-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 知識圖譜查詢服務，組合 SPARQL 客戶端與查詢結果快取
type Service struct {
	config *config.Config
	client *sparql.Client
	cache  *cache.Service
}

// NewService 創建知識圖譜查詢服務
func NewService(cfg *config.Config, cacheService *cache.Service) (*Service, error) {
	client := sparql.NewClient(&cfg.SPARQL)

	return &Service{
		config: cfg,
		client: client,
		cache:  cacheService,
	}, nil
}

// Select 執行 SELECT 查詢，優先使用快取
func (s *Service) Select(ctx context.Context, query string) (*sparql.Results, error) {
	// 統一查詢格式，確保快取鍵一致
	normalized := common.NormalizeSpace(query)

	if s.cache != nil && s.cache.Enabled() {
		if results, err := s.cache.Get(ctx, normalized); err == nil {
			common.LogCacheHit("kg_query", normalized)
			return results, nil
		}
		common.LogCacheMiss("kg_query", normalized)
	}

	results, err := s.client.Select(ctx, query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.Enabled() {
		// 快取寫入失敗不影響查詢結果
		if err := s.cache.Set(ctx, normalized, results); err != nil {
			common.LogWarn("查詢結果快取寫入失敗", zap.Error(err))
		}
	}

	return results, nil
}
