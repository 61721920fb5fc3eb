package recipe

import (
	"context"
	"fmt"

	"foodkg-recommender/internal/core/ingredient"
	"foodkg-recommender/internal/core/kg"
	"foodkg-recommender/internal/infrastructure/config"
	"foodkg-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// SearchService 依食材搜尋食譜
type SearchService struct {
	executor   kg.Executor
	vocabulary *ingredient.Service
	config     *config.Config
}

// NewSearchService 創建食譜搜尋服務
func NewSearchService(executor kg.Executor, vocabulary *ingredient.Service, cfg *config.Config) *SearchService {
	return &SearchService{
		executor:   executor,
		vocabulary: vocabulary,
		config:     cfg,
	}
}

// Search 將輸入食材比對到標準名稱後查詢同時包含所有命中食材的食譜
// 所有食材都比對失敗時返回空食譜列表而不查詢
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	opts := ingredient.Options{
		Cutoff:         s.config.Matcher.Cutoff,
		HighSimilarity: s.config.Matcher.HighSimilarity,
		MaxCandidates:  s.config.Matcher.MaxCandidates,
	}
	groups := s.vocabulary.Match(req.Tokens, opts)

	result := &SearchResult{
		Matches:   groups,
		Unmatched: make([]string, 0),
		Recipes:   make([]Summary, 0),
	}
	for _, group := range groups {
		if len(group.Matches) == 0 {
			result.Unmatched = append(result.Unmatched, group.Input)
		}
	}

	limit := req.Limit
	if limit <= 0 || limit > s.config.Search.ResultLimit {
		limit = s.config.Search.ResultLimit
	}

	query := SearchQuery(groups, req.Category, limit)
	if query == "" {
		common.LogInfo("食材皆未命中詞彙表，略過食譜查詢", zap.Strings("輸入", req.Tokens))
		return result, nil
	}

	results, err := s.executor.Select(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}

	// 同一食譜可能因多個食材綁定出現多列，依 URI 去重並保留出現順序
	seen := make(map[string]struct{})
	for _, binding := range results.Results.Bindings {
		uri := binding.Get("recipe")
		if uri == "" {
			continue
		}
		if _, dup := seen[uri]; dup {
			continue
		}
		seen[uri] = struct{}{}
		result.Recipes = append(result.Recipes, Summary{
			URI:       uri,
			Name:      binding.Get("name"),
			USDAScore: binding.Get("usdascore"),
		})
	}

	common.LogInfo("食譜搜尋完成",
		zap.Int("輸入食材數", len(req.Tokens)),
		zap.Int("未命中數", len(result.Unmatched)),
		zap.Int("食譜數", len(result.Recipes)))
	return result, nil
}
