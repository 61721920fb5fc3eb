package ingredient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"foodkg-recommender/internal/core/kg"
	"foodkg-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// vocabularyQuery 取出知識圖譜中所有食材類型的標準名稱（類型 URI 的最後一段）
const vocabularyQuery = `
PREFIX food:      <http://purl.org/heals/food/>
PREFIX healsIng:  <http://purl.org/heals/ingredient/>
PREFIX recipeIng: <http://purl.org/recipekg/ingredient/>
PREFIX rdf:       <http://www.w3.org/1999/02/22-rdf-syntax-ns#>

SELECT DISTINCT (REPLACE(STR(?ingType), "^.*/", "") AS ?ingredient)
WHERE {
  ?recipe food:hasIngredient ?ing .
  ?ing rdf:type ?ingType .

  FILTER (
    STRSTARTS(STR(?ingType), STR(healsIng:)) ||
    STRSTARTS(STR(?ingType), STR(recipeIng:))
  )
}
ORDER BY ?ingredient
`

// Snapshot 不可變的詞彙表快照，重載時整體替換而非就地修改
type Snapshot struct {
	names    []string
	loadedAt time.Time
}

// Names 返回標準食材名稱列表，調用方不得修改
func (s *Snapshot) Names() []string {
	if s == nil {
		return nil
	}
	return s.names
}

// Len 詞彙表大小
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// LoadedAt 快照載入時間，零值表示尚未載入
func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}

// Service 食材詞彙表服務，持有當前快照並提供比對與自動補全
type Service struct {
	executor kg.Executor

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewService 創建詞彙表服務，快照為空直到首次 Load 成功
func NewService(executor kg.Executor) *Service {
	return &Service{
		executor: executor,
		snapshot: &Snapshot{},
	}
}

// Load 從知識圖譜重新載入詞彙表並原子替換快照
// 失敗時保留現有快照
func (s *Service) Load(ctx context.Context) error {
	results, err := s.executor.Select(ctx, vocabularyQuery)
	if err != nil {
		return fmt.Errorf("failed to fetch ingredient vocabulary: %w", err)
	}

	names := make([]string, 0, len(results.Results.Bindings))
	for _, binding := range results.Results.Bindings {
		if binding.Has("ingredient") {
			names = append(names, binding.Get("ingredient"))
		}
	}

	snapshot := &Snapshot{
		names:    names,
		loadedAt: time.Now(),
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	common.LogInfo("食材詞彙表已載入", zap.Int("數量", len(names)))
	return nil
}

// Snapshot 返回當前快照
func (s *Service) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Loaded 詞彙表是否已成功載入過
func (s *Service) Loaded() bool {
	return !s.Snapshot().LoadedAt().IsZero()
}

// Match 以當前快照比對輸入
func (s *Service) Match(tokens []string, opts Options) []MatchGroup {
	return Match(tokens, s.Snapshot().Names(), opts)
}

// Suggest 以當前快照做自動補全
func (s *Service) Suggest(query string, limit int) []string {
	return Suggest(query, s.Snapshot().Names(), limit)
}
