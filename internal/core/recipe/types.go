package recipe

import (
	"foodkg-recommender/internal/core/ingredient"
	"foodkg-recommender/internal/pkg/common"
)

// Summary 搜尋結果中的食譜摘要
type Summary = common.RecipeSummary

// Detail 單一食譜的完整資料
type Detail = common.RecipeDetail

// SearchRequest 依食材搜尋食譜的請求
type SearchRequest struct {
	// Tokens 已拆分去重的食材名稱
	Tokens []string
	// Category 選填的食譜分類
	Category string
	// Limit 回傳筆數上限，非正數或超過設定上限時取設定值
	Limit int
}

// SearchResult 搜尋結果，包含逐食材的比對明細與命中的食譜
type SearchResult struct {
	Matches   []ingredient.MatchGroup `json:"matches"`
	Unmatched []string                `json:"unmatched"`
	Recipes   []Summary               `json:"recipes"`
}
