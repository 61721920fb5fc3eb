package common

import (
	"fmt"
	"strings"
)

// Ingredient 食譜中的食材，type 為知識圖譜的類型 URI，name 為顯示名稱
type Ingredient struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// RecipeSummary 搜尋結果中的食譜摘要
type RecipeSummary struct {
	URI       string `json:"uri"`
	Name      string `json:"name,omitempty"`
	USDAScore string `json:"usda_score,omitempty"`
}

// RecipeDetail 單一食譜的完整資料
// 注意：欄位名稱與前端約定一致，空值省略但列表與營養資訊永遠存在
type RecipeDetail struct {
	URI                 string            `json:"uri"`
	Name                string            `json:"name,omitempty"`
	Description         string            `json:"description,omitempty"`
	USDAScore           string            `json:"usda_score,omitempty"`
	Calories            string            `json:"calories,omitempty"`
	RecipeYield         string            `json:"recipe_yield,omitempty"`
	PrepTime            string            `json:"prep_time,omitempty"`
	CookTime            string            `json:"cook_time,omitempty"`
	TotalTime           string            `json:"total_time,omitempty"`
	Ingredients         []Ingredient      `json:"ingredients"`
	DietaryRestrictions []string          `json:"dietary_restrictions"`
	NutritionalInfo     map[string]string `json:"nutritional_info"`
	ServingSize         string            `json:"serving_size,omitempty"`
	ServingSizeUnit     string            `json:"serving_size_unit,omitempty"`
	NutritionalContext  string            `json:"nutritional_context"`
}

// FormatIngredients 格式化食材列表（日誌用）
func FormatIngredients(ingredients []Ingredient) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		sb.WriteString(fmt.Sprintf("- %s (%s)\n", ing.Name, ing.Type))
	}
	return sb.String()
}

// URITail 取 URI 最後一段，非 URI 字串原樣返回
func URITail(value string) string {
	if idx := strings.LastIndex(value, "/"); idx >= 0 {
		return value[idx+1:]
	}
	return value
}
