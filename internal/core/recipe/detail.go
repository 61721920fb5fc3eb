package recipe

import (
	"context"
	"fmt"
	"strings"

	"foodkg-recommender/internal/core/kg"
	"foodkg-recommender/internal/core/kg/sparql"
	"foodkg-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// nutrientUnits 營養素缺少單位時的預設單位
var nutrientUnits = map[string]string{
	"Carbohydrate": "g",
	"Fat":          "g",
	"Protein":      "g",
	"Fiber":        "g",
	"Sugar":        "g",
	"SaturatedFat": "g",
	"Sodium":       "mg",
	"Cholesterol":  "mg",
	"VitaminA":     "µg",
	"VitaminC":     "mg",
	"Calcium":      "mg",
	"Iron":         "mg",
	"Zinc":         "mg",
	"Potassium":    "mg",
	"Magnesium":    "mg",
}

// DetailService 取得單一食譜的完整資料
type DetailService struct {
	executor kg.Executor
}

// NewDetailService 創建食譜詳情服務
func NewDetailService(executor kg.Executor) *DetailService {
	return &DetailService{executor: executor}
}

// Fetch 查詢並彙整單一食譜的所有可用資訊
// 知識圖譜中查無此 URI 時返回 common.ErrRecipeNotFound
func (s *DetailService) Fetch(ctx context.Context, uri string) (*Detail, error) {
	if err := ValidateRecipeURI(uri); err != nil {
		return nil, err
	}

	results, err := s.executor.Select(ctx, DetailQuery(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe details: %w", err)
	}

	bindings := results.Results.Bindings
	if len(bindings) == 0 {
		common.LogWarn("查無食譜", zap.String("uri", uri))
		return nil, common.ErrRecipeNotFound
	}

	detail := &Detail{
		URI:                 uri,
		Ingredients:         make([]common.Ingredient, 0),
		DietaryRestrictions: make([]string, 0),
		NutritionalInfo:     make(map[string]string),
	}

	type ingredientKey struct {
		typ, name string
	}
	type nutritionKey struct {
		prop, amount string
	}
	seenIngredients := make(map[ingredientKey]struct{})
	seenDietary := make(map[string]struct{})
	seenNutrition := make(map[nutritionKey]struct{})

	for _, binding := range bindings {
		// 純量欄位取第一個非空值
		fillScalar(&detail.Name, binding, "name")
		fillScalar(&detail.Description, binding, "description")
		fillScalar(&detail.USDAScore, binding, "usdascore")
		fillScalar(&detail.Calories, binding, "calAmount")
		fillScalar(&detail.RecipeYield, binding, "recipeYield")
		fillScalar(&detail.PrepTime, binding, "prepTime")
		fillScalar(&detail.CookTime, binding, "cookTime")
		fillScalar(&detail.TotalTime, binding, "totalTime")
		fillScalar(&detail.ServingSize, binding, "servingSize")
		if detail.ServingSizeUnit == "" && binding.Has("servingSizeUnit") {
			detail.ServingSizeUnit = displayValue(binding.Get("servingSizeUnit"))
		}

		if binding.Has("ingredientType") {
			ingType := binding.Get("ingredientType")
			ingName := binding.Get("ingredientName")
			if !binding.Has("ingredientName") {
				ingName = common.URITail(ingType)
			}
			key := ingredientKey{typ: ingType, name: ingName}
			if _, dup := seenIngredients[key]; !dup {
				seenIngredients[key] = struct{}{}
				detail.Ingredients = append(detail.Ingredients, common.Ingredient{
					Name: ingName,
					Type: ingType,
				})
			}
		}

		if binding.Has("dietaryRestriction") {
			name := common.URITail(binding.Get("dietaryRestriction"))
			if _, dup := seenDietary[name]; !dup {
				seenDietary[name] = struct{}{}
				detail.DietaryRestrictions = append(detail.DietaryRestrictions, name)
			}
		}

		if binding.Has("nutritionalProperty") && binding.Has("nutritionalAmount") {
			propName := common.URITail(binding.Get("nutritionalProperty"))
			amount := binding.Get("nutritionalAmount")

			key := nutritionKey{prop: propName, amount: amount}
			if _, dup := seenNutrition[key]; dup {
				continue
			}
			seenNutrition[key] = struct{}{}

			// hasProteinData -> Protein
			displayName := strings.ReplaceAll(propName, "has", "")
			displayName = strings.ReplaceAll(displayName, "Data", "")
			if displayName == "" {
				displayName = propName
			}

			unit := ""
			if binding.Has("nutritionalUnit") {
				unit = displayValue(binding.Get("nutritionalUnit"))
			}
			if unit == "" {
				unit = nutrientUnits[displayName]
			}

			formatted := amount
			if unit != "" {
				formatted = amount + " " + unit
			}
			// 同名營養素保留第一個值
			if _, exists := detail.NutritionalInfo[displayName]; !exists {
				detail.NutritionalInfo[displayName] = formatted
			}
		}
	}

	switch {
	case detail.ServingSize != "" && detail.ServingSizeUnit != "":
		detail.NutritionalContext = fmt.Sprintf("per %s %s", detail.ServingSize, detail.ServingSizeUnit)
	case detail.RecipeYield != "":
		detail.NutritionalContext = fmt.Sprintf("per serving (recipe yields %s)", detail.RecipeYield)
	default:
		detail.NutritionalContext = "per serving"
	}

	common.LogInfo("食譜詳情已彙整",
		zap.String("uri", uri),
		zap.Int("食材數", len(detail.Ingredients)),
		zap.Int("營養項目數", len(detail.NutritionalInfo)))
	return detail, nil
}

// fillScalar 欄位為空且此列有值時填入
func fillScalar(dst *string, binding sparql.Binding, name string) {
	if *dst == "" && binding.Has(name) {
		*dst = binding.Get(name)
	}
}

// displayValue URI 值取最後一段作為顯示名稱，一般字面值原樣返回
func displayValue(value string) string {
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return common.URITail(value)
	}
	return value
}
