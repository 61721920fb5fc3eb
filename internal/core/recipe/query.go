package recipe

import (
	"fmt"
	"net/url"
	"strings"

	"foodkg-recommender/internal/core/ingredient"
	"foodkg-recommender/internal/pkg/common"
)

// queryPrefixes 搜尋與詳情查詢共用的命名空間
const queryPrefixes = `PREFIX rdf:       <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
PREFIX rdfs:      <http://www.w3.org/2000/01/rdf-schema#>
PREFIX schema:    <https://schema.org/>
PREFIX recipeKG:  <http://purl.org/recipekg/>
PREFIX healsIng:  <http://purl.org/heals/ingredient/>
PREFIX recipeIng: <http://purl.org/recipekg/ingredient/>
PREFIX food:      <http://purl.org/heals/food/>
`

// SearchQuery 組出依食材搜尋食譜的查詢
// 每個非空比對組各佔一組 triple pattern（組間 AND），組內名稱以 IN 合併（組內 OR）
// 全部比對組皆為空時返回空字串，表示無需查詢
func SearchQuery(groups []ingredient.MatchGroup, category string, limit int) string {
	var body strings.Builder

	n := 0
	for _, group := range groups {
		if len(group.Matches) == 0 {
			continue
		}
		names := make([]string, len(group.Matches))
		for i, name := range group.Matches {
			names[i] = `"` + escapeLiteral(name) + `"`
		}
		fmt.Fprintf(&body, "  ?recipe food:hasIngredient ?ing%d .\n", n)
		fmt.Fprintf(&body, "  ?ing%d rdf:type ?type%d .\n", n, n)
		fmt.Fprintf(&body, "  FILTER (\n")
		fmt.Fprintf(&body, "    (STRSTARTS(STR(?type%d), STR(healsIng:)) || STRSTARTS(STR(?type%d), STR(recipeIng:))) &&\n", n, n)
		fmt.Fprintf(&body, "    REPLACE(STR(?type%d), \"^.*/\", \"\") IN (%s)\n", n, strings.Join(names, ", "))
		fmt.Fprintf(&body, "  )\n")
		n++
	}
	if n == 0 {
		return ""
	}

	if slug := categorySlug(category); slug != "" {
		body.WriteString("  ?recipe recipeKG:belongsTo ?recipeCategory .\n")
		fmt.Fprintf(&body, "  ?recipeCategory rdfs:subClassOf* <http://purl.org/recipekg/categories/%s/> .\n", slug)
	}

	body.WriteString("  OPTIONAL { ?recipe schema:name ?name . }\n")
	body.WriteString("  OPTIONAL { ?recipe recipeKG:hasUSDAScore ?usdascore . }\n")

	var query strings.Builder
	query.WriteString(queryPrefixes)
	query.WriteString("\nSELECT DISTINCT ?recipe ?name ?usdascore\nWHERE {\n")
	query.WriteString(body.String())
	query.WriteString("}\nORDER BY ?name\n")
	fmt.Fprintf(&query, "LIMIT %d\n", limit)
	return query.String()
}

// DetailQuery 組出抓取單一食譜全部可用資訊的查詢
// 呼叫前必須先以 ValidateRecipeURI 驗證 uri
func DetailQuery(recipeURI string) string {
	var query strings.Builder
	query.WriteString(queryPrefixes)
	query.WriteString(`
SELECT DISTINCT
  ?name
  ?usdascore
  ?calAmount
  ?description
  ?recipeYield
  ?prepTime
  ?cookTime
  ?totalTime
  ?ingredientName
  ?ingredientType
  ?dietaryRestriction
  ?nutritionalProperty
  ?nutritionalAmount
  ?nutritionalUnit
  ?servingSize
  ?servingSizeUnit
WHERE {
`)
	ref := "<" + recipeURI + ">"
	fmt.Fprintf(&query, "  %s a schema:Recipe .\n\n", ref)
	fmt.Fprintf(&query, "  OPTIONAL { %s schema:name ?name . }\n", ref)
	fmt.Fprintf(&query, "  OPTIONAL { %s recipeKG:hasUSDAScore ?usdascore . }\n", ref)
	fmt.Fprintf(&query, "  OPTIONAL { %s schema:description ?description . }\n", ref)
	fmt.Fprintf(&query, "  OPTIONAL { %s schema:recipeYield ?recipeYield . }\n", ref)
	fmt.Fprintf(&query, "  OPTIONAL { %s schema:prepTime ?prepTime . }\n", ref)
	fmt.Fprintf(&query, "  OPTIONAL { %s schema:cookTime ?cookTime . }\n", ref)
	fmt.Fprintf(&query, "  OPTIONAL { %s schema:totalTime ?totalTime . }\n\n", ref)
	fmt.Fprintf(&query, `  OPTIONAL {
    %s food:hasIngredient ?ingredient .
    ?ingredient rdf:type ?ingredientType .
    OPTIONAL { ?ingredient schema:name ?ingredientName . }
  }

`, ref)
	fmt.Fprintf(&query, "  OPTIONAL { %s recipeKG:hasDietaryRestriction ?dietaryRestriction . }\n\n", ref)
	fmt.Fprintf(&query, `  OPTIONAL {
    %s recipeKG:hasNutritionalInformation ?nut .
    ?nut recipeKG:hasCalorificData ?cal .
    ?cal recipeKG:hasAmount ?calAmount .
    OPTIONAL { ?nut recipeKG:hasServingSize ?servingSize . }
    OPTIONAL { ?nut recipeKG:hasServingSizeUnit ?servingSizeUnit . }
  }

`, ref)
	fmt.Fprintf(&query, `  OPTIONAL {
    %s recipeKG:hasNutritionalInformation ?nutInfo .
    ?nutInfo ?nutritionalProperty ?nutritionalDataNode .
    FILTER (
      STRSTARTS(STR(?nutritionalProperty), STR(recipeKG:)) &&
      ?nutritionalProperty != recipeKG:hasCalorificData &&
      ?nutritionalProperty != recipeKG:hasNutritionalInformation &&
      (
        ?nutritionalProperty = recipeKG:hasCarbohydrateData ||
        ?nutritionalProperty = recipeKG:hasFatData ||
        ?nutritionalProperty = recipeKG:hasProteinData ||
        ?nutritionalProperty = recipeKG:hasFiberData ||
        ?nutritionalProperty = recipeKG:hasSugarData ||
        ?nutritionalProperty = recipeKG:hasSodiumData ||
        ?nutritionalProperty = recipeKG:hasCholesterolData ||
        ?nutritionalProperty = recipeKG:hasSaturatedFatData ||
        ?nutritionalProperty = recipeKG:hasVitaminAData ||
        ?nutritionalProperty = recipeKG:hasVitaminCData ||
        ?nutritionalProperty = recipeKG:hasCalciumData ||
        ?nutritionalProperty = recipeKG:hasIronData ||
        ?nutritionalProperty = recipeKG:hasZincData ||
        ?nutritionalProperty = recipeKG:hasPotassiumData ||
        ?nutritionalProperty = recipeKG:hasMagnesiumData
      )
    )
    ?nutritionalDataNode recipeKG:hasAmount ?nutritionalAmount .
    OPTIONAL { ?nutritionalDataNode recipeKG:hasUnit ?nutritionalUnit . }
  }
`, ref)
	query.WriteString("}\nORDER BY ?ingredientName\n")
	return query.String()
}

// ValidateRecipeURI 檢查食譜 URI 可安全嵌入查詢：http/https 且不含引號、角括號與空白
func ValidateRecipeURI(uri string) error {
	if uri == "" {
		return common.ErrInvalidRecipeURI
	}
	if strings.ContainsAny(uri, "<>\"\\ \t\r\n") {
		return common.ErrInvalidRecipeURI
	}
	parsed, err := url.Parse(uri)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return common.ErrInvalidRecipeURI
	}
	return nil
}

// categorySlug 將分類名稱轉為 URI 片段，只保留小寫英數與連字號
func categorySlug(category string) string {
	slug := strings.ToLower(strings.TrimSpace(category))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")

	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

func escapeLiteral(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}
