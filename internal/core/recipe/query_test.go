package recipe

import (
	"testing"

	"foodkg-recommender/internal/core/ingredient"
	"foodkg-recommender/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchQuerySingleGroup(t *testing.T) {
	groups := []ingredient.MatchGroup{
		{Input: "tomato", Matches: []string{"Tomato", "Tomatoes"}},
	}

	query := SearchQuery(groups, "", 50)
	require.NotEmpty(t, query)

	assert.Contains(t, query, "SELECT DISTINCT ?recipe ?name ?usdascore")
	assert.Contains(t, query, "?recipe food:hasIngredient ?ing0 .")
	assert.Contains(t, query, "?ing0 rdf:type ?type0 .")
	assert.Contains(t, query, "STRSTARTS(STR(?type0), STR(healsIng:))")
	assert.Contains(t, query, "STRSTARTS(STR(?type0), STR(recipeIng:))")
	assert.Contains(t, query, `REPLACE(STR(?type0), "^.*/", "") IN ("Tomato", "Tomatoes")`)
	assert.Contains(t, query, "ORDER BY ?name")
	assert.Contains(t, query, "LIMIT 50")
	assert.NotContains(t, query, "belongsTo")
}

func TestSearchQuerySkipsEmptyGroups(t *testing.T) {
	groups := []ingredient.MatchGroup{
		{Input: "tomato", Matches: []string{"Tomato"}},
		{Input: "xyz123", Matches: []string{}},
		{Input: "onion", Matches: []string{"Onion"}},
	}

	query := SearchQuery(groups, "", 10)

	// 空組不佔變數編號，後續組依序遞補
	assert.Contains(t, query, `IN ("Tomato")`)
	assert.Contains(t, query, "?ing1 rdf:type ?type1 .")
	assert.Contains(t, query, `IN ("Onion")`)
	assert.NotContains(t, query, "?ing2")
}

func TestSearchQueryAllGroupsEmpty(t *testing.T) {
	groups := []ingredient.MatchGroup{
		{Input: "xyz", Matches: []string{}},
		{Input: "abc", Matches: []string{}},
	}
	assert.Equal(t, "", SearchQuery(groups, "", 10))
	assert.Equal(t, "", SearchQuery(nil, "", 10))
}

func TestSearchQueryCategory(t *testing.T) {
	groups := []ingredient.MatchGroup{
		{Input: "tomato", Matches: []string{"Tomato"}},
	}

	query := SearchQuery(groups, "Main Dish", 10)
	assert.Contains(t, query, "?recipe recipeKG:belongsTo ?recipeCategory .")
	assert.Contains(t, query, "?recipeCategory rdfs:subClassOf* <http://purl.org/recipekg/categories/main-dish/> .")

	// 清洗後為空的分類視同未指定
	query = SearchQuery(groups, "!!!", 10)
	assert.NotContains(t, query, "belongsTo")
}

func TestSearchQueryEscapesLiterals(t *testing.T) {
	groups := []ingredient.MatchGroup{
		{Input: "weird", Matches: []string{`To"mato`, `Back\slash`}},
	}

	query := SearchQuery(groups, "", 10)
	assert.Contains(t, query, `"To\"mato"`)
	assert.Contains(t, query, `"Back\\slash"`)
}

func TestCategorySlug(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"Main Dish", "main-dish"},
		{"main-dish", "main-dish"},
		{"Side_Dish", "side-dish"},
		{"  Desserts  ", "desserts"},
		{"Soup!!", "soup"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := categorySlug(tt.category); got != tt.want {
			t.Errorf("categorySlug(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestDetailQuery(t *testing.T) {
	query := DetailQuery("http://purl.org/recipekg/recipe/tomato-soup")

	assert.Contains(t, query, "<http://purl.org/recipekg/recipe/tomato-soup> a schema:Recipe .")
	assert.Contains(t, query, "OPTIONAL { <http://purl.org/recipekg/recipe/tomato-soup> schema:name ?name . }")
	assert.Contains(t, query, "recipeKG:hasUSDAScore ?usdascore")
	assert.Contains(t, query, "?cal recipeKG:hasAmount ?calAmount .")
	assert.Contains(t, query, "?nut recipeKG:hasServingSize ?servingSize .")
	assert.Contains(t, query, "?ingredient rdf:type ?ingredientType .")
	assert.Contains(t, query, "recipeKG:hasDietaryRestriction ?dietaryRestriction")
	assert.Contains(t, query, "?nutritionalProperty = recipeKG:hasProteinData")
	assert.Contains(t, query, "?nutritionalProperty = recipeKG:hasMagnesiumData")
	assert.Contains(t, query, "ORDER BY ?ingredientName")
}

func TestValidateRecipeURI(t *testing.T) {
	valid := []string{
		"http://purl.org/recipekg/recipe/tomato-soup",
		"https://example.org/recipes/42",
	}
	for _, uri := range valid {
		assert.NoError(t, ValidateRecipeURI(uri), uri)
	}

	invalid := []string{
		"",
		"ftp://example.org/recipe",
		"javascript:alert(1)",
		"/relative/path",
		"http://",
		"http://example.org/a b",
		`http://example.org/re"cipe`,
		"http://example.org/recipe>",
		"http://example.org/<recipe",
		"http://example.org/re\\cipe",
		"not a uri",
	}
	for _, uri := range invalid {
		err := ValidateRecipeURI(uri)
		require.Error(t, err, uri)
		assert.ErrorIs(t, err, common.ErrInvalidRecipeURI, uri)
	}
}
