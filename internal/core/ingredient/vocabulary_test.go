package ingredient

import (
	"context"
	"errors"
	"strings"
	"testing"

	"foodkg-recommender/internal/core/kg/sparql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	results *sparql.Results
	err     error
	queries []string
}

func (f *fakeExecutor) Select(ctx context.Context, query string) (*sparql.Results, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func vocabularyResults(names ...string) *sparql.Results {
	results := &sparql.Results{
		Head: sparql.Head{Vars: []string{"ingredient"}},
	}
	for _, name := range names {
		results.Results.Bindings = append(results.Results.Bindings, sparql.Binding{
			"ingredient": sparql.Value{Type: "literal", Value: name},
		})
	}
	return results
}

func TestVocabularyServiceStartsEmpty(t *testing.T) {
	service := NewService(&fakeExecutor{})

	assert.False(t, service.Loaded())
	assert.Equal(t, 0, service.Snapshot().Len())
	assert.True(t, service.Snapshot().LoadedAt().IsZero())

	groups := service.Match([]string{"tomato"}, DefaultOptions())
	require.Len(t, groups, 1)
	assert.Empty(t, groups[0].Matches)
	assert.Empty(t, service.Suggest("tom", 10))
}

func TestVocabularyServiceLoad(t *testing.T) {
	executor := &fakeExecutor{results: vocabularyResults("Chickpea", "Onion", "Tomato", "Tomatoes")}
	service := NewService(executor)

	require.NoError(t, service.Load(context.Background()))

	assert.True(t, service.Loaded())
	assert.False(t, service.Snapshot().LoadedAt().IsZero())
	assert.Equal(t, []string{"Chickpea", "Onion", "Tomato", "Tomatoes"}, service.Snapshot().Names())

	require.Len(t, executor.queries, 1)
	assert.True(t, strings.Contains(executor.queries[0], "food:hasIngredient"))
	assert.True(t, strings.Contains(executor.queries[0], "ORDER BY ?ingredient"))
}

func TestVocabularyServiceLoadFailureKeepsSnapshot(t *testing.T) {
	executor := &fakeExecutor{results: vocabularyResults("Tomato")}
	service := NewService(executor)
	require.NoError(t, service.Load(context.Background()))

	executor.err = errors.New("endpoint unreachable")
	err := service.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch ingredient vocabulary")

	// 載入失敗時舊快照不受影響
	assert.True(t, service.Loaded())
	assert.Equal(t, []string{"Tomato"}, service.Snapshot().Names())
}

func TestVocabularyServiceReloadReplacesSnapshot(t *testing.T) {
	executor := &fakeExecutor{results: vocabularyResults("Tomato")}
	service := NewService(executor)
	require.NoError(t, service.Load(context.Background()))

	executor.results = vocabularyResults("Basil", "Garlic")
	require.NoError(t, service.Load(context.Background()))

	assert.Equal(t, []string{"Basil", "Garlic"}, service.Snapshot().Names())
}

func TestVocabularyServiceLoadSkipsUnboundRows(t *testing.T) {
	results := vocabularyResults("Tomato")
	results.Results.Bindings = append(results.Results.Bindings, sparql.Binding{
		"other": sparql.Value{Type: "literal", Value: "ignored"},
	})
	service := NewService(&fakeExecutor{results: results})

	require.NoError(t, service.Load(context.Background()))
	assert.Equal(t, []string{"Tomato"}, service.Snapshot().Names())
}

func TestVocabularyServiceMatchAndSuggest(t *testing.T) {
	executor := &fakeExecutor{results: vocabularyResults("Chickpea", "Onion", "Tomato", "Tomatoes")}
	service := NewService(executor)
	require.NoError(t, service.Load(context.Background()))

	groups := service.Match([]string{"tomato", "chikpea"}, Options{Cutoff: 0.6, HighSimilarity: 0.8, MaxCandidates: 10})
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"Tomato", "Tomatoes"}, groups[0].Matches)
	assert.Equal(t, []string{"Chickpea"}, groups[1].Matches)

	assert.Equal(t, []string{"Tomato", "Tomatoes"}, service.Suggest("tomato", 10))
}
