package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodkg-recommender/internal/core/ingredient"
	"foodkg-recommender/internal/core/kg/cache"
	"foodkg-recommender/internal/core/kg/sparql"
	"foodkg-recommender/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	results *sparql.Results
}

func (f *fakeExecutor) Select(ctx context.Context, query string) (*sparql.Results, error) {
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

func healthRouter(cfg *config.Config, vocabulary *ingredient.Service, cacheService *cache.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if cfg != nil {
			c.Set("config", cfg)
		}
		if vocabulary != nil {
			c.Set("vocabulary_service", vocabulary)
		}
		if cacheService != nil {
			c.Set("cache_service", cacheService)
		}
		c.Next()
	})
	router.GET("/health", HealthCheck)
	router.GET("/ready", ReadinessCheck)
	router.GET("/live", LivenessCheck)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func TestHealthCheck(t *testing.T) {
	vocabulary := ingredient.NewService(&fakeExecutor{results: vocabularyResults("Tomato", "Onion")})
	require.NoError(t, vocabulary.Load(context.Background()))

	cacheService, err := cache.NewService(&config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Version = "1.2.3"

	resp := get(healthRouter(cfg, vocabulary, cacheService), "/health")

	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "1.2.3", body["version"])

	vocabStatus, ok := body["vocabulary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, vocabStatus["loaded"])
	assert.Equal(t, float64(2), vocabStatus["count"])
	assert.NotEmpty(t, vocabStatus["loaded_at"])

	cacheStatus, ok := body["cache"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, cacheStatus["enabled"])
}

func TestHealthCheckWithoutConfig(t *testing.T) {
	resp := get(healthRouter(nil, nil, nil), "/health")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "Configuration not found")
}

func TestReadinessCheck(t *testing.T) {
	vocabulary := ingredient.NewService(&fakeExecutor{results: vocabularyResults("Tomato")})
	cfg := &config.Config{}
	router := healthRouter(cfg, vocabulary, nil)

	// 詞彙表載入前未就緒
	resp := get(router, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), "not_ready")

	require.NoError(t, vocabulary.Load(context.Background()))

	resp = get(router, "/ready")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "ready")
}

func TestLivenessCheck(t *testing.T) {
	resp := get(healthRouter(nil, nil, nil), "/live")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "alive")
}
