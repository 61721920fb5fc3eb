package health

import (
	"net/http"
	"runtime"
	"time"

	"foodkg-recommender/internal/core/ingredient"
	"foodkg-recommender/internal/core/kg/cache"
	"foodkg-recommender/internal/infrastructure/config"
	"foodkg-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Version    string                 `json:"version"`
	Runtime    map[string]interface{} `json:"runtime"`
	Vocabulary *VocabularyStatus      `json:"vocabulary,omitempty"`
	Cache      *CacheStatus           `json:"cache,omitempty"`
}

// VocabularyStatus 詞彙表狀態
type VocabularyStatus struct {
	Loaded   bool       `json:"loaded"`
	Count    int        `json:"count"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

// CacheStatus 快取狀態
type CacheStatus struct {
	Enabled bool `json:"enabled"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	// 獲取配置
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	config, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// 構建響應
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	// 詞彙表狀態
	if vocabSvc, ok := c.Get("vocabulary_service"); ok {
		if vocabulary, ok := vocabSvc.(*ingredient.Service); ok {
			snapshot := vocabulary.Snapshot()
			status := &VocabularyStatus{
				Loaded: vocabulary.Loaded(),
				Count:  snapshot.Len(),
			}
			if loadedAt := snapshot.LoadedAt(); !loadedAt.IsZero() {
				status.LoadedAt = &loadedAt
			}
			response.Vocabulary = status
		}
	}

	// 快取狀態
	if cacheSvc, ok := c.Get("cache_service"); ok {
		if cacheService, ok := cacheSvc.(*cache.Service); ok {
			response.Cache = &CacheStatus{Enabled: cacheService.Enabled()}
		}
	}

	// 記錄請求
	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器
// 詞彙表尚未載入時回報未就緒，讓負載均衡器暫停導流
func ReadinessCheck(c *gin.Context) {
	if vocabSvc, exists := c.Get("vocabulary_service"); exists {
		if vocabulary, ok := vocabSvc.(*ingredient.Service); ok && vocabulary.Loaded() {
			c.JSON(http.StatusOK, gin.H{
				"status": "ready",
			})
			return
		}
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status": "not_ready",
		"reason": "vocabulary not loaded",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
