package api

import (
	"context"
	"fmt"
	"foodkg-recommender/internal/api/handlers/health"
	ingredientHandler "foodkg-recommender/internal/api/handlers/ingredient"
	recipeHandler "foodkg-recommender/internal/api/handlers/recipe"
	"foodkg-recommender/internal/api/middleware"
	"foodkg-recommender/internal/core/ingredient"
	"foodkg-recommender/internal/core/kg/cache"
	kgservice "foodkg-recommender/internal/core/kg/service"
	recipeService "foodkg-recommender/internal/core/recipe"
	"foodkg-recommender/internal/infrastructure/config"
	"foodkg-recommender/internal/pkg/common"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)，本服務僅接受 JSON 請求
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheService *cache.Service) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流與重複請求抑制
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	if cfg.DedupEnabled {
		router.Use(middleware.Deduplication(cfg))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("sparql_endpoint", cfg.SPARQL.Endpoint),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化知識圖譜查詢服務
	kgService, err := kgservice.NewService(cfg, cacheService)
	if err != nil || kgService == nil {
		common.LogError("Failed to initialize knowledge graph service", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize knowledge graph service: %w", err)
	}

	// 初始化食材詞彙表服務並預載詞彙表
	// 預載失敗不中止啟動：服務以降級模式運行，之後可透過 reload 補載
	vocabularyService := ingredient.NewService(kgService)
	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.SPARQL.Timeout)
	if err := vocabularyService.Load(loadCtx); err != nil {
		common.LogWarn("Vocabulary preload failed, starting in degraded mode",
			zap.Error(err),
			zap.String("sparql_endpoint", cfg.SPARQL.Endpoint),
		)
	}
	cancel()

	// 初始化食譜服務
	searchService := recipeService.NewSearchService(kgService, vocabularyService, cfg)
	detailService := recipeService.NewDetailService(kgService)
	if searchService == nil || detailService == nil {
		common.LogError("Failed to initialize recipe services: service returned nil",
			zap.Bool("kg_service_initialized", kgService != nil),
			zap.String("environment", cfg.App.Env),
		)
		return nil, fmt.Errorf("failed to initialize recipe services: service returned nil")
	}

	common.LogInfo("Recipe services initialized successfully",
		zap.Bool("kg_service_initialized", kgService != nil),
		zap.Bool("vocabulary_loaded", vocabularyService.Loaded()),
		zap.String("environment", cfg.App.Env),
	)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		// 創建新的請求上下文
		req := c.Request.WithContext(ctx)
		c.Request = req

		// 設置配置
		c.Set("config", cfg)
		common.LogDebug("Configuration injected into context",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)

		// 設置詞彙表與快取服務
		c.Set("vocabulary_service", vocabularyService)
		c.Set("cache_service", cacheService)
		common.LogDebug("Services injected into context",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		ingredientHandlerInstance := ingredientHandler.NewHandler(vocabularyService, cfg)
		recipeHandlerInstance := recipeHandler.NewHandler(searchService, detailService)

		// 註冊食材相關路由
		ingredientGroup := api.Group("/ingredient")
		{
			// 詞彙表列表
			ingredientGroup.GET("/list", ingredientHandlerInstance.HandleList)

			// 自動補全
			ingredientGroup.GET("/suggest", ingredientHandlerInstance.HandleSuggest)

			// 食材名稱比對
			ingredientGroup.POST("/match", ingredientHandlerInstance.HandleMatch)

			// 重載詞彙表
			ingredientGroup.POST("/reload", ingredientHandlerInstance.HandleReload)
		}

		// 註冊食譜相關路由
		recipeGroup := api.Group("/recipe")
		{
			// 依食材搜尋食譜
			recipeGroup.POST("/search", recipeHandlerInstance.HandleSearch)

			// 食譜詳情
			recipeGroup.GET("/detail", recipeHandlerInstance.HandleDetail)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("vocabulary_loaded", vocabularyService.Loaded()),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
