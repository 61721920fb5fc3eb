package recipe

import (
	"errors"
	"net/http"

	recipeService "foodkg-recommender/internal/core/recipe"
	"foodkg-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SearchRequest 依食材搜尋食譜的請求
type SearchRequest struct {
	Ingredients string `json:"ingredients" binding:"required"` // 逗號分隔的食材名稱
	Category    string `json:"category,omitempty"`             // 選填的食譜分類
	Limit       int    `json:"limit,omitempty"`                // 回傳筆數上限
}

// Handler 食譜處理程序
type Handler struct {
	searchService *recipeService.SearchService
	detailService *recipeService.DetailService
}

// NewHandler 創建新的食譜處理程序
func NewHandler(searchService *recipeService.SearchService, detailService *recipeService.DetailService) *Handler {
	return &Handler{
		searchService: searchService,
		detailService: detailService,
	}
}

// HandleSearch 依食材搜尋同時包含所有命中食材的食譜
func (h *Handler) HandleSearch(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理食譜搜尋請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tokens := common.SplitCSV(req.Ingredients)
	if len(tokens) == 0 {
		common.LogWarn("食材列表為空",
			zap.String("request_id", requestID),
			zap.String("ingredients", req.Ingredients),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "No ingredients provided"})
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), recipeService.SearchRequest{
		Tokens:   tokens,
		Category: req.Category,
		Limit:    req.Limit,
	})
	if err != nil {
		common.LogError("食譜搜尋失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recipe search failed"})
		return
	}

	common.LogInfo("食譜搜尋成功",
		zap.String("request_id", requestID),
		zap.Int("食譜數", len(result.Recipes)),
	)

	c.JSON(http.StatusOK, result)
}

// HandleDetail 取得單一食譜的完整資訊
func (h *Handler) HandleDetail(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	uri := c.Query("uri")
	common.LogInfo("開始處理食譜詳情請求",
		zap.String("request_id", requestID),
		zap.String("uri", uri),
	)

	detail, err := h.detailService.Fetch(c.Request.Context(), uri)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidRecipeURI):
			common.LogWarn("食譜 URI 無效",
				zap.String("request_id", requestID),
				zap.String("uri", uri),
			)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe URI"})
		case errors.Is(err, common.ErrRecipeNotFound):
			common.LogWarn("找不到食譜",
				zap.String("request_id", requestID),
				zap.String("uri", uri),
			)
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		default:
			common.LogError("食譜詳情查詢失敗",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recipe detail fetch failed"})
		}
		return
	}

	common.LogInfo("食譜詳情查詢成功",
		zap.String("request_id", requestID),
		zap.String("食譜名稱", detail.Name),
	)

	c.JSON(http.StatusOK, detail)
}
