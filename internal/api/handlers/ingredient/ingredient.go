package ingredient

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	ingredientService "foodkg-recommender/internal/core/ingredient"
	"foodkg-recommender/internal/infrastructure/config"
	"foodkg-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchRequest 食材比對請求，省略的參數使用引擎預設值
type MatchRequest struct {
	Ingredients    []string `json:"ingredients" binding:"required,min=1"` // 使用者輸入的食材名稱
	Cutoff         *float64 `json:"cutoff,omitempty"`                     // 模糊比對最低相似度
	HighSimilarity *float64 `json:"high_similarity,omitempty"`            // 多重匹配門檻
	MaxCandidates  *int     `json:"max_candidates,omitempty"`             // 每個變形的候選數上限
}

// MatchResponse 食材比對結果
type MatchResponse struct {
	Matches []ingredientService.MatchGroup `json:"matches"`
	Matched []string                       `json:"matched"`
}

// ListResponse 詞彙表內容
type ListResponse struct {
	Ingredients []string   `json:"ingredients"`
	Count       int        `json:"count"`
	LoadedAt    *time.Time `json:"loaded_at,omitempty"`
}

// SuggestResponse 自動補全結果
type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// Handler 食材處理程序
type Handler struct {
	vocabulary *ingredientService.Service
	config     *config.Config
}

// NewHandler 創建新的食材處理程序
func NewHandler(vocabulary *ingredientService.Service, cfg *config.Config) *Handler {
	return &Handler{
		vocabulary: vocabulary,
		config:     cfg,
	}
}

// HandleList 返回完整的標準食材詞彙表
func (h *Handler) HandleList(c *gin.Context) {
	snapshot := h.vocabulary.Snapshot()

	response := ListResponse{
		Ingredients: snapshot.Names(),
		Count:       snapshot.Len(),
	}
	if response.Ingredients == nil {
		response.Ingredients = []string{}
	}
	if loadedAt := snapshot.LoadedAt(); !loadedAt.IsZero() {
		response.LoadedAt = &loadedAt
	}

	c.JSON(http.StatusOK, response)
}

// HandleSuggest 依前綴子序列自動補全食材名稱
func (h *Handler) HandleSuggest(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	limit := h.config.Matcher.SuggestLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		// 設定值為上限，參數只能調小
		if parsed < limit {
			limit = parsed
		}
	}

	c.JSON(http.StatusOK, SuggestResponse{
		Query:       query,
		Suggestions: h.vocabulary.Suggest(query, limit),
	})
}

// HandleMatch 將輸入食材比對到詞彙表的標準名稱
func (h *Handler) HandleMatch(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理食材比對請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	opts := ingredientService.DefaultOptions()
	if req.Cutoff != nil {
		opts.Cutoff = *req.Cutoff
	}
	if req.HighSimilarity != nil {
		opts.HighSimilarity = *req.HighSimilarity
	}
	if req.MaxCandidates != nil {
		opts.MaxCandidates = *req.MaxCandidates
	}

	groups := h.vocabulary.Match(req.Ingredients, opts)
	matched := ingredientService.Flatten(groups)

	common.LogInfo("食材比對完成",
		zap.String("request_id", requestID),
		zap.Int("輸入數", len(req.Ingredients)),
		zap.Int("命中數", len(matched)),
	)

	c.JSON(http.StatusOK, MatchResponse{
		Matches: groups,
		Matched: matched,
	})
}

// HandleReload 重新從知識圖譜載入詞彙表
func (h *Handler) HandleReload(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始重新載入食材詞彙表",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	if err := h.vocabulary.Load(c.Request.Context()); err != nil {
		common.LogError("食材詞彙表重載失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Vocabulary reload failed"})
		return
	}

	snapshot := h.vocabulary.Snapshot()
	loadedAt := snapshot.LoadedAt()

	common.LogInfo("食材詞彙表重載成功",
		zap.String("request_id", requestID),
		zap.Int("數量", snapshot.Len()),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"count":     snapshot.Len(),
		"loaded_at": loadedAt,
	})
}
