package sparql

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"foodkg-recommender/internal/infrastructure/config"
	"foodkg-recommender/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client SPARQL 端點客戶端
type Client struct {
	config *config.SPARQLConfig
	client *resty.Client
}

// NewClient 創建 SPARQL 客戶端
func NewClient(cfg *config.SPARQLConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/sparql-results+json").
		SetHeader("User-Agent", "foodkg-recommender")

	switch cfg.AuthType {
	case "BASIC":
		if cfg.User != "" && cfg.Password != "" {
			client.SetBasicAuth(cfg.User, cfg.Password)
		}
	case "DIGEST":
		common.LogWarn("SPARQL digest 認證不支援，將以未認證方式連線",
			zap.String("endpoint", cfg.Endpoint))
	}
	// Token 設定時以 Bearer 送出，優先於其他認證方式
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &Client{
		config: cfg,
		client: client,
	}
}

// Select 執行 SELECT 查詢並解析 JSON 結果
func (c *Client) Select(ctx context.Context, query string) (*Results, error) {
	start := time.Now()

	req := c.client.R().SetContext(ctx)

	var resp *resty.Response
	var err error
	if c.config.Method == http.MethodPost {
		resp, err = req.
			SetFormData(map[string]string{"query": query}).
			Post("")
	} else {
		resp, err = req.
			SetQueryParam("query", query).
			Get("")
	}
	duration := time.Since(start)

	if err != nil {
		common.LogKGQuery(query, duration, err, "")
		return nil, fmt.Errorf("failed to query sparql endpoint: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		err = fmt.Errorf("sparql endpoint returned status %d: %s",
			resp.StatusCode(), truncate(resp.String(), 200))
		common.LogKGQuery(query, duration, err, "")
		return nil, err
	}

	var results Results
	if err := common.ParseJSONBytes(resp.Body(), &results); err != nil {
		return nil, fmt.Errorf("failed to parse sparql response: %w", err)
	}

	common.LogDebug("SPARQL 查詢完成",
		zap.Duration("耗時", duration),
		zap.Int("結果列數", len(results.Results.Bindings)),
		zap.String("query", query),
	)

	return &results, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
