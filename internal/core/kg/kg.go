package kg

import (
	"context"

	"foodkg-recommender/internal/core/kg/sparql"
)

// Executor 定義知識圖譜查詢介面
// 由 kg/service 的快取執行器實現，測試時可注入假實現
type Executor interface {
	// Select 執行 SELECT 查詢並返回解析後的結果
	Select(ctx context.Context, query string) (*sparql.Results, error)
}
