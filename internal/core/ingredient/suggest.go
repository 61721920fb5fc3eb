package ingredient

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest 在詞彙表中做子序列自動補全，返回不超過 limit 個建議
// 大小寫與變音符號不敏感，結果按編輯距離由近至遠排列
func Suggest(query string, vocabulary []string, limit int) []string {
	if query == "" || limit <= 0 {
		return []string{}
	}

	ranks := fuzzy.RankFindNormalizedFold(query, vocabulary)
	sort.Stable(ranks)

	if len(ranks) > limit {
		ranks = ranks[:limit]
	}

	suggestions := make([]string, len(ranks))
	for i, rank := range ranks {
		suggestions[i] = rank.Target
	}
	return suggestions
}
