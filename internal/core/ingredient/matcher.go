package ingredient

import (
	"sort"
	"strings"
)

// 比對參數預設值
const (
	DefaultCutoff         = 0.6
	DefaultHighSimilarity = 0.6
	DefaultMaxCandidates  = 10
)

// Options 比對參數
// 調用方需自行確保 HighSimilarity >= Cutoff，引擎按字面值比較不做驗證
type Options struct {
	// Cutoff 候選納入的最低相似度（0 為不限，1 為完全相同）
	Cutoff float64 `json:"cutoff"`
	// HighSimilarity 多重匹配門檻，達標的候選全數返回
	HighSimilarity float64 `json:"high_similarity"`
	// MaxCandidates 每個變形檢索的候選數上限
	MaxCandidates int `json:"max_candidates"`
}

// DefaultOptions 返回預設比對參數
func DefaultOptions() Options {
	return Options{
		Cutoff:         DefaultCutoff,
		HighSimilarity: DefaultHighSimilarity,
		MaxCandidates:  DefaultMaxCandidates,
	}
}

// MatchGroup 單一輸入的比對結果，找不到時 Matches 為空列表
type MatchGroup struct {
	Input   string   `json:"input"`
	Matches []string `json:"matches"`
}

// Match 將使用者輸入的食材名稱比對到詞彙表中的標準名稱
// 每個輸入恰好產生一個結果，順序與輸入一致；詞彙表為空時所有結果為空
func Match(inputs []string, vocabulary []string, opts Options) []MatchGroup {
	// 大小寫不敏感索引：鍵位置取首次出現，同鍵值取最後一次出現
	index := make(map[string]string, len(vocabulary))
	keys := make([]string, 0, len(vocabulary))
	for _, name := range vocabulary {
		lower := strings.ToLower(name)
		if _, ok := index[lower]; !ok {
			keys = append(keys, lower)
		}
		index[lower] = name
	}

	groups := make([]MatchGroup, 0, len(inputs))
	for _, input := range inputs {
		groups = append(groups, MatchGroup{
			Input:   input,
			Matches: matchOne(input, index, keys, opts),
		})
	}
	return groups
}

// Flatten 依序串接所有比對結果中的匹配名稱，跨輸入不去重
func Flatten(groups []MatchGroup) []string {
	matched := make([]string, 0)
	for _, group := range groups {
		matched = append(matched, group.Matches...)
	}
	return matched
}

func matchOne(input string, index map[string]string, keys []string, opts Options) []string {
	inputLower := strings.ToLower(strings.TrimSpace(input))
	variants := Variants(input)

	// 精確匹配：直接命中後再補入其單複數變形
	if canonical, ok := index[inputLower]; ok {
		return withVariantClosure(canonical, index)
	}

	// 以輸入的變形做精確查找，第一個命中者為準
	for _, variant := range variants {
		if canonical, ok := index[variant]; ok {
			return withVariantClosure(canonical, index)
		}
	}

	// 模糊匹配：對每個變形檢索候選後取聯集（依出現順序去重）
	candidates := make([]string, 0)
	seen := make(map[string]struct{})
	for _, variant := range variants {
		for _, candidate := range closestMatches(variant, keys, opts.MaxCandidates, opts.Cutoff) {
			if _, ok := seen[candidate]; ok {
				continue
			}
			seen[candidate] = struct{}{}
			candidates = append(candidates, candidate)
		}
	}
	if len(candidates) == 0 {
		return []string{}
	}

	// 每個候選取與輸入及所有變形相比的最高相似度
	scores := make([]float64, len(candidates))
	for i, candidate := range candidates {
		best := ratio(inputLower, candidate)
		for _, variant := range variants {
			if s := ratio(variant, candidate); s > best {
				best = s
			}
		}
		scores[i] = best
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	// 達到高相似度門檻的候選全數返回，否則只取最佳者
	matches := make([]string, 0, 1)
	for _, idx := range order {
		if scores[idx] >= opts.HighSimilarity {
			matches = append(matches, index[candidates[idx]])
		}
	}
	if len(matches) == 0 {
		matches = append(matches, index[candidates[order[0]]])
	}
	return matches
}

// withVariantClosure 返回匹配到的標準名稱，並補入詞彙表中存在的單複數變形
func withVariantClosure(canonical string, index map[string]string) []string {
	matches := []string{canonical}
	seen := map[string]struct{}{canonical: {}}
	for _, variant := range Variants(canonical) {
		hit, ok := index[variant]
		if !ok {
			continue
		}
		if _, dup := seen[hit]; dup {
			continue
		}
		seen[hit] = struct{}{}
		matches = append(matches, hit)
	}
	return matches
}
