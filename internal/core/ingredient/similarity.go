package ingredient

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"
)

// chars 將字串拆成逐字元序列供 SequenceMatcher 使用
func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// ratio 計算兩字串的相似度（最長匹配區塊比率，0 到 1）
func ratio(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

// closestMatches 從候選中找出與 word 相似度達 cutoff 的前 n 個，相似度高者在前
// 相似度相同時字串大者優先，確保截斷行為可重現
func closestMatches(word string, candidates []string, n int, cutoff float64) []string {
	if n <= 0 {
		return nil
	}

	matcher := difflib.NewMatcher(nil, chars(word))

	type scoredCandidate struct {
		candidate string
		score     float64
	}

	passed := make([]scoredCandidate, 0)
	for _, candidate := range candidates {
		matcher.SetSeq1(chars(candidate))
		// 由粗到細的三段過濾，大部分候選在便宜的上界估算就被剔除
		if matcher.RealQuickRatio() >= cutoff &&
			matcher.QuickRatio() >= cutoff &&
			matcher.Ratio() >= cutoff {
			passed = append(passed, scoredCandidate{candidate, matcher.Ratio()})
		}
	}

	sort.Slice(passed, func(i, j int) bool {
		if passed[i].score != passed[j].score {
			return passed[i].score > passed[j].score
		}
		return passed[i].candidate > passed[j].candidate
	})
	if len(passed) > n {
		passed = passed[:n]
	}

	matches := make([]string, len(passed))
	for i, p := range passed {
		matches[i] = p.candidate
	}
	return matches
}
