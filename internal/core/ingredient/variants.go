package ingredient

import "strings"

// variantRule 一條單複數變形規則
// 同一 chain 內依序只套用第一條適用的規則；applies 成立而 expand 為空時該鏈同樣結束
type variantRule struct {
	chain   int
	applies func(word string) bool
	expand  func(word string) []string
}

var variantRules = []variantRule{
	// 單數化
	{
		// berries -> berry
		chain:   0,
		applies: func(w string) bool { return strings.HasSuffix(w, "ies") && len(w) > 3 },
		expand:  func(w string) []string { return []string{w[:len(w)-3] + "y"} },
	},
	{
		// boxes -> box / boxe；es 前為母音時不產生任何形式
		chain:   0,
		applies: func(w string) bool { return strings.HasSuffix(w, "es") && len(w) > 3 },
		expand: func(w string) []string {
			if isVowel(w[len(w)-3]) {
				return nil
			}
			return []string{w[:len(w)-2], w[:len(w)-1]}
		},
	},
	{
		// carrots -> carrot
		chain:   0,
		applies: func(w string) bool { return strings.HasSuffix(w, "s") && len(w) > 1 },
		expand:  func(w string) []string { return []string{w[:len(w)-1]} },
	},
	// 複數化
	{
		// tomato -> tomatos（樸素複數）
		chain:   1,
		applies: func(w string) bool { return !strings.HasSuffix(w, "s") },
		expand:  func(w string) []string { return []string{w + "s"} },
	},
	{
		// berry -> berries
		chain:   2,
		applies: func(w string) bool { return strings.HasSuffix(w, "y") && len(w) > 1 },
		expand:  func(w string) []string { return []string{w[:len(w)-1] + "ies"} },
	},
	{
		// tomato -> tomatoes、box -> boxes；已以 es 結尾時不再添加
		chain: 2,
		applies: func(w string) bool {
			return strings.HasSuffix(w, "o") || strings.HasSuffix(w, "ch") ||
				strings.HasSuffix(w, "sh") || strings.HasSuffix(w, "x")
		},
		expand: func(w string) []string {
			if strings.HasSuffix(w, "es") {
				return nil
			}
			return []string{w + "es"}
		},
	},
}

// Variants 產生一個詞的單複數變形，用於提高精確匹配的召回率
// 第一個元素固定為小寫去空白後的原詞，其餘依規則順序排列並去重
func Variants(word string) []string {
	w := strings.ToLower(strings.TrimSpace(word))

	forms := []string{w}
	seen := map[string]struct{}{w: {}}
	applied := make(map[int]bool, 3)

	for _, rule := range variantRules {
		if applied[rule.chain] || !rule.applies(w) {
			continue
		}
		applied[rule.chain] = true
		for _, form := range rule.expand(w) {
			if _, ok := seen[form]; ok {
				continue
			}
			seen[form] = struct{}{}
			forms = append(forms, form)
		}
	}

	return forms
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
