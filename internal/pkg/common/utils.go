package common

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// SplitCSV 拆解逗號分隔的輸入，去除空白並依首次出現順序去重
func SplitCSV(input string) []string {
	parts := strings.Split(input, ",")
	seen := make(map[string]struct{}, len(parts))
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		key := strings.ToLower(token)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}

// NormalizeSpace 將連續空白壓縮為單一空格（快取鍵用）
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
