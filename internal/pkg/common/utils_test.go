package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"基本拆解", "tomato,onion", []string{"tomato", "onion"}},
		{"去除空白", " tomato , onion ", []string{"tomato", "onion"}},
		{"跳過空欄位", "tomato,,onion,", []string{"tomato", "onion"}},
		{"大小寫不敏感去重", "Tomato,tomato,TOMATO", []string{"Tomato"}},
		{"保留首次出現順序", "onion,tomato,onion", []string{"onion", "tomato"}},
		{"空輸入", "", []string{}},
		{"只有分隔符", " , , ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitCSV(tt.input))
		})
	}
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeSpace("  a \t b\n\nc "))
	assert.Equal(t, "", NormalizeSpace("   "))
	assert.Equal(t, "SELECT ?s WHERE { ?s ?p ?o }", NormalizeSpace("SELECT ?s\nWHERE {\n  ?s ?p ?o\n}"))
}

func TestGenerateUUID(t *testing.T) {
	first := GenerateUUID()
	second := GenerateUUID()

	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}
