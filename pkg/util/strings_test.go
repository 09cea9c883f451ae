package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateBody(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", MaxLogBodySize+10)

	tests := []struct {
		name    string
		data    string
		maxSize int
		want    string
	}{
		{"short body unchanged", "<soap:Envelope/>", 100, "<soap:Envelope/>"},
		{"exact size unchanged", "abcd", 4, "abcd"},
		{"truncated", "abcdef", 3, "abc...(truncated)"},
		{"empty", "", 10, ""},
		{"cut backs off to rune start", "ab\u00e9cd", 3, "ab...(truncated)"},
		{"cut after multibyte rune", "ab\u00e9cd", 4, "ab\u00e9...(truncated)"},
		{"multibyte rune at start", "\u65e5\u672c", 2, "...(truncated)"},
		{"default limit", long, 0, long[:MaxLogBodySize] + "...(truncated)"},
		{"negative uses default", long, -1, long[:MaxLogBodySize] + "...(truncated)"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TruncateBody(tt.data, tt.maxSize))
		})
	}
}
