package fetchers

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"feed format", "31 Jul 2025 1321 GMT", "31 Jul 2025 13:21 UTC"},
		{"leading whitespace in date", "   1 Aug 2025 0005 GMT", "1 Aug 2025 00:05 UTC"},
		{"no GMT token", "garbage", "garbage"},
		{"too short before GMT", "1 GMT", "1 GMT"},
		{"exactly five before GMT", "1321 GMT", " 13:21 UTC"},
		{"empty", "", ""},
		{"lowercase gmt is not matched", "31 Jul 2025 1321 gmt", "31 Jul 2025 1321 gmt"},
		{"no space before GMT", "31 Jul 2025 13:21GMT", "31 Jul 2025 13:21GMT"},
		{"non-digit time", "31 Jul 2025 13h2 GMT", "31 Jul 2025 13h2 GMT"},
		{"multi-byte rune before time", "31 Jül 2025 é321 GMT", "31 Jül 2025 é321 GMT"},
		{"multi-byte date is kept whole", "31 Jül 2025 1321 GMT", "31 Jül 2025 13:21 UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTimestamp(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
