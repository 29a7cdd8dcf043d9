package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func runeWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short", in: "Cable USB", max: 60, want: "Cable USB"},
		{name: "exact", in: "abcd", max: 4, want: "abcd"},
		{name: "cut", in: "abcdef", max: 4, want: "abc…"},
		{name: "trailing space before cut", in: "ab  cdef", max: 4, want: "ab…"},
		{name: "multibyte", in: "ñandúñandú", max: 5, want: "ñand…"},
		{name: "collapses whitespace", in: "  a \n b  ", max: 10, want: "a b"},
		{name: "zero", in: "abc", max: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.max))
		})
	}
}

func TestTruncateLongTitleCap(t *testing.T) {
	got := Truncate(strings.Repeat("x", 200), 60)
	assert.Equal(t, 60, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, Ellipsis))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    float64
		maxLines int
		want     []string
	}{
		{name: "fits one line", text: "uno dos", width: 10, maxLines: 2, want: []string{"uno dos"}},
		{name: "two lines", text: "uno dos tres", width: 7, maxLines: 2, want: []string{"uno dos", "tres"}},
		{name: "overflow gets ellipsis", text: "uno dos tres cuatro", width: 7, maxLines: 2, want: []string{"uno dos", "tres…"}},
		{name: "long word split", text: "abcdefghij", width: 4, maxLines: 3, want: []string{"abcd", "efgh", "ij"}},
		{name: "long word overflow", text: "abcdefghij", width: 4, maxLines: 2, want: []string{"abcd", "efg…"}},
		{name: "empty", text: "   ", width: 4, maxLines: 2, want: nil},
		{name: "no lines", text: "abc", width: 4, maxLines: 0, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width, tt.maxLines, runeWidth)
			assert.Equal(t, tt.want, got)
			for _, line := range got {
				assert.LessOrEqual(t, runeWidth(line), tt.width)
			}
		})
	}
}
