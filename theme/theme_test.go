package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantKey string
		found   bool
	}{
		{name: "exact key", key: "grocery", wantKey: "grocery", found: true},
		{name: "case and spaces", key: "  Beverages ", wantKey: "beverages", found: true},
		{name: "unknown falls back", key: "jewelry", wantKey: DefaultKey, found: false},
		{name: "empty falls back", key: "", wantKey: DefaultKey, found: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(tt.key)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.wantKey, got.Key)
		})
	}
}

func TestRegistryThemesAreComplete(t *testing.T) {
	variants := map[CoverVariant]bool{CoverClassic: true, CoverSplit: true, CoverBanner: true, CoverBold: true}
	for _, key := range Keys() {
		th, ok := Lookup(key)
		require.True(t, ok, key)
		assert.Equal(t, key, th.Key)
		assert.Greater(t, th.CardHeightMM, 40.0, key)
		assert.True(t, variants[th.Cover], "theme %s has unknown cover %q", key, th.Cover)
		assert.NotEmpty(t, th.HeaderGlyph, key)
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	th, _ := Lookup("general")
	th.Primary = Color{}
	again, _ := Lookup("general")
	assert.NotEqual(t, Color{}, again.Primary)
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#1f3a5f")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0x1f, G: 0x3a, B: 0x5f}, c)
	assert.Equal(t, "#1f3a5f", c.String())

	_, err = ParseHex("12345")
	assert.Error(t, err)
	_, err = ParseHex("zzzzzz")
	assert.Error(t, err)
}
