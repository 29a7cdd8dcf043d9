// Package theme holds the visual palettes selected by catalog type.
package theme

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Color is an 8-bit RGB color
type Color struct {
	R, G, B uint8
}

// Hex parses "#RRGGBB" (leading # optional). It panics on malformed input
// and is only meant for the static palettes below.
func Hex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses "#RRGGBB" or "RRGGBB"
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// String returns the color as "#rrggbb"
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CoverVariant names the cover page layout
type CoverVariant string

const (
	CoverClassic CoverVariant = "classic"
	CoverSplit   CoverVariant = "split"
	CoverBanner  CoverVariant = "banner"
	CoverBold    CoverVariant = "bold"
)

// Theme is an immutable palette plus the layout knobs tied to a catalog type
type Theme struct {
	Key                string
	Name               string
	Primary            Color
	Secondary          Color
	Accent             Color
	Background         Color
	Text               Color
	Muted              Color
	CategoryBackground Color
	CategoryText       Color
	PriceBackground    Color
	PriceText          Color
	BadgeNew           Color
	BadgeFeatured      Color
	Cover              CoverVariant
	// HeaderGlyph is printed before category names; must be encodable in cp1252.
	HeaderGlyph string
	// CardHeightMM fits an image region of ~55% plus two text lines and the price line.
	CardHeightMM float64
}

// DefaultKey is used when a catalog type is unknown
const DefaultKey = "general"

var registry = map[string]Theme{
	"general": {
		Key:                "general",
		Name:               "General",
		Primary:            Hex("#1f3a5f"),
		Secondary:          Hex("#4d6d9a"),
		Accent:             Hex("#e4572e"),
		Background:         Hex("#ffffff"),
		Text:               Hex("#1b1b1b"),
		Muted:              Hex("#7a7a7a"),
		CategoryBackground: Hex("#1f3a5f"),
		CategoryText:       Hex("#ffffff"),
		PriceBackground:    Hex("#eef2f7"),
		PriceText:          Hex("#1f3a5f"),
		BadgeNew:           Hex("#2a9d8f"),
		BadgeFeatured:      Hex("#e9c46a"),
		Cover:              CoverClassic,
		HeaderGlyph:        "•",
		CardHeightMM:       72,
	},
	"grocery": {
		Key:                "grocery",
		Name:               "Abarrotes",
		Primary:            Hex("#2d6a4f"),
		Secondary:          Hex("#52b788"),
		Accent:             Hex("#d62828"),
		Background:         Hex("#fbfdf7"),
		Text:               Hex("#1b4332"),
		Muted:              Hex("#6c757d"),
		CategoryBackground: Hex("#95d5b2"),
		CategoryText:       Hex("#1b4332"),
		PriceBackground:    Hex("#fff3b0"),
		PriceText:          Hex("#1b4332"),
		BadgeNew:           Hex("#f77f00"),
		BadgeFeatured:      Hex("#d62828"),
		Cover:              CoverSplit,
		HeaderGlyph:        "»",
		CardHeightMM:       66,
	},
	"beverages": {
		Key:                "beverages",
		Name:               "Bebidas",
		Primary:            Hex("#03045e"),
		Secondary:          Hex("#0077b6"),
		Accent:             Hex("#f72585"),
		Background:         Hex("#f4fbff"),
		Text:               Hex("#03045e"),
		Muted:              Hex("#5c677d"),
		CategoryBackground: Hex("#0077b6"),
		CategoryText:       Hex("#ffffff"),
		PriceBackground:    Hex("#caf0f8"),
		PriceText:          Hex("#03045e"),
		BadgeNew:           Hex("#00b4d8"),
		BadgeFeatured:      Hex("#f72585"),
		Cover:              CoverBanner,
		HeaderGlyph:        "~",
		CardHeightMM:       76,
	},
	"industrial": {
		Key:                "industrial",
		Name:               "Industrial",
		Primary:            Hex("#343a40"),
		Secondary:          Hex("#6c757d"),
		Accent:             Hex("#fca311"),
		Background:         Hex("#ffffff"),
		Text:               Hex("#212529"),
		Muted:              Hex("#868e96"),
		CategoryBackground: Hex("#fca311"),
		CategoryText:       Hex("#14213d"),
		PriceBackground:    Hex("#e9ecef"),
		PriceText:          Hex("#14213d"),
		BadgeNew:           Hex("#495057"),
		BadgeFeatured:      Hex("#fca311"),
		Cover:              CoverSplit,
		HeaderGlyph:        "#",
		CardHeightMM:       70,
	},
	"promotional": {
		Key:                "promotional",
		Name:               "Promociones",
		Primary:            Hex("#9d0208"),
		Secondary:          Hex("#dc2f02"),
		Accent:             Hex("#ffba08"),
		Background:         Hex("#fffaf0"),
		Text:               Hex("#370617"),
		Muted:              Hex("#6a040f"),
		CategoryBackground: Hex("#dc2f02"),
		CategoryText:       Hex("#ffffff"),
		PriceBackground:    Hex("#ffba08"),
		PriceText:          Hex("#370617"),
		BadgeNew:           Hex("#e85d04"),
		BadgeFeatured:      Hex("#370617"),
		Cover:              CoverBold,
		HeaderGlyph:        "*",
		CardHeightMM:       78,
	},
}

// Lookup returns the theme registered for a catalog type, falling back to
// the default theme. The second result reports whether the key matched.
func Lookup(catalogType string) (Theme, bool) {
	key := strings.ToLower(strings.TrimSpace(catalogType))
	if t, ok := registry[key]; ok {
		return t, true
	}
	return registry[DefaultKey], false
}

// Keys lists the registered catalog types in alphabetical order
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BadgeColor returns the chip color for a badge label
func (t Theme) BadgeColor(featured bool) Color {
	if featured {
		return t.BadgeFeatured
	}
	return t.BadgeNew
}
