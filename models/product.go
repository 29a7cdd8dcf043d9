package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Badge marks a product card with a highlighted chip
type Badge string

const (
	BadgeNone     Badge = ""
	BadgeNew      Badge = "NEW"
	BadgeFeatured Badge = "FEATURED"
)

// ParseBadge normalizes a badge value coming from the store database or JSON
func ParseBadge(s string) Badge {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NEW", "NUEVO":
		return BadgeNew
	case "FEATURED", "DESTACADO":
		return BadgeFeatured
	default:
		return BadgeNone
	}
}

// UnmarshalJSON accepts any casing and unknown values fall back to no badge
func (b *Badge) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("badge must be a string: %w", err)
	}
	*b = ParseBadge(s)
	return nil
}

// ImageRef is a raw product image reference. It may be a bare URL or data
// URI, a JSON-encoded array stored as a string (legacy rows), or a native
// array. It is kept raw until the image resolver picks the canonical entry.
type ImageRef struct {
	Values []string
}

// NewImageRef builds a reference from one or more raw values
func NewImageRef(values ...string) ImageRef {
	return ImageRef{Values: values}
}

// IsZero reports whether the reference holds no values at all
func (r ImageRef) IsZero() bool {
	return len(r.Values) == 0
}

// UnmarshalJSON accepts a string, an array of strings or null
func (r *ImageRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		r.Values = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("invalid image array: %w", err)
		}
		r.Values = make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				r.Values = append(r.Values, s)
			}
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid image reference: %w", err)
	}
	r.Values = []string{s}
	return nil
}

// MarshalJSON writes a single value as a string and several as an array
func (r ImageRef) MarshalJSON() ([]byte, error) {
	switch len(r.Values) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(r.Values[0])
	default:
		return json.Marshal(r.Values)
	}
}

// Product is a catalog entry supplied by the store. Read-only for the generator.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
	Category      string           `json:"category,omitempty"`
	Badge         Badge            `json:"badge,omitempty"`
	SKU           string           `json:"sku,omitempty"`
	Barcode       string           `json:"barcode,omitempty"`
	Description   string           `json:"description,omitempty"`
	Image         ImageRef         `json:"image,omitempty"`
	Featured      bool             `json:"featured"`
}

// Validate checks the price invariants. A negative price is rejected; a
// discount that is not strictly between zero and the price is reported so
// the caller can decide to drop it.
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: product without id", ErrInvalidProduct)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: product %s has negative price %s", ErrInvalidProduct, p.ID, p.Price)
	}
	if !p.HasValidDiscount() && p.DiscountPrice != nil {
		return fmt.Errorf("%w: product %s discount %s is not below price %s", ErrInvalidProduct, p.ID, p.DiscountPrice, p.Price)
	}
	return nil
}

// HasValidDiscount reports whether the discount price satisfies 0 <= discount < price
func (p Product) HasValidDiscount() bool {
	if p.DiscountPrice == nil {
		return false
	}
	d := *p.DiscountPrice
	return !d.IsNegative() && d.LessThan(p.Price)
}

// CategoryLabel returns the trimmed category or the default label
func (p Product) CategoryLabel() string {
	if c := strings.TrimSpace(p.Category); c != "" {
		return c
	}
	return UncategorizedLabel
}

// UncategorizedLabel groups products that carry no category
const UncategorizedLabel = "Uncategorized"
