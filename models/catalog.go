package models

import (
	"fmt"
	"strings"
	"time"
)

// Orientation of the catalog pages
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// OutputFormat selects how the finished catalog is serialized
type OutputFormat string

const (
	FormatPDF  OutputFormat = "pdf"
	FormatHTML OutputFormat = "html"
)

// Column bounds for the product grid
const (
	MinColumns     = 1
	MaxColumns     = 5
	DefaultColumns = 3
)

// namedSizes holds portrait dimensions in millimetres
var namedSizes = map[string][2]float64{
	"A4":     {210, 297},
	"LETTER": {215.9, 279.4},
	"LEGAL":  {215.9, 355.6},
}

// PageSize is either a named paper size or explicit millimetre dimensions
type PageSize struct {
	Name     string  `json:"name,omitempty" yaml:"name"`
	WidthMM  float64 `json:"widthMm,omitempty" yaml:"widthMm"`
	HeightMM float64 `json:"heightMm,omitempty" yaml:"heightMm"`
}

// Dimensions returns the page width and height in millimetres for the
// given orientation. Explicit dimensions win over the name.
func (p PageSize) Dimensions(o Orientation) (float64, float64, error) {
	w, h := p.WidthMM, p.HeightMM
	if w == 0 && h == 0 {
		name := strings.ToUpper(strings.TrimSpace(p.Name))
		if name == "" {
			name = "A4"
		}
		dims, ok := namedSizes[name]
		if !ok {
			return 0, 0, fmt.Errorf("%w: unknown page size %q", ErrInvalidSettings, p.Name)
		}
		w, h = dims[0], dims[1]
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: page dimensions must be positive, got %.1fx%.1fmm", ErrInvalidSettings, w, h)
	}
	// Named sizes are stored portrait; explicit sizes are taken as given
	// and only swapped when they disagree with the orientation.
	if o == Landscape && h > w {
		w, h = h, w
	} else if o != Landscape && w > h {
		w, h = h, w
	}
	return w, h, nil
}

// ContactInfo is the contact block printed on the cover and contact page
type ContactInfo struct {
	Phone    string `json:"phone,omitempty" yaml:"phone"`
	Email    string `json:"email,omitempty" yaml:"email"`
	Website  string `json:"website,omitempty" yaml:"website"`
	WhatsApp string `json:"whatsapp,omitempty" yaml:"whatsapp"`
}

// IsZero reports whether no contact field is set
func (c *ContactInfo) IsZero() bool {
	return c == nil || (c.Phone == "" && c.Email == "" && c.Website == "" && c.WhatsApp == "")
}

// CatalogSettings controls layout, theming and what each card shows
type CatalogSettings struct {
	Title                string       `json:"title" yaml:"title"`
	Subtitle             string       `json:"subtitle,omitempty" yaml:"subtitle"`
	Orientation          Orientation  `json:"orientation,omitempty" yaml:"orientation"`
	PageSize             PageSize     `json:"pageSize" yaml:"pageSize"`
	Columns              int          `json:"columns" yaml:"columns"`
	ShowPrices           bool         `json:"showPrices" yaml:"showPrices"`
	GroupByCategory      bool         `json:"groupByCategory" yaml:"groupByCategory"`
	ShowSKU              bool         `json:"showSku" yaml:"showSku"`
	ShowBarcode          bool         `json:"showBarcode" yaml:"showBarcode"`
	IncludeDescription   bool         `json:"includeDescription" yaml:"includeDescription"`
	ShowPromotionalPrice bool         `json:"showPromotionalPrice" yaml:"showPromotionalPrice"`
	LogoOnEveryPage      bool         `json:"logoOnEveryPage" yaml:"logoOnEveryPage"`
	SortByName           bool         `json:"sortByName" yaml:"sortByName"`
	CatalogType          string       `json:"catalogType,omitempty" yaml:"catalogType"`
	PreferredCategories  []string     `json:"preferredCategories,omitempty" yaml:"preferredCategories"`
	Currency             string       `json:"currency,omitempty" yaml:"currency"`
	ValidFrom            *time.Time   `json:"validFrom,omitempty" yaml:"validFrom"`
	ValidUntil           *time.Time   `json:"validUntil,omitempty" yaml:"validUntil"`
	Contact              *ContactInfo `json:"contact,omitempty" yaml:"contact"`
	Format               OutputFormat `json:"format,omitempty" yaml:"format"`
}

// DefaultCatalogSettings returns the settings used when the caller sends none
func DefaultCatalogSettings() CatalogSettings {
	return CatalogSettings{
		Title:                "Catálogo",
		Orientation:          Portrait,
		PageSize:             PageSize{Name: "A4"},
		Columns:              DefaultColumns,
		ShowPrices:           true,
		GroupByCategory:      true,
		ShowPromotionalPrice: true,
		CatalogType:          "general",
		Currency:             "$",
		Format:               FormatPDF,
	}
}

// ClampedColumns returns the column count forced into [MinColumns, MaxColumns]
func (s CatalogSettings) ClampedColumns() int {
	switch {
	case s.Columns < MinColumns:
		return MinColumns
	case s.Columns > MaxColumns:
		return MaxColumns
	default:
		return s.Columns
	}
}

// Validate rejects structurally invalid settings. Column counts outside the
// allowed range are clamped rather than rejected, except non-positive ones.
func (s CatalogSettings) Validate() error {
	if s.Columns <= 0 {
		return fmt.Errorf("%w: columns must be positive, got %d", ErrInvalidSettings, s.Columns)
	}
	switch s.Orientation {
	case "", Portrait, Landscape:
	default:
		return fmt.Errorf("%w: unknown orientation %q", ErrInvalidSettings, s.Orientation)
	}
	switch s.Format {
	case "", FormatPDF, FormatHTML:
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrInvalidSettings, s.Format)
	}
	if _, _, err := s.PageSize.Dimensions(s.Orientation); err != nil {
		return err
	}
	if s.ValidFrom != nil && s.ValidUntil != nil && s.ValidUntil.Before(*s.ValidFrom) {
		return fmt.Errorf("%w: validity range ends before it starts", ErrInvalidSettings)
	}
	return nil
}

// CurrencySymbol returns the configured symbol or "$"
func (s CatalogSettings) CurrencySymbol() string {
	if s.Currency == "" {
		return "$"
	}
	return s.Currency
}

// StoreInfo describes the store printing the catalog
type StoreInfo struct {
	Name          string   `json:"name"`
	Address       string   `json:"address,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Email         string   `json:"email,omitempty"`
	Logo          ImageRef `json:"logo,omitempty"`
	QRCodeURL     string   `json:"qrCodeUrl,omitempty"`
	BusinessHours string   `json:"businessHours,omitempty"`
}

// IsZero reports whether the store record carries nothing printable
func (s *StoreInfo) IsZero() bool {
	return s == nil || (s.Name == "" && s.Address == "" && s.Phone == "" && s.Email == "" && s.QRCodeURL == "" && s.BusinessHours == "")
}

// CatalogDocument is the finished, serialized catalog
type CatalogDocument struct {
	Data        []byte
	ContentType string
	Filename    string
	PageCount   int
}
