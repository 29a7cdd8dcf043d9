package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"catalogo-tienda/logx"
	"catalogo-tienda/models"
)

// capitalizeWords capitalizes the first letter of each word
func capitalizeWords(s string) string {
	if s == "" {
		return s
	}
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		words[i] = strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(words, " ")
}

// ProductRepository handles database operations for catalog products
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(conn *sql.DB) *ProductRepository {
	return &ProductRepository{db: conn}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const listActiveProductsQuery = `
	SELECT
		p.id,
		p.name,
		p.price,
		p.discount_price,
		COALESCE(p.category, '') AS category,
		COALESCE(p.badge, '') AS badge,
		COALESCE(p.sku, '') AS sku,
		COALESCE(p.barcode, '') AS barcode,
		COALESCE(p.description, '') AS description,
		COALESCE(p.image, '') AS image,
		p.featured
	FROM products p
	WHERE p.is_active = true
	  AND ($1 = '' OR LOWER(p.category) = LOWER($1))
	ORDER BY p.category ASC, p.name ASC, p.id ASC
`

// ListActiveProducts retrieves active products, optionally limited to one
// category (case-insensitive). An empty category returns every product.
func (r *ProductRepository) ListActiveProducts(ctx context.Context, category string) ([]models.Product, error) {
	category = strings.TrimSpace(category)
	logx.Debug().Str("category", category).Msg("🔍 ListActiveProducts: fetching products")

	rows, err := r.db.QueryContext(ctx, listActiveProductsQuery, category)
	if err != nil {
		logx.Error().Err(err).Msg("❌ Error querying products for catalog")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var discount decimal.NullDecimal
		var badge, image string

		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&discount,
			&p.Category,
			&badge,
			&p.SKU,
			&p.Barcode,
			&p.Description,
			&image,
			&p.Featured,
		); err != nil {
			logx.Error().Err(err).Msg("❌ Error scanning catalog product")
			continue
		}

		if discount.Valid {
			d := discount.Decimal
			p.DiscountPrice = &d
		}
		p.Category = capitalizeWords(p.Category)
		p.Badge = models.ParseBadge(badge)
		p.SKU = strings.ToUpper(p.SKU)
		if image != "" {
			p.Image = models.NewImageRef(image)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		logx.Error().Err(err).Msg("❌ Error iterating catalog products")
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	logx.Info().Int("products", len(products)).Str("category", category).Msg("✓ Products fetched for catalog")
	return products, nil
}
