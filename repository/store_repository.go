package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalogo-tienda/logx"
	"catalogo-tienda/models"
)

// StoreRepository reads the single store settings row
type StoreRepository struct {
	db *sql.DB
}

// NewStoreRepository creates a new StoreRepository
func NewStoreRepository(conn *sql.DB) *StoreRepository {
	return &StoreRepository{db: conn}
}

var _ StoreRepositoryInterface = (*StoreRepository)(nil)

// GetStoreInfo returns the store record, or nil when none was configured
func (r *StoreRepository) GetStoreInfo(ctx context.Context) (*models.StoreInfo, error) {
	query := `
		SELECT
			name,
			COALESCE(address, ''),
			COALESCE(phone, ''),
			COALESCE(email, ''),
			COALESCE(logo, ''),
			COALESCE(qr_code_url, ''),
			COALESCE(business_hours, '')
		FROM store_settings
		ORDER BY id ASC
		LIMIT 1
	`

	var store models.StoreInfo
	var logo string
	err := r.db.QueryRowContext(ctx, query).Scan(
		&store.Name,
		&store.Address,
		&store.Phone,
		&store.Email,
		&logo,
		&store.QRCodeURL,
		&store.BusinessHours,
	)
	if errors.Is(err, sql.ErrNoRows) {
		logx.Warn().Msg("⚠️  No store settings row, catalog will have no store details")
		return nil, nil
	}
	if err != nil {
		logx.Error().Err(err).Msg("❌ Error fetching store settings")
		return nil, fmt.Errorf("failed to fetch store settings: %w", err)
	}
	if logo != "" {
		store.Logo = models.NewImageRef(logo)
	}
	return &store, nil
}
