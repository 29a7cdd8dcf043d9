package repository

import (
	"context"

	"catalogo-tienda/models"
)

// ProductRepositoryInterface defines the contract for reading catalog products
type ProductRepositoryInterface interface {
	ListActiveProducts(ctx context.Context, category string) ([]models.Product, error)
}

// StoreRepositoryInterface defines the contract for reading the store record
type StoreRepositoryInterface interface {
	GetStoreInfo(ctx context.Context) (*models.StoreInfo, error)
}
