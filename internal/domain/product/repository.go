package product

import (
	"context"
	"time"

	"github.com/BruksfildServices01/marketplace/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	ListAvailable(ctx context.Context, sort SortKey) ([]models.Product, error)
	Search(ctx context.Context, f SearchFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	ListBySeller(ctx context.Context, sellerID uint) ([]models.Product, error)

	// -------- Seller actions --------
	Create(ctx context.Context, p *models.Product) error

	// DeleteOwnedUnsold reports whether a row was removed.
	DeleteOwnedUnsold(ctx context.Context, id, sellerID uint) (bool, error)

	// MarkSold flips the sold flag and records the sale atomically.
	MarkSold(ctx context.Context, id, sellerID uint, soldAt time.Time) (*models.Sale, error)

	// -------- Buyer actions --------

	// RecordCheckout notes that buyerID started paying for productID.
	// Repeating it is a no-op.
	RecordCheckout(ctx context.Context, productID, buyerID uint) error
}
