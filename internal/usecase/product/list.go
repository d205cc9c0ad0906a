package product

import (
	"context"

	domain "github.com/BruksfildServices01/marketplace/internal/domain/product"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

type ListProducts struct {
	repo domain.Repository
}

func NewListProducts(repo domain.Repository) *ListProducts {
	return &ListProducts{repo: repo}
}

func (uc *ListProducts) Execute(ctx context.Context, sort string) ([]models.Product, error) {
	products, err := uc.repo.ListAvailable(ctx, domain.ParseSort(sort))
	if err != nil {
		return nil, httperr.Persistence(err)
	}
	return products, nil
}

// ListSellerProducts returns everything a seller listed, sold or not.
type ListSellerProducts struct {
	repo domain.Repository
}

func NewListSellerProducts(repo domain.Repository) *ListSellerProducts {
	return &ListSellerProducts{repo: repo}
}

func (uc *ListSellerProducts) Execute(ctx context.Context, sellerID uint) ([]models.Product, error) {
	products, err := uc.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, httperr.Persistence(err)
	}
	return products, nil
}
