package sale

import (
	"context"

	domain "github.com/BruksfildServices01/marketplace/internal/domain/sale"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

// ListSellerSales is the seller's sales history, newest first.
type ListSellerSales struct {
	repo domain.Repository
}

func NewListSellerSales(repo domain.Repository) *ListSellerSales {
	return &ListSellerSales{repo: repo}
}

func (uc *ListSellerSales) Execute(ctx context.Context, sellerID uint) ([]models.Sale, error) {
	sales, err := uc.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, httperr.Persistence(err)
	}
	return sales, nil
}

// ListPurchases lists the sales a buyer has claimed.
type ListPurchases struct {
	repo domain.Repository
}

func NewListPurchases(repo domain.Repository) *ListPurchases {
	return &ListPurchases{repo: repo}
}

func (uc *ListPurchases) Execute(ctx context.Context, buyerID uint) ([]models.Sale, error) {
	sales, err := uc.repo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, httperr.Persistence(err)
	}
	return sales, nil
}
