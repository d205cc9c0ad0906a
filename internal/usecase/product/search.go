package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/marketplace/internal/domain/product"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

// SearchInput holds the raw query values; empty strings mean "no filter".
type SearchInput struct {
	Term     string
	Category string
	MinPrice string
	MaxPrice string
}

type SearchProducts struct {
	repo domain.Repository
}

func NewSearchProducts(repo domain.Repository) *SearchProducts {
	return &SearchProducts{repo: repo}
}

func (uc *SearchProducts) Execute(ctx context.Context, in SearchInput) ([]models.Product, error) {
	min, err := parseOptionalPrice(in.MinPrice, "min_price")
	if err != nil {
		return nil, err
	}
	max, err := parseOptionalPrice(in.MaxPrice, "max_price")
	if err != nil {
		return nil, err
	}

	products, err := uc.repo.Search(ctx, domain.SearchFilter{
		Term:     in.Term,
		Category: in.Category,
		MinPrice: min,
		MaxPrice: max,
	})
	if err != nil {
		return nil, httperr.Persistence(err)
	}
	return products, nil
}

// parseOptionalPrice accepts both "12.50" and "12,50".
func parseOptionalPrice(raw, field string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		return nil, httperr.Validation(field, "invalid_price", "Informe um preço válido.")
	}
	return &d, nil
}
