package seller

import (
	"context"

	domain "github.com/BruksfildServices01/marketplace/internal/domain/account"
	"github.com/BruksfildServices01/marketplace/internal/dto"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
)

type ListSellers struct {
	repo domain.Repository
}

func NewListSellers(repo domain.Repository) *ListSellers {
	return &ListSellers{repo: repo}
}

func (uc *ListSellers) Execute(ctx context.Context) ([]dto.SellerSummary, error) {
	sellers, err := uc.repo.ListSellers(ctx)
	if err != nil {
		return nil, httperr.Persistence(err)
	}

	counts, err := uc.repo.CountSalesBySeller(ctx)
	if err != nil {
		return nil, httperr.Persistence(err)
	}

	out := make([]dto.SellerSummary, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, dto.SellerSummary{
			ID:         s.ID,
			Name:       s.Name,
			Email:      s.Email,
			SalesCount: counts[s.ID],
			CreatedAt:  s.CreatedAt,
		})
	}
	return out, nil
}
