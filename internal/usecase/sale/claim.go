package sale

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/marketplace/internal/audit"
	domain "github.com/BruksfildServices01/marketplace/internal/domain/sale"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

// ClaimSale attaches a buyer to a sale that has none yet.
type ClaimSale struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewClaimSale(repo domain.Repository, audit *audit.Dispatcher) *ClaimSale {
	return &ClaimSale{repo: repo, audit: audit}
}

func (uc *ClaimSale) Execute(ctx context.Context, saleID, buyerID uint) (*models.Sale, error) {
	if _, err := uc.repo.GetSale(ctx, saleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, httperr.Persistence(err)
	}

	claimed, err := uc.repo.ClaimSale(ctx, saleID, buyerID)
	if err != nil {
		return nil, httperr.Persistence(err)
	}
	if !claimed {
		return nil, domain.ErrNotClaimable
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.ID(buyerID),
		Action:   audit.ActionSaleClaimed,
		Entity:   "sale",
		EntityID: audit.ID(saleID),
	})

	s, err := uc.repo.GetSale(ctx, saleID)
	if err != nil {
		return nil, httperr.Persistence(err)
	}
	return s, nil
}
