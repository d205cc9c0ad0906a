package product

import (
	"context"

	"github.com/BruksfildServices01/marketplace/internal/audit"
	domain "github.com/BruksfildServices01/marketplace/internal/domain/product"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/metrics"
	"github.com/BruksfildServices01/marketplace/internal/models"
	"github.com/BruksfildServices01/marketplace/internal/timezone"
)

type MarkSold struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   timezone.Clock
}

func NewMarkSold(repo domain.Repository, audit *audit.Dispatcher, now timezone.Clock) *MarkSold {
	return &MarkSold{repo: repo, audit: audit, now: now}
}

func (uc *MarkSold) Execute(ctx context.Context, productID, sellerID uint) (*models.Sale, error) {
	sale, err := uc.repo.MarkSold(ctx, productID, sellerID, uc.now())
	if err != nil {
		return nil, httperr.Persistence(err)
	}

	metrics.SaleRecorded()
	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.ID(sellerID),
		Action:   audit.ActionProductSold,
		Entity:   "sale",
		EntityID: audit.ID(sale.ID),
		Metadata: map[string]any{"product_id": productID},
	})

	return sale, nil
}
