package product

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/marketplace/internal/audit"
	domain "github.com/BruksfildServices01/marketplace/internal/domain/product"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
)

type DeleteProduct struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   logrus.FieldLogger
}

func NewDeleteProduct(repo domain.Repository, audit *audit.Dispatcher, log logrus.FieldLogger) *DeleteProduct {
	return &DeleteProduct{repo: repo, audit: audit, log: log}
}

// Execute removes the product only when it exists, belongs to sellerID and
// is still unsold. Anything else is silently ignored; the returned bool
// reports whether a row went away.
func (uc *DeleteProduct) Execute(ctx context.Context, productID, sellerID uint) (bool, error) {
	deleted, err := uc.repo.DeleteOwnedUnsold(ctx, productID, sellerID)
	if err != nil {
		return false, httperr.Persistence(err)
	}

	if !deleted {
		uc.log.WithFields(logrus.Fields{
			"product_id": productID,
			"seller_id":  sellerID,
		}).Debug("product delete ignored")
		return false, nil
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.ID(sellerID),
		Action:   audit.ActionProductDeleted,
		Entity:   "product",
		EntityID: audit.ID(productID),
	})
	return true, nil
}
