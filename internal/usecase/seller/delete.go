package seller

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/marketplace/internal/audit"
	domain "github.com/BruksfildServices01/marketplace/internal/domain/account"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/metrics"
)

type DeleteSeller struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteSeller(repo domain.Repository, audit *audit.Dispatcher) *DeleteSeller {
	return &DeleteSeller{repo: repo, audit: audit}
}

// Execute removes the seller and their products. Their sales stay, with
// the seller and product references cleared.
func (uc *DeleteSeller) Execute(ctx context.Context, actorID, sellerID uint) error {
	seller, err := uc.repo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSellerNotFound
		}
		return httperr.Persistence(err)
	}

	// root and self are refused before the role check so that the admin
	// gets the protected error rather than a missing seller
	if err := domain.CanDeleteSeller(seller, actorID); err != nil {
		return err
	}
	if !seller.IsSeller() {
		return domain.ErrSellerNotFound
	}

	if err := uc.repo.DeleteUserCascade(ctx, sellerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSellerNotFound
		}
		return httperr.Persistence(err)
	}

	metrics.SellerDeleted()
	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.ID(actorID),
		Action:   audit.ActionSellerDeleted,
		Entity:   "user",
		EntityID: audit.ID(sellerID),
		Metadata: map[string]any{"name": seller.Name, "email": seller.Email},
	})
	return nil
}
