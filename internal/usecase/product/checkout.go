package product

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/marketplace/internal/domain/product"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/infra/payment"
)

var ErrCheckoutUnavailable = httperr.BusinessError{
	Kind:    httperr.KindUnavailable,
	Code:    "checkout_unavailable",
	Message: "Pagamento online indisponível no momento.",
}

// StartCheckout opens a payment preference for an unsold product and
// returns the URL the buyer should be sent to. The buyer is remembered so
// that they can later claim the sale.
type StartCheckout struct {
	repo     domain.Repository
	checkout payment.Checkout
}

func NewStartCheckout(repo domain.Repository, checkout payment.Checkout) *StartCheckout {
	return &StartCheckout{repo: repo, checkout: checkout}
}

func (uc *StartCheckout) Execute(ctx context.Context, productID, buyerID uint) (string, error) {
	if uc.checkout == nil {
		return "", ErrCheckoutUnavailable
	}

	p, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrNotFound
		}
		return "", httperr.Persistence(err)
	}
	if p.Sold {
		return "", domain.ErrAlreadySold
	}

	url, err := uc.checkout.Start(ctx, payment.Item{
		ProductID:   p.ID,
		Title:       p.Name,
		Description: p.Description,
		Category:    p.Category,
		PictureURL:  p.ImageURL,
		Price:       p.Price,
	})
	if err != nil {
		if errors.Is(err, payment.ErrUnavailable) {
			return "", ErrCheckoutUnavailable
		}
		return "", httperr.Persistence(err)
	}

	if err := uc.repo.RecordCheckout(ctx, p.ID, buyerID); err != nil {
		return "", httperr.Persistence(err)
	}
	return url, nil
}
