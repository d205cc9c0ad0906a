package sale

import (
	"context"

	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

var (
	ErrNotFound     = httperr.NotFoundErr("sale_not_found", "Venda não encontrada.")
	ErrNotClaimable = httperr.Conflict("", "sale_not_claimable", "Esta venda já possui comprador ou não passou pelo seu pagamento.")
)

type Repository interface {
	GetSale(ctx context.Context, id uint) (*models.Sale, error)
	ListBySeller(ctx context.Context, sellerID uint) ([]models.Sale, error)
	ListByBuyer(ctx context.Context, buyerID uint) ([]models.Sale, error)

	// ClaimSale records buyerID on a sale that has no buyer yet and whose
	// product buyerID went through checkout for. It reports whether it did.
	ClaimSale(ctx context.Context, saleID, buyerID uint) (bool, error)
}
