package product

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

// ===============================
// Listing order
// ===============================

type SortKey string

const (
	SortDefault   SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortName      SortKey = "name"
	SortRecent    SortKey = "recent"
)

// ParseSort accepts the canonical keys and the legacy Portuguese ones.
// Anything else keeps insertion order.
func ParseSort(s string) SortKey {
	switch strings.TrimSpace(s) {
	case "price_asc", "precoAsc":
		return SortPriceAsc
	case "price_desc", "precoDesc":
		return SortPriceDesc
	case "name", "nome":
		return SortName
	case "recent", "recentes":
		return SortRecent
	default:
		return SortDefault
	}
}

func (k SortKey) OrderClause() string {
	switch k {
	case SortPriceAsc:
		return "price ASC, id ASC"
	case SortPriceDesc:
		return "price DESC, id ASC"
	case SortName:
		return "name ASC, id ASC"
	case SortRecent:
		return "id DESC"
	default:
		return "id ASC"
	}
}

// ===============================
// Search
// ===============================

// SearchFilter fields left empty are not applied.
type SearchFilter struct {
	Term     string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// ===============================
// State rules
// ===============================

func CanMarkSold(p *models.Product, sellerID uint) error {
	if p.SellerID != sellerID {
		return httperr.Protected("product_not_owned", "Produto pertence a outro vendedor.")
	}
	if p.Sold {
		return ErrAlreadySold
	}
	return nil
}

var ErrAlreadySold = httperr.Conflict("", "product_already_sold", "Produto já foi vendido.")

var ErrNotFound = httperr.NotFoundErr("product_not_found", "Produto não encontrado.")

// ValidPrice rejects negative prices and more than two decimal places.
func ValidPrice(p decimal.Decimal) bool {
	return !p.IsNegative() && p.Equal(p.Round(2))
}
