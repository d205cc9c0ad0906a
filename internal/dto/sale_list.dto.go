package dto

import (
	"time"

	"github.com/BruksfildServices01/marketplace/internal/models"
)

// SaleDTO flattens a sale. Reference ids are null once the product, seller
// or buyer has been removed; the snapshot fields stay.
type SaleDTO struct {
	ID          uint      `json:"id"`
	SoldAt      time.Time `json:"sold_at"`
	ProductID   *uint     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	SellerID    *uint     `json:"seller_id"`
	SellerName  string    `json:"seller_name,omitempty"`
	BuyerID     *uint     `json:"buyer_id"`
	BuyerName   string    `json:"buyer_name,omitempty"`
}

func NewSaleDTO(s models.Sale) SaleDTO {
	out := SaleDTO{
		ID:          s.ID,
		SoldAt:      s.SoldAt,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Price:       s.Price.StringFixed(2),
		SellerID:    s.SellerID,
		BuyerID:     s.BuyerID,
	}
	if s.Product != nil {
		out.ImageURL = s.Product.ImageURL
	}
	if s.Seller != nil {
		out.SellerName = s.Seller.Name
	}
	if s.Buyer != nil {
		out.BuyerName = s.Buyer.Name
	}
	return out
}

func NewSaleList(sales []models.Sale) []SaleDTO {
	out := make([]SaleDTO, 0, len(sales))
	for _, s := range sales {
		out = append(out, NewSaleDTO(s))
	}
	return out
}
