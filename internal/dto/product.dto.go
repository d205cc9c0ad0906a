package dto

import (
	"time"

	"github.com/BruksfildServices01/marketplace/internal/models"
)

// ProductDTO is the public view of a product: the seller is reduced to a
// name so that catalog pages never leak account data.
type ProductDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"image_url"`
	Sold        bool      `json:"sold"`
	SellerID    uint      `json:"seller_id"`
	SellerName  string    `json:"seller_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProductDTO(p models.Product) ProductDTO {
	out := ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price.StringFixed(2),
		ImageURL:    p.ImageURL,
		Sold:        p.Sold,
		SellerID:    p.SellerID,
		CreatedAt:   p.CreatedAt,
	}
	if p.Seller != nil {
		out.SellerName = p.Seller.Name
	}
	return out
}

func NewProductList(products []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductDTO(p))
	}
	return out
}
