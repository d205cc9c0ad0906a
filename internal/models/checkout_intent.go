package models

import "time"

// CheckoutIntent records that a buyer was sent to pay for a product. Only
// a buyer holding one may claim the sale of that product. The ids are
// plain references so that products and users can go away freely.
type CheckoutIntent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProductID uint `gorm:"not null;uniqueIndex:idx_checkout_product_buyer" json:"product_id"`
	BuyerID   uint `gorm:"not null;uniqueIndex:idx_checkout_product_buyer;index" json:"buyer_id"`

	CreatedAt time.Time `json:"created_at"`
}
