package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale rows are never deleted. Their references are nulled when the
// product, seller or buyer they point at goes away.
type Sale struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	SoldAt time.Time `gorm:"not null;index" json:"sold_at"`

	ProductID *uint    `gorm:"index" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product,omitempty"`

	SellerID *uint `gorm:"index" json:"seller_id"`
	Seller   *User `gorm:"foreignKey:SellerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"seller,omitempty"`

	BuyerID *uint `gorm:"index" json:"buyer_id"`
	Buyer   *User `gorm:"foreignKey:BuyerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"buyer,omitempty"`

	// Snapshot taken when the sale is recorded.
	ProductName string          `gorm:"size:100" json:"product_name"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2)" json:"price"`

	CreatedAt time.Time `json:"created_at"`
}
