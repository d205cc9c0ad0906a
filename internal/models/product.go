package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SellerID uint  `gorm:"not null;index" json:"seller_id"`
	Seller   *User `gorm:"foreignKey:SellerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"seller,omitempty"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:1000;not null" json:"description"`
	Category    string          `gorm:"size:50;not null;index" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	ImageURL    string          `gorm:"size:500" json:"image_url"`
	Sold        bool            `gorm:"not null;default:false;index" json:"sold"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
