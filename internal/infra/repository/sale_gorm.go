package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/marketplace/internal/domain/sale"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

type SaleGormRepository struct {
	db *gorm.DB
}

func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

func (r *SaleGormRepository) GetSale(ctx context.Context, id uint) (*models.Sale, error) {
	var s models.Sale
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Seller").
		Preload("Buyer").
		First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleGormRepository) ListBySeller(ctx context.Context, sellerID uint) ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Buyer").
		Where("seller_id = ?", sellerID).
		Order("sold_at DESC, id DESC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *SaleGormRepository) ListByBuyer(ctx context.Context, buyerID uint) ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Seller").
		Where("buyer_id = ?", buyerID).
		Order("sold_at DESC, id DESC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *SaleGormRepository) ClaimSale(ctx context.Context, saleID, buyerID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ? AND buyer_id IS NULL", saleID).
		Where("product_id IN (?)", r.db.Model(&models.CheckoutIntent{}).
			Select("product_id").
			Where("buyer_id = ?", buyerID)).
		Update("buyer_id", buyerID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Compile-time check
var _ domain.Repository = (*SaleGormRepository)(nil)
