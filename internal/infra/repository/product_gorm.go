package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbpkg "github.com/BruksfildServices01/marketplace/internal/db"
	domain "github.com/BruksfildServices01/marketplace/internal/domain/product"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *ProductGormRepository) ListAvailable(ctx context.Context, sort domain.SortKey) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Preload("Seller").
		Where("sold = ?", false).
		Order(sort.OrderClause()).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductGormRepository) Search(ctx context.Context, f domain.SearchFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).
		Preload("Seller").
		Where("sold = ?", false)

	if term := strings.ToLower(strings.TrimSpace(f.Term)); term != "" {
		like := "%" + term + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}

	if category := strings.ToLower(strings.TrimSpace(f.Category)); category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}

	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	var products []models.Product
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductGormRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).
		Preload("Seller").
		First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductGormRepository) ListBySeller(ctx context.Context, sellerID uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("id DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// --------------------------------------------------
// Seller actions
// --------------------------------------------------

func (r *ProductGormRepository) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *ProductGormRepository) DeleteOwnedUnsold(ctx context.Context, id, sellerID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ? AND sold = ?", id, sellerID, false).
		Delete(&models.Product{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ProductGormRepository) MarkSold(
	ctx context.Context,
	id uint,
	sellerID uint,
	soldAt time.Time,
) (*models.Sale, error) {

	var sale models.Sale

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if dbpkg.SupportsRowLocks(tx) {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var p models.Product
		if err := q.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		if err := domain.CanMarkSold(&p, sellerID); err != nil {
			return err
		}

		// the sold = false guard serializes concurrent sellers on engines
		// without row locks: only one UPDATE can match
		res := tx.Model(&models.Product{}).
			Where("id = ? AND sold = ?", id, false).
			Update("sold", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadySold
		}

		productID := p.ID
		seller := sellerID
		sale = models.Sale{
			SoldAt:      soldAt,
			ProductID:   &productID,
			SellerID:    &seller,
			ProductName: p.Name,
			Price:       p.Price,
		}

		return tx.Omit(clause.Associations).Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}

	return &sale, nil
}

func (r *ProductGormRepository) RecordCheckout(ctx context.Context, productID, buyerID uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CheckoutIntent{ProductID: productID, BuyerID: buyerID}).Error
}

// Compile-time check
var _ domain.Repository = (*ProductGormRepository)(nil)
