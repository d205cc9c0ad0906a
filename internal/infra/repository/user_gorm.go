package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/marketplace/internal/domain/account"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *UserGormRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// --------------------------------------------------
// Sellers
// --------------------------------------------------

func (r *UserGormRepository) ListSellers(ctx context.Context) ([]models.User, error) {
	var sellers []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ?", models.RoleSeller).
		Order("name ASC, id ASC").
		Find(&sellers).Error; err != nil {
		return nil, err
	}
	return sellers, nil
}

func (r *UserGormRepository) FindSeller(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleSeller).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) CountSalesBySeller(ctx context.Context) (map[uint]int64, error) {
	var rows []struct {
		SellerID uint
		Total    int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("seller_id, COUNT(*) AS total").
		Where("seller_id IS NOT NULL").
		Group("seller_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.SellerID] = row.Total
	}
	return counts, nil
}

func (r *UserGormRepository) DeleteUserCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var productIDs []uint
		if err := tx.Model(&models.Product{}).
			Where("seller_id = ?", id).
			Pluck("id", &productIDs).Error; err != nil {
			return err
		}

		if len(productIDs) > 0 {
			if err := tx.Model(&models.Sale{}).
				Where("product_id IN ?", productIDs).
				Update("product_id", nil).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Sale{}).
			Where("seller_id = ?", id).
			Update("seller_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Sale{}).
			Where("buyer_id = ?", id).
			Update("buyer_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("seller_id = ?", id).
			Delete(&models.Product{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
