package account

import (
	"context"

	"github.com/BruksfildServices01/marketplace/internal/models"
)

type Repository interface {
	// -------- Users --------
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)

	// -------- Sellers --------
	ListSellers(ctx context.Context) ([]models.User, error)
	FindSeller(ctx context.Context, id uint) (*models.User, error)
	CountSalesBySeller(ctx context.Context) (map[uint]int64, error)

	// DeleteUserCascade removes the user and their products; sales keep
	// their rows with the dangling references nulled.
	DeleteUserCascade(ctx context.Context, id uint) error
}
