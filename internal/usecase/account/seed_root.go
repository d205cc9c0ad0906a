package account

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/marketplace/internal/domain/account"
	"github.com/BruksfildServices01/marketplace/internal/models"
	"github.com/BruksfildServices01/marketplace/internal/validators"
)

// SeedRoot is the only path that creates the reserved root administrator.
type SeedRoot struct {
	repo domain.Repository
}

func NewSeedRoot(repo domain.Repository) *SeedRoot {
	return &SeedRoot{repo: repo}
}

// Execute creates root when no account holds the email yet. The returned
// bool reports whether a user was created.
func (uc *SeedRoot) Execute(ctx context.Context, email, password string) (bool, error) {
	email = validators.NormalizeEmail(email)
	if !validators.IsEmail(email) {
		return false, errors.New("root email is invalid")
	}
	if len(password) < minPasswordLen {
		return false, errors.New("root password is too short")
	}

	_, err := uc.repo.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := domain.HashPassword(password)
	if err != nil {
		return false, err
	}

	root := &models.User{
		Name:         domain.RootName,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := uc.repo.CreateUser(ctx, root); err != nil {
		return false, err
	}
	return true, nil
}
