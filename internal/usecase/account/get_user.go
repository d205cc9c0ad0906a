package account

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/marketplace/internal/domain/account"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

type GetUser struct {
	repo domain.Repository
}

func NewGetUser(repo domain.Repository) *GetUser {
	return &GetUser{repo: repo}
}

// Execute loads the session's user. A session whose user was deleted is
// treated as logged out.
func (uc *GetUser) Execute(ctx context.Context, id uint) (*models.User, error) {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.Auth("session_user_gone")
		}
		return nil, httperr.Persistence(err)
	}
	return user, nil
}
