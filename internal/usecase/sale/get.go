package sale

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/marketplace/internal/domain/sale"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

type GetSale struct {
	repo domain.Repository
}

func NewGetSale(repo domain.Repository) *GetSale {
	return &GetSale{repo: repo}
}

func (uc *GetSale) Execute(ctx context.Context, id uint) (*models.Sale, error) {
	s, err := uc.repo.GetSale(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, httperr.Persistence(err)
	}
	return s, nil
}
