package seller

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/marketplace/internal/audit"
	domain "github.com/BruksfildServices01/marketplace/internal/domain/account"
	"github.com/BruksfildServices01/marketplace/internal/dto"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/models"
	"github.com/BruksfildServices01/marketplace/internal/validators"
)

type CreateSeller struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateSeller(repo domain.Repository, audit *audit.Dispatcher) *CreateSeller {
	return &CreateSeller{repo: repo, audit: audit}
}

// Execute registers a seller with a generated password and returns it in
// plain text. Only the hash is stored.
func (uc *CreateSeller) Execute(ctx context.Context, actorID uint, name, email string) (*dto.CreatedSeller, error) {
	name = strings.TrimSpace(name)
	email = validators.NormalizeEmail(email)

	if name == "" {
		return nil, httperr.Validation("name", "name_required", "O nome é obrigatório.")
	}
	if email == "" {
		return nil, httperr.Validation("email", "email_required", "O e-mail é obrigatório.")
	}
	if !validators.IsEmail(email) {
		return nil, httperr.Validation("email", "email_invalid", "E-mail inválido.")
	}
	if domain.IsReservedName(name) {
		return nil, domain.ErrReservedName
	}

	exists, err := uc.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, httperr.Persistence(err)
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	password := domain.GeneratePassword()
	hash, err := domain.HashPassword(password)
	if err != nil {
		return nil, httperr.Persistence(err)
	}

	seller := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleSeller,
	}
	if err := uc.repo.CreateUser(ctx, seller); err != nil {
		return nil, httperr.Persistence(err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.ID(actorID),
		Action:   audit.ActionSellerCreated,
		Entity:   "user",
		EntityID: audit.ID(seller.ID),
	})

	return &dto.CreatedSeller{
		ID:       seller.ID,
		Name:     seller.Name,
		Email:    seller.Email,
		Password: password,
	}, nil
}
