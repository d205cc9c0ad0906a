package account

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/marketplace/internal/audit"
	domain "github.com/BruksfildServices01/marketplace/internal/domain/account"
	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/models"
	"github.com/BruksfildServices01/marketplace/internal/validators"
)

const minPasswordLen = 6

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type Register struct {
	repo        domain.Repository
	audit       *audit.Dispatcher
	checkDomain bool
}

func NewRegister(
	repo domain.Repository,
	audit *audit.Dispatcher,
	checkDomain bool,
) *Register {
	return &Register{
		repo:        repo,
		audit:       audit,
		checkDomain: checkDomain,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := validators.NormalizeEmail(in.Email)
	role := strings.TrimSpace(in.Role)

	// --------------------------------------------------
	// Required fields
	// --------------------------------------------------
	if name == "" {
		return nil, httperr.Validation("name", "name_required", "O nome é obrigatório.")
	}
	if email == "" {
		return nil, httperr.Validation("email", "email_required", "O e-mail é obrigatório.")
	}
	if !validators.IsEmail(email) {
		return nil, httperr.Validation("email", "email_invalid", "E-mail inválido.")
	}
	if uc.checkDomain && !validators.IsEmailDomainValid(email) {
		return nil, httperr.Validation("email", "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
	}
	if in.Password == "" {
		return nil, httperr.Validation("password", "password_required", "A senha é obrigatória.")
	}
	if len(in.Password) < minPasswordLen {
		return nil, httperr.Validation("password", "password_too_short", "A senha deve ter ao menos 6 caracteres.")
	}
	if domain.IsReservedName(name) {
		return nil, domain.ErrReservedName
	}

	// --------------------------------------------------
	// Uniqueness and role
	// --------------------------------------------------
	exists, err := uc.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, httperr.Persistence(err)
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	if role == "" {
		return nil, httperr.Conflict("role", "role_required", "Selecione o tipo de usuário.")
	}
	if !domain.CanRegisterAs(role) {
		return nil, httperr.Validation("role", "role_invalid", "Tipo de usuário inválido.")
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	hash, err := domain.HashPassword(in.Password)
	if err != nil {
		return nil, httperr.Persistence(err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := uc.repo.CreateUser(ctx, user); err != nil {
		return nil, httperr.Persistence(err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &user.ID,
		Action:   audit.ActionUserRegistered,
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"role": role},
	})

	return user, nil
}
