package account

import (
	"strings"

	"github.com/BruksfildServices01/marketplace/internal/httperr"
	"github.com/BruksfildServices01/marketplace/internal/models"
)

// RootName is reserved for the bootstrap administrator.
const RootName = "root"

var (
	ErrEmailTaken = httperr.Conflict("email", "email_already_exists", "Este e-mail já está cadastrado.")

	ErrReservedName = httperr.Protected("reserved_name", "O nome 'root' é reservado e não pode ser usado.")

	ErrInvalidCredentials = httperr.BusinessError{
		Kind:    httperr.KindAuth,
		Code:    "invalid_credentials",
		Message: "Credenciais inválidas.",
	}

	ErrSellerNotFound = httperr.NotFoundErr("seller_not_found", "Vendedor não encontrado.")
)

func IsReservedName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), RootName)
}

// CanRegisterAs lists the roles open to self-registration.
func CanRegisterAs(role string) bool {
	return role == models.RoleBuyer || role == models.RoleSeller
}

// CanDeleteSeller guards seller removal: root is untouchable and nobody
// removes their own account.
func CanDeleteSeller(seller *models.User, actorID uint) error {
	if IsReservedName(seller.Name) {
		return httperr.Protected("root_protected", "O usuário root não pode ser excluído.")
	}
	if seller.ID == actorID {
		return httperr.Protected("self_delete", "Você não pode excluir a si mesmo.")
	}
	return nil
}
