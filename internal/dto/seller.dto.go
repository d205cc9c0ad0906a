package dto

import (
	"time"

	"github.com/BruksfildServices01/marketplace/internal/models"
)

type SellerSummary struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	SalesCount int64     `json:"sales_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreatedSeller carries the generated password. It is shown exactly once.
type CreatedSeller struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
