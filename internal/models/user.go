package models

import "time"

const (
	RoleBuyer  = "Cliente"
	RoleSeller = "Vendedor"
	RoleAdmin  = "Admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;index" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsSeller() bool { return u.Role == RoleSeller }
func (u *User) IsBuyer() bool { return u.Role == RoleBuyer }
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
