package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type Role string

const (
	RoleUser       Role = "USER"
	RoleDriver     Role = "DRIVER"
	RoleManager    Role = "MANAGER"
	RoleSuperAdmin Role = "SUPERADMIN"
)

type User struct {
	ID        int         `json:"id"`
	Email     string      `json:"email"`
	Password  string      `json:"-"` // bcrypt hash, never serialized
	Name      string      `json:"name"`
	Phone     null.String `json:"phone"`
	Role      Role        `json:"role,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type SignupDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileDTO struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

type AuthResponseDTO struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UserSummary is the owner/driver projection embedded in list views.
type UserSummary struct {
	ID    int         `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email,omitempty"`
	Phone null.String `json:"phone"`
}
