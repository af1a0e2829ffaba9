package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Perfis de acesso
const (
	RoleMaster     = 1
	RoleBrandAdmin = 2
	RoleUser       = 3
)

type User struct {
	ID           int       `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	Active       bool      `json:"active"`
	RoleID       int       `json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UpdateUserRequest struct {
	ID       int     `json:"id"`
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Active   *bool   `json:"active"`
	RoleID   *int    `json:"role_id"`
}

type Claims struct {
	UserID       int
	UserFullName string
	UserEmail    string
	UserRoleID   int
	jwt.RegisteredClaims
}

func (c *Claims) IsMaster() bool {
	return c != nil && c.UserRoleID == RoleMaster
}
