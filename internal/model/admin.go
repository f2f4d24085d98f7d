package model

import "time"

// Admin represents an admin or teacher back-office user.
type Admin struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	RoleID       int       `json:"role_id"`
	RoleName     string    `json:"role_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminLoginRequest is the payload for admin authentication.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// CreateAdminRequest is the payload for creating an admin user.
type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	RoleID   int    `json:"role_id" binding:"required,min=1"`
}

// UpdateAdminRequest is the payload for updating an admin user.
// Password is optional; empty keeps the current hash.
type UpdateAdminRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"omitempty,min=8,max=128"`
	RoleID   int    `json:"role_id" binding:"required,min=1"`
}
