package model

import "time"

// Role represents an RBAC role.
type Role struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleWithPermissions extends Role to include its associated permissions.
type RoleWithPermissions struct {
	*Role
	Permissions []string `json:"permissions"`
}

// CreateRoleRequest is the payload for creating or updating a role.
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=50"`
	Permissions []string `json:"permissions" binding:"required"`
}
