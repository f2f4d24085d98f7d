package service

import (
	"context"

	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/repository"
)

// AdminRoleService handles role management business logic.
type AdminRoleService struct {
	roleRepo *repository.RoleRepository
}

// NewAdminRoleService creates a new AdminRoleService.
func NewAdminRoleService(roleRepo *repository.RoleRepository) *AdminRoleService {
	return &AdminRoleService{roleRepo: roleRepo}
}

// ListRoles retrieves all roles with their permissions.
func (s *AdminRoleService) ListRoles(ctx context.Context) ([]model.RoleWithPermissions, error) {
	return s.roleRepo.ListRolesWithPermissions(ctx)
}

// ListRolesForSelection retrieves all roles without permissions, for form dropdowns.
func (s *AdminRoleService) ListRolesForSelection(ctx context.Context) ([]model.Role, error) {
	return s.roleRepo.ListRoles(ctx)
}

// GetRole retrieves a role and its permissions by ID.
func (s *AdminRoleService) GetRole(ctx context.Context, id int) (*model.RoleWithPermissions, error) {
	return s.roleRepo.GetRoleByID(ctx, id)
}

// GetAllPermissions returns every permission code the system knows about.
func (s *AdminRoleService) GetAllPermissions() []model.Permission {
	return model.AllPermissions
}

// CreateRole creates a role and assigns the given permission codes.
func (s *AdminRoleService) CreateRole(ctx context.Context, req *model.CreateRoleRequest) (*model.RoleWithPermissions, error) {
	id, err := s.roleRepo.CreateRole(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.roleRepo.AssignPermissionsToRole(ctx, id, req.Permissions); err != nil {
		return nil, err
	}
	return s.roleRepo.GetRoleByID(ctx, id)
}

// UpdateRole renames a role and replaces its permission set.
func (s *AdminRoleService) UpdateRole(ctx context.Context, id int, req *model.CreateRoleRequest) (*model.RoleWithPermissions, error) {
	if err := s.roleRepo.UpdateRole(ctx, id, req.Name); err != nil {
		return nil, err
	}
	if err := s.roleRepo.DeleteAllPermissionsFromRole(ctx, id); err != nil {
		return nil, err
	}
	if err := s.roleRepo.AssignPermissionsToRole(ctx, id, req.Permissions); err != nil {
		return nil, err
	}
	return s.roleRepo.GetRoleByID(ctx, id)
}

// DeleteRole removes a role.
func (s *AdminRoleService) DeleteRole(ctx context.Context, id int) error {
	return s.roleRepo.DeleteRole(ctx, id)
}
