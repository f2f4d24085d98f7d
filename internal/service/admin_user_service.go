package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milkyano-media/aspire-backend/internal/model"
)

// Admin user management errors surfaced to handlers.
var (
	ErrAdminNotFound    = errors.New("admin not found")
	ErrEmailAlreadyUsed = errors.New("email already registered")
)

// AdminUserService handles admin account management (CRUD).
type AdminUserService struct {
	pool *pgxpool.Pool
	auth *AuthService
}

// NewAdminUserService creates a new AdminUserService.
func NewAdminUserService(pool *pgxpool.Pool, auth *AuthService) *AdminUserService {
	return &AdminUserService{pool: pool, auth: auth}
}

// ListAdmins retrieves a paginated list of admins, optionally filtered by role.
func (s *AdminUserService) ListAdmins(ctx context.Context, roleID, page, perPage int) ([]model.Admin, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	offset := (page - 1) * perPage

	var total int
	var err error
	if roleID > 0 {
		err = s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins WHERE role_id = $1`, roleID).Scan(&total)
	} else {
		err = s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&total)
	}
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT a.id, a.email, a.name, a.role_id, a.created_at, a.updated_at, r.name
	          FROM admins a JOIN roles r ON a.role_id = r.id`
	args := []interface{}{}
	if roleID > 0 {
		query += ` WHERE a.role_id = $1 ORDER BY a.created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, roleID, perPage, offset)
	} else {
		query += ` ORDER BY a.created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, perPage, offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	admins := []model.Admin{}
	for rows.Next() {
		var a model.Admin
		if err := rows.Scan(&a.ID, &a.Email, &a.Name, &a.RoleID, &a.CreatedAt, &a.UpdatedAt, &a.RoleName); err != nil {
			return nil, 0, err
		}
		admins = append(admins, a)
	}
	return admins, total, rows.Err()
}

// CreateAdmin creates a new admin user.
func (s *AdminUserService) CreateAdmin(ctx context.Context, req *model.CreateAdminRequest) (*model.Admin, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM admins WHERE email = $1)`, req.Email).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyUsed
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var id int
	err = s.pool.QueryRow(ctx,
		`INSERT INTO admins (email, name, password_hash, role_id)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		req.Email, req.Name, hash, req.RoleID,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return s.getAdmin(ctx, id)
}

// UpdateAdmin updates an existing admin user. An empty password keeps the
// current hash.
func (s *AdminUserService) UpdateAdmin(ctx context.Context, id int, req *model.UpdateAdminRequest) (*model.Admin, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM admins WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrAdminNotFound
	}

	var emailTaken bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM admins WHERE email = $1 AND id != $2)`, req.Email, id).Scan(&emailTaken); err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, ErrEmailAlreadyUsed
	}

	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		_, err = s.pool.Exec(ctx,
			`UPDATE admins SET email = $1, name = $2, password_hash = $3, role_id = $4, updated_at = NOW()
			 WHERE id = $5`,
			req.Email, req.Name, hash, req.RoleID, id,
		)
		if err != nil {
			return nil, err
		}
	} else {
		_, err := s.pool.Exec(ctx,
			`UPDATE admins SET email = $1, name = $2, role_id = $3, updated_at = NOW()
			 WHERE id = $4`,
			req.Email, req.Name, req.RoleID, id,
		)
		if err != nil {
			return nil, err
		}
	}

	return s.getAdmin(ctx, id)
}

// DeleteAdmin deletes an admin user.
func (s *AdminUserService) DeleteAdmin(ctx context.Context, id int) error {
	res, err := s.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func (s *AdminUserService) getAdmin(ctx context.Context, id int) (*model.Admin, error) {
	var admin model.Admin
	err := s.pool.QueryRow(ctx,
		`SELECT a.id, a.email, a.name, a.role_id, a.created_at, a.updated_at, r.name
		 FROM admins a JOIN roles r ON a.role_id = r.id
		 WHERE a.id = $1`, id,
	).Scan(&admin.ID, &admin.Email, &admin.Name, &admin.RoleID, &admin.CreatedAt, &admin.UpdatedAt, &admin.RoleName)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
