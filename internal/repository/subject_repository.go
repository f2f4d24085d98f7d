package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milkyano-media/aspire-backend/internal/model"
)

// SubjectRepository handles subject data access.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

// List retrieves all subjects ordered by name.
func (r *SubjectRepository) List(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, slug, description, created_at, updated_at
		 FROM subjects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []model.Subject{}
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// GetBySlug retrieves a subject by its landing-page slug.
func (r *SubjectRepository) GetBySlug(ctx context.Context, slug string) (*model.Subject, error) {
	s := &model.Subject{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, slug, description, created_at, updated_at
		 FROM subjects WHERE slug = $1`, slug,
	).Scan(&s.ID, &s.Name, &s.Slug, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (name, slug, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Slug, s.Description,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update modifies an existing subject.
func (r *SubjectRepository) Update(ctx context.Context, s *model.Subject) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE subjects SET name = $1, slug = $2, description = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		s.Name, s.Slug, s.Description, s.ID,
	)
	return err
}

// Delete removes a subject by its ID.
func (r *SubjectRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	return err
}
