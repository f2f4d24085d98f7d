package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milkyano-media/aspire-backend/internal/model"
)

// CourseRepository handles local course listing data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `c.id, c.title, c.subject_id, s.name, c.year_level,
	c.description, c.price_cents, c.published, c.created_at, c.updated_at`

func scanCourse(row interface{ Scan(...any) error }, c *model.Course) error {
	return row.Scan(&c.ID, &c.Title, &c.SubjectID, &c.SubjectName, &c.YearLevel,
		&c.Description, &c.PriceCents, &c.Published, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID retrieves a course listing by its ID.
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	c := &model.Course{}
	err := scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+`
		 FROM courses c JOIN subjects s ON c.subject_id = s.id
		 WHERE c.id = $1`, id,
	), c)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all course listings, optionally restricted to published ones.
func (r *CourseRepository) List(ctx context.Context, publishedOnly bool) ([]model.Course, error) {
	query := `SELECT ` + courseColumns + `
		 FROM courses c JOIN subjects s ON c.subject_id = s.id`
	if publishedOnly {
		query += ` WHERE c.published`
	}
	query += ` ORDER BY s.name, c.year_level, c.title`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Create inserts a new course listing.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (title, subject_id, year_level, description, price_cents, published)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Title, c.SubjectID, c.YearLevel, c.Description, c.PriceCents, c.Published,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies an existing course listing.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses
		 SET title = $1, subject_id = $2, year_level = $3, description = $4,
		     price_cents = $5, published = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		c.Title, c.SubjectID, c.YearLevel, c.Description, c.PriceCents, c.Published, c.ID,
	)
	return err
}

// Delete removes a course listing by its ID.
func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	return err
}
