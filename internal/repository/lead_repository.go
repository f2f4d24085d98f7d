package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milkyano-media/aspire-backend/internal/model"
)

// LeadRepository handles consultation lead data access.
type LeadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository creates a new LeadRepository.
func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

// Create inserts a new lead captured from the consultation form.
func (r *LeadRepository) Create(ctx context.Context, l *model.Lead) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO leads (parent_name, parent_email, parent_phone, student_name,
		                    year_level, subjects, message, source, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		l.ParentName, l.ParentEmail, l.ParentPhone, l.StudentName,
		l.YearLevel, l.Subjects, l.Message, l.Source, l.Status,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

// GetByID retrieves a lead by its ID.
func (r *LeadRepository) GetByID(ctx context.Context, id int) (*model.Lead, error) {
	l := &model.Lead{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, parent_name, parent_email, parent_phone, student_name,
		        year_level, subjects, message, source, status, created_at, updated_at
		 FROM leads WHERE id = $1`, id,
	).Scan(&l.ID, &l.ParentName, &l.ParentEmail, &l.ParentPhone, &l.StudentName,
		&l.YearLevel, &l.Subjects, &l.Message, &l.Source, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// List retrieves leads newest first, optionally filtered by status, with
// offset pagination.
func (r *LeadRepository) List(ctx context.Context, status model.LeadStatus, page, perPage int) ([]model.Lead, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	var total int
	var err error
	if status != "" {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads WHERE status = $1`, status).Scan(&total)
	} else {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&total)
	}
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, parent_name, parent_email, parent_phone, student_name,
	                 year_level, subjects, message, source, status, created_at, updated_at
	          FROM leads`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, status, perPage, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, perPage, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := []model.Lead{}
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(&l.ID, &l.ParentName, &l.ParentEmail, &l.ParentPhone, &l.StudentName,
			&l.YearLevel, &l.Subjects, &l.Message, &l.Source, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, err
		}
		leads = append(leads, l)
	}
	return leads, total, rows.Err()
}

// ListAll retrieves every lead newest first, for export.
func (r *LeadRepository) ListAll(ctx context.Context) ([]model.Lead, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, parent_name, parent_email, parent_phone, student_name,
		        year_level, subjects, message, source, status, created_at, updated_at
		 FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []model.Lead{}
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(&l.ID, &l.ParentName, &l.ParentEmail, &l.ParentPhone, &l.StudentName,
			&l.YearLevel, &l.Subjects, &l.Message, &l.Source, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// UpdateStatus moves a lead to a new follow-up status. Returns the number
// of affected rows so callers can distinguish a missing lead.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id int, status model.LeadStatus) (int64, error) {
	res, err := r.pool.Exec(ctx,
		`UPDATE leads SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

// CountByStatus returns the lead counts grouped by status.
func (r *LeadRepository) CountByStatus(ctx context.Context) (map[model.LeadStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.LeadStatus]int)
	for rows.Next() {
		var status model.LeadStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
