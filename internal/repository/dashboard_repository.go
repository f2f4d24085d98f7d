package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milkyano-media/aspire-backend/internal/model"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level metrics for the dashboard.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (totalLeads, totalCourses, publishedCourses, totalSubjects int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM leads),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM courses WHERE published),
			(SELECT COUNT(*) FROM subjects)`,
	).Scan(&totalLeads, &totalCourses, &publishedCourses, &totalSubjects)
	return
}

// DashboardRecentLead is the trimmed lead row shown on the dashboard.
type DashboardRecentLead struct {
	ID          int              `json:"id"`
	ParentName  string           `json:"parent_name"`
	StudentName string           `json:"student_name"`
	YearLevel   string           `json:"year_level"`
	Status      model.LeadStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

// GetRecentLeads retrieves the last N captured leads.
func (r *DashboardRepository) GetRecentLeads(ctx context.Context, limit int) ([]DashboardRecentLead, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, parent_name, student_name, year_level, status, created_at
		 FROM leads ORDER BY created_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []DashboardRecentLead{}
	for rows.Next() {
		var l DashboardRecentLead
		if err := rows.Scan(&l.ID, &l.ParentName, &l.StudentName, &l.YearLevel, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// GetLeadCountsSince returns the number of leads captured per day since the
// given time, for the dashboard intake chart.
func (r *DashboardRepository) GetLeadCountsSince(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DATE(created_at)::text, COUNT(*)
		 FROM leads WHERE created_at >= $1
		 GROUP BY DATE(created_at) ORDER BY DATE(created_at)`, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		counts[day] = count
	}
	return counts, rows.Err()
}
