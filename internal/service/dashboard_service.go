package service

import (
	"context"
	"time"

	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/repository"
)

// DashboardData aggregates everything the admin landing page shows.
type DashboardData struct {
	TotalLeads       int                              `json:"total_leads"`
	TotalCourses     int                              `json:"total_courses"`
	PublishedCourses int                              `json:"published_courses"`
	TotalSubjects    int                              `json:"total_subjects"`
	LeadsByStatus    map[model.LeadStatus]int         `json:"leads_by_status"`
	RecentLeads      []repository.DashboardRecentLead `json:"recent_leads"`
	LeadsPerDay      map[string]int                   `json:"leads_per_day"`
}

// DashboardService assembles admin dashboard data.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	leadRepo      *repository.LeadRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository, leadRepo *repository.LeadRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo, leadRepo: leadRepo}
}

// GetDashboardData retrieves summary counts, status distribution, recent
// leads, and the 30-day intake chart.
func (s *DashboardService) GetDashboardData(ctx context.Context) (*DashboardData, error) {
	totalLeads, totalCourses, publishedCourses, totalSubjects, err := s.dashboardRepo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.leadRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.dashboardRepo.GetRecentLeads(ctx, 10)
	if err != nil {
		return nil, err
	}

	perDay, err := s.dashboardRepo.GetLeadCountsSince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		TotalLeads:       totalLeads,
		TotalCourses:     totalCourses,
		PublishedCourses: publishedCourses,
		TotalSubjects:    totalSubjects,
		LeadsByStatus:    byStatus,
		RecentLeads:      recent,
		LeadsPerDay:      perDay,
	}, nil
}
