package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/milkyano-media/aspire-backend/internal/config"
	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/repository"
)

// ErrLeadNotFound is returned when a lead ID resolves to nothing.
var ErrLeadNotFound = errors.New("lead not found")

// LeadService handles consultation lead intake and follow-up.
type LeadService struct {
	leadRepo *repository.LeadRepository
	rdb      *redis.Client
	cfg      *config.Config
	log      zerolog.Logger
}

// NewLeadService creates a new LeadService.
func NewLeadService(leadRepo *repository.LeadRepository, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *LeadService {
	return &LeadService{
		leadRepo: leadRepo,
		rdb:      rdb,
		cfg:      cfg,
		log:      log.With().Str("component", "lead_service").Logger(),
	}
}

// Create stores a new lead and queues a confirmation email to the parent.
// A queueing failure is logged but does not fail the intake — the lead is
// already stored and a missing confirmation is recoverable by a human.
func (s *LeadService) Create(ctx context.Context, req *model.CreateLeadRequest) (*model.Lead, error) {
	source := req.Source
	if source == "" {
		source = "consultation"
	}

	lead := &model.Lead{
		ParentName:  req.ParentName,
		ParentEmail: req.ParentEmail,
		ParentPhone: req.ParentPhone,
		StudentName: req.StudentName,
		YearLevel:   req.YearLevel,
		Subjects:    req.Subjects,
		Message:     req.Message,
		Source:      source,
		Status:      model.LeadStatusNew,
	}
	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}

	if err := s.queueConfirmation(ctx, lead); err != nil {
		s.log.Error().Err(err).Int("lead_id", lead.ID).Msg("Failed to queue confirmation email")
	}

	return lead, nil
}

// List retrieves leads with optional status filter and pagination.
func (s *LeadService) List(ctx context.Context, status model.LeadStatus, page, perPage int) ([]model.Lead, int, error) {
	return s.leadRepo.List(ctx, status, page, perPage)
}

// UpdateStatus moves a lead to a new follow-up status.
func (s *LeadService) UpdateStatus(ctx context.Context, id int, status model.LeadStatus) error {
	affected, err := s.leadRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// ExportXLSX renders every lead into a spreadsheet for the admin dashboard.
func (s *LeadService) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	leads, err := s.leadRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildLeadWorkbook(leads)
}

// BuildLeadWorkbook renders leads into an xlsx workbook, one row per lead.
func BuildLeadWorkbook(leads []model.Lead) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"ID", "Parent", "Email", "Phone", "Student", "Year Level", "Subjects", "Source", "Status", "Received"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, l := range leads {
		values := []interface{}{
			l.ID, l.ParentName, l.ParentEmail, l.ParentPhone, l.StudentName,
			l.YearLevel, strings.Join(l.Subjects, ", "), l.Source, string(l.Status),
			l.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func (s *LeadService) queueConfirmation(ctx context.Context, lead *model.Lead) error {
	msg := model.EmailMessage{
		ToName:  lead.ParentName,
		ToEmail: lead.ParentEmail,
		Subject: "We received your consultation request",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nThanks for reaching out about tutoring for %s (%s). "+
				"One of our team will be in touch within one business day to book your free consultation.\n\n"+
				"— %s",
			lead.ParentName, lead.StudentName, lead.YearLevel, s.cfg.EmailFromName,
		),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Thanks for reaching out about tutoring for <strong>%s</strong> (%s). "+
				"One of our team will be in touch within one business day to book your free consultation.</p>"+
				"<p>— %s</p>",
			lead.ParentName, lead.StudentName, lead.YearLevel, s.cfg.EmailFromName,
		),
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, config.WorkerKey.EmailSendQueue, raw).Err()
}
