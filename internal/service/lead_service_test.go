package service

import (
	"testing"
	"time"

	"github.com/milkyano-media/aspire-backend/internal/model"
)

func TestBuildLeadWorkbook(t *testing.T) {
	leads := []model.Lead{
		{
			ID:          1,
			ParentName:  "Jordan Perera",
			ParentEmail: "jordan@example.com",
			ParentPhone: "0400123456",
			StudentName: "Sam Perera",
			YearLevel:   "7",
			Subjects:    []string{"Mathematics", "English"},
			Source:      "consultation",
			Status:      model.LeadStatusNew,
			CreatedAt:   time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC),
		},
	}

	f, err := BuildLeadWorkbook(leads)
	if err != nil {
		t.Fatalf("BuildLeadWorkbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)

	header, err := f.GetCellValue(sheet, "A1")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if header != "ID" {
		t.Errorf("A1 = %q, want ID", header)
	}

	checks := map[string]string{
		"B2": "Jordan Perera",
		"C2": "jordan@example.com",
		"E2": "Sam Perera",
		"G2": "Mathematics, English",
		"I2": "NEW",
		"J2": "2026-08-14 10:30",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}

func TestBuildLeadWorkbookEmpty(t *testing.T) {
	f, err := BuildLeadWorkbook(nil)
	if err != nil {
		t.Fatalf("BuildLeadWorkbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	header, _ := f.GetCellValue(sheet, "A1")
	if header != "ID" {
		t.Errorf("A1 = %q, want header row even with no leads", header)
	}
	rowTwo, _ := f.GetCellValue(sheet, "A2")
	if rowTwo != "" {
		t.Errorf("A2 = %q, want empty", rowTwo)
	}
}
