package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	"github.com/SAP-F-2025/classroom-intro-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

var rosterHeaders = []string{
	"Name", "Email", "Preferred Name", "Pronouns", "Major",
	"Goals", "Fun Fact", "Learning Needs", "Updated At",
}

func (s *exportService) ExportRoster(ctx context.Context, course *models.Course, query string) (*excelize.File, error) {
	profiles, err := s.repo.Profile().SearchByCourse(ctx, course.ID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles for export: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Roster"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range rosterHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, p := range profiles {
		row := i + 2
		values := []any{
			p.OwnerName, p.OwnerEmail, p.PreferredName, p.Pronouns,
			p.Major, p.Goals, p.FunFact, p.LearningNeeds,
			p.UpdatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	s.logger.Info("Roster exported", "course_id", course.ID, "rows", len(profiles))
	return f, nil
}
