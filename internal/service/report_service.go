package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Equity-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Equity-Ledger-Backend/internal/report"
)

// ReportService renders the replayed ledger as a downloadable workbook.
type ReportService struct {
	analyticsService *AnalyticsService
	generator        *report.Generator
}

// NewReportService creates a new ReportService.
func NewReportService(analyticsService *AnalyticsService, generator *report.Generator) *ReportService {
	return &ReportService{
		analyticsService: analyticsService,
		generator:        generator,
	}
}

// GenerateXLSX replays the ledger and returns the workbook bytes.
func (s *ReportService) GenerateXLSX(ctx context.Context) ([]byte, error) {
	a := s.analyticsService
	st, err := a.replay(ctx, "report")
	if err != nil {
		return nil, err
	}

	r := st.result.Realization
	out, err := s.generator.Generate(ctx, report.Data{
		GeneratedAt: a.now(),
		Trades:      r.Trades(),
		Holdings:    st.result.Holdings.Active(),
		Monthly:     r.Monthly(),
		Totals:      r.Totals(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToGenerateReport, err)
	}
	return out, nil
}
