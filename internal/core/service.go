// Package core orchestrates the conversion pipeline: parse the raw export,
// pivot it into per-student records, and render the styled workbook. Both the
// CLI and the web server sit on top of this package. It has no UI
// dependencies.
package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/amjed-ali-k/sbte-refactor/internal/config"
	"github.com/amjed-ali-k/sbte-refactor/internal/logging"
	"github.com/amjed-ali-k/sbte-refactor/internal/render"
	"github.com/amjed-ali-k/sbte-refactor/internal/result"
)

// Service runs conversions according to the loaded configuration.
type Service struct {
	cfg *config.Config
}

// NewService creates a Service with the given configuration.
func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// ConversionResult summarizes one completed conversion.
type ConversionResult struct {
	ConversionID string
	Rows         int // data rows parsed (empty rows excluded)
	Students     int // distinct register numbers
	Courses      int // distinct course codes across all students
	Duration     time.Duration
}

// Convert runs the full pipeline over one raw export and returns the summary
// together with the rendered workbook. The caller owns the workbook and must
// Close it. There is no partial success: on error nothing is produced.
//
// The whole pass is synchronous and in-memory; an export covers a cohort, not
// a large-scale dataset.
func (s *Service) Convert(ctx context.Context, r io.Reader) (*ConversionResult, *excelize.File, error) {
	start := time.Now()
	id := uuid.NewString()
	logger := logging.WithFields(ctx, "conversion_id", id)

	rows, err := result.ParseWith(r, result.ParseOptions{Strict: s.cfg.Convert.Strict})
	if err != nil {
		logger.Warn("parse failed", "error", err)
		return nil, nil, err
	}

	var pivoted []result.PivotedResult
	if s.cfg.Convert.Strict {
		pivoted, err = result.PivotStrict(rows)
		if err != nil {
			logger.Warn("pivot failed", "error", err)
			return nil, nil, err
		}
	} else {
		pivoted = result.Pivot(rows)
	}

	courses := result.CourseUniverse(pivoted)

	f, err := render.Workbook(pivoted, courses, render.Options{SheetName: s.cfg.Convert.SheetName})
	if err != nil {
		return nil, nil, fmt.Errorf("rendering workbook: %w", err)
	}

	res := &ConversionResult{
		ConversionID: id,
		Rows:         len(rows),
		Students:     len(pivoted),
		Courses:      len(courses),
		Duration:     time.Since(start),
	}

	logger.Info("conversion complete",
		"rows", res.Rows,
		"students", res.Students,
		"courses", res.Courses,
		"duration_ms", res.Duration.Milliseconds(),
	)

	return res, f, nil
}
