// Package render turns pivoted results into a styled xlsx workbook. It is a
// mechanical consumer of the core pipeline: one row per student, one column
// per course, with conditional cell fills for the special outcome statuses.
package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/amjed-ali-k/sbte-refactor/internal/result"
)

// Options configures workbook rendering.
type Options struct {
	// SheetName is the worksheet name (default "Result").
	SheetName string
	// Title is the merged heading above the table (default "Semester Result Tabulation").
	Title string
}

const (
	defaultSheetName = "Result"
	defaultTitle     = "Semester Result Tabulation"

	// Fixed columns before the per-course columns.
	metaColumns = 5 // Register No, Student Name, Branch, Semester, Exam Type

	minColWidth = 8
	maxColWidth = 40
)

// fixedHeaders are the student metadata columns; course codes follow them and
// a remarks column closes the table.
var fixedHeaders = []string{"Register No", "Student Name", "Branch", "Semester", "Exam Type"}

// styles groups the style IDs created once per workbook.
type styles struct {
	title    int
	header   int
	fail     int
	absent   int
	withheld int
}

// Workbook builds the tabulation workbook. Rows appear in the order of
// results; course columns follow the courses slice, which the caller derives
// with result.CourseUniverse so column order is stable across students.
func Workbook(results []result.PivotedResult, courses []string, opts Options) (*excelize.File, error) {
	sheet := opts.SheetName
	if sheet == "" {
		sheet = defaultSheetName
	}
	title := opts.Title
	if title == "" {
		title = defaultTitle
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	headers := make([]string, 0, metaColumns+len(courses)+1)
	headers = append(headers, fixedHeaders...)
	headers = append(headers, courses...)
	headers = append(headers, "Remarks")

	if err := writeTitle(f, sheet, title, len(headers), st); err != nil {
		return nil, err
	}
	if err := writeHeader(f, sheet, headers, st); err != nil {
		return nil, err
	}

	for i, p := range results {
		if err := writeStudent(f, sheet, i+3, p, courses, st); err != nil {
			return nil, err
		}
	}

	if err := setColumnWidths(f, sheet, headers, results); err != nil {
		return nil, err
	}

	// Keep the title and header rows visible while scrolling.
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      2,
		TopLeftCell: "A3",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freezing header rows: %w", err)
	}

	return f, nil
}

// WriteTo renders the workbook and streams the xlsx bytes to w.
func WriteTo(w io.Writer, results []result.PivotedResult, courses []string, opts Options) error {
	f, err := Workbook(results, courses, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Save renders the workbook to a file on disk.
func Save(path string, results []result.PivotedResult, courses []string, opts Options) error {
	f, err := Workbook(results, courses, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return st, fmt.Errorf("creating title style: %w", err)
	}

	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return st, fmt.Errorf("creating header style: %w", err)
	}

	// Classic Excel "bad"/"neutral" palettes so the statuses read at a glance.
	st.fail, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}},
	})
	if err != nil {
		return st, fmt.Errorf("creating fail style: %w", err)
	}

	st.absent, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C6500"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFEB9C"}},
	})
	if err != nil {
		return st, fmt.Errorf("creating absent style: %w", err)
	}

	st.withheld, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "3F3F3F", Italic: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9D9D9"}},
	})
	if err != nil {
		return st, fmt.Errorf("creating withheld style: %w", err)
	}

	return st, nil
}

func writeTitle(f *excelize.File, sheet, title string, width int, st styles) error {
	last, err := excelize.CoordinatesToCellName(width, 1)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", last); err != nil {
		return fmt.Errorf("merging title cells: %w", err)
	}
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, st.title)
}

func writeHeader(f *excelize.File, sheet string, headers []string, st styles) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 2)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A2", last, st.header)
}

func writeStudent(f *excelize.File, sheet string, row int, p result.PivotedResult, courses []string, st styles) error {
	meta := []any{p.RegisterNo, p.StudentName, p.Branch, p.Semester, string(p.ExamType)}
	for i, v := range meta {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}

	for i, course := range courses {
		cell, err := excelize.CoordinatesToCellName(metaColumns+i+1, row)
		if err != nil {
			return err
		}
		outcome, ok := p.Outcomes[course]
		if !ok {
			continue // student did not sit this course
		}
		text, styleID := outcomeCell(outcome, st)
		if text != "" {
			if err := f.SetCellValue(sheet, cell, text); err != nil {
				return err
			}
		}
		if styleID != 0 {
			if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
				return err
			}
		}
	}

	if p.Withheld != result.NotWithheld {
		cell, err := excelize.CoordinatesToCellName(metaColumns+len(courses)+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, string(p.Withheld)); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.withheld); err != nil {
			return err
		}
	}
	return nil
}

// outcomeCell maps an outcome to its display text and style. A zero style ID
// means default styling.
func outcomeCell(o result.CourseOutcome, st styles) (string, int) {
	switch o.Kind {
	case result.OutcomeGrade:
		if o.Grade == result.GradeF {
			return string(o.Grade), st.fail
		}
		return string(o.Grade), 0
	case result.OutcomeAbsent:
		return "Absent", st.absent
	case result.OutcomeWithheld:
		return "Withheld", st.withheld
	default:
		return "", 0
	}
}

// setColumnWidths applies a content-length width heuristic, clamped so
// long names cannot blow up the layout.
func setColumnWidths(f *excelize.File, sheet string, headers []string, results []result.PivotedResult) error {
	widths := make([]float64, len(headers))
	for i, h := range headers {
		widths[i] = cellWidth(h) + 2 // header buffer
	}
	for _, p := range results {
		if w := cellWidth(p.StudentName); w > widths[1] {
			widths[1] = w
		}
		if w := cellWidth(p.Branch); w > widths[2] {
			widths[2] = w
		}
	}
	for i := range widths {
		if widths[i] < minColWidth {
			widths[i] = minColWidth
		}
		if widths[i] > maxColWidth {
			widths[i] = maxColWidth
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return err
		}
	}
	return nil
}

func cellWidth(s string) float64 {
	n := 0
	for range s {
		n++
	}
	return float64(n) * 1.1
}
