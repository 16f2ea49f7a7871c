package render

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/amjed-ali-k/sbte-refactor/internal/result"
)

func sampleResults() ([]result.PivotedResult, []string) {
	results := []result.PivotedResult{
		{
			RegisterNo:  101,
			StudentName: "ANJALI K",
			Branch:      "Computer Engineering",
			Semester:    4,
			ExamType:    result.ExamRegular,
			Courses:     []string{"CS401", "CS402"},
			Outcomes: map[string]result.CourseOutcome{
				"CS401": {Kind: result.OutcomeGrade, Grade: "A"},
				"CS402": {Kind: result.OutcomeGrade, Grade: result.GradeF},
			},
		},
		{
			RegisterNo:  102,
			StudentName: "RAHUL P",
			Branch:      "Computer Engineering",
			Semester:    4,
			ExamType:    result.ExamRegular,
			Withheld:    result.WithheldPlain,
			Courses:     []string{"CS401"},
			Outcomes: map[string]result.CourseOutcome{
				"CS401": {Kind: result.OutcomeAbsent},
			},
		},
	}
	return results, result.CourseUniverse(results)
}

func TestWorkbook_Layout(t *testing.T) {
	results, courses := sampleResults()

	f, err := Workbook(results, courses, Options{})
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue(defaultSheetName, ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", ref, err)
		}
		return v
	}

	// Title in the merged first row.
	if got := cell("A1"); got != defaultTitle {
		t.Errorf("A1 = %q, want %q", got, defaultTitle)
	}
	merges, err := f.GetMergeCells(defaultSheetName)
	if err != nil {
		t.Fatalf("GetMergeCells() error = %v", err)
	}
	if len(merges) != 1 {
		t.Fatalf("got %d merge ranges, want 1", len(merges))
	}
	// 5 meta columns + 2 courses + remarks = 8 columns (A..H).
	if merges[0].GetStartAxis() != "A1" || merges[0].GetEndAxis() != "H1" {
		t.Errorf("title merge = %s:%s, want A1:H1", merges[0].GetStartAxis(), merges[0].GetEndAxis())
	}

	// Header row.
	wantHeader := map[string]string{
		"A2": "Register No",
		"B2": "Student Name",
		"C2": "Branch",
		"D2": "Semester",
		"E2": "Exam Type",
		"F2": "CS401",
		"G2": "CS402",
		"H2": "Remarks",
	}
	for ref, want := range wantHeader {
		if got := cell(ref); got != want {
			t.Errorf("%s = %q, want %q", ref, got, want)
		}
	}

	// Student rows.
	if got := cell("A3"); got != "101" {
		t.Errorf("A3 = %q, want %q", got, "101")
	}
	if got := cell("F3"); got != "A" {
		t.Errorf("F3 = %q, want %q", got, "A")
	}
	if got := cell("G3"); got != "F" {
		t.Errorf("G3 = %q, want %q", got, "F")
	}
	if got := cell("F4"); got != "Absent" {
		t.Errorf("F4 = %q, want %q", got, "Absent")
	}
	// Student 102 never sat CS402.
	if got := cell("G4"); got != "" {
		t.Errorf("G4 = %q, want empty", got)
	}
	// Withheld remark for student 102 only.
	if got := cell("H4"); got != string(result.WithheldPlain) {
		t.Errorf("H4 = %q, want %q", got, result.WithheldPlain)
	}
	if got := cell("H3"); got != "" {
		t.Errorf("H3 = %q, want empty", got)
	}
}

func TestWorkbook_OutcomeStyling(t *testing.T) {
	results, courses := sampleResults()

	f, err := Workbook(results, courses, Options{})
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}
	defer f.Close()

	style := func(ref string) int {
		id, err := f.GetCellStyle(defaultSheetName, ref)
		if err != nil {
			t.Fatalf("GetCellStyle(%s) error = %v", ref, err)
		}
		return id
	}

	passStyle := style("F3")    // grade A: default styling
	failStyle := style("G3")    // grade F
	absentStyle := style("F4")  // absent
	remarkStyle := style("H4")  // withheld remark

	if failStyle == passStyle {
		t.Error("fail grade cell has the same style as a passing grade cell")
	}
	if absentStyle == passStyle {
		t.Error("absent cell has the same style as a passing grade cell")
	}
	if absentStyle == failStyle {
		t.Error("absent cell has the same style as a fail cell")
	}
	if remarkStyle == passStyle {
		t.Error("withheld remark cell has the same style as a plain cell")
	}
}

func TestWorkbook_SheetAndTitleOptions(t *testing.T) {
	results, courses := sampleResults()

	f, err := Workbook(results, courses, Options{SheetName: "Tabulation", Title: "April 2024 Results"})
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}
	defer f.Close()

	v, err := f.GetCellValue("Tabulation", "A1")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if v != "April 2024 Results" {
		t.Errorf("A1 = %q, want custom title", v)
	}
}

func TestWorkbook_ColumnWidths(t *testing.T) {
	results, courses := sampleResults()

	f, err := Workbook(results, courses, Options{})
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}
	defer f.Close()

	nameWidth, err := f.GetColWidth(defaultSheetName, "B")
	if err != nil {
		t.Fatalf("GetColWidth() error = %v", err)
	}
	courseWidth, err := f.GetColWidth(defaultSheetName, "F")
	if err != nil {
		t.Fatalf("GetColWidth() error = %v", err)
	}
	if nameWidth < float64(minColWidth) || nameWidth > float64(maxColWidth) {
		t.Errorf("name column width = %v, want within [%d, %d]", nameWidth, minColWidth, maxColWidth)
	}
	if courseWidth < float64(minColWidth) {
		t.Errorf("course column width = %v, want at least %d", courseWidth, minColWidth)
	}
	// Long branch names widen their column beyond the minimum.
	branchWidth, err := f.GetColWidth(defaultSheetName, "C")
	if err != nil {
		t.Fatalf("GetColWidth() error = %v", err)
	}
	if branchWidth <= courseWidth {
		t.Errorf("branch width = %v, want wider than course width %v", branchWidth, courseWidth)
	}
}

func TestWriteTo(t *testing.T) {
	results, courses := sampleResults()

	var buf bytes.Buffer
	if err := WriteTo(&buf, results, courses, Options{}); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("WriteTo() produced no bytes")
	}

	// The stream must round-trip as a readable workbook.
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); len(got) != 1 || got[0] != defaultSheetName {
		t.Errorf("sheets = %v, want [%s]", got, defaultSheetName)
	}
}

func TestWorkbook_NoStudents(t *testing.T) {
	f, err := Workbook(nil, nil, Options{})
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}
	defer f.Close()

	// Still produces the title and the fixed header columns.
	v, err := f.GetCellValue(defaultSheetName, "A2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if v != "Register No" {
		t.Errorf("A2 = %q, want %q", v, "Register No")
	}
}
