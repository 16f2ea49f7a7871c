package result

import "strconv"

// Pivot groups flat rows by register number into one record per student, in
// first-seen order of register number across the input.
//
// The very first row seen for a student seeds the student metadata and that
// row's course outcome via the derivation rule (deriveOutcome). Every later
// row for the same student stores the row's grade field verbatim instead,
// bypassing the derivation rule entirely: a later row with an empty grade
// leaves an unset outcome even when its attendance or withheld columns would
// have implied something else. Downstream cell styling depends on the exact
// stored tag; see the pivot tests for the canonical example.
//
// Pivot itself cannot fail. PivotStrict adds metadata consistency checking.
func Pivot(rows []FlatResult) []PivotedResult {
	out, _ := pivot(rows, false)
	return out
}

// PivotStrict behaves like Pivot but rejects repeated rows whose student
// metadata (name, branch, semester, exam type, withheld) disagrees with the
// first-seen row for that register number.
func PivotStrict(rows []FlatResult) ([]PivotedResult, error) {
	return pivot(rows, true)
}

func pivot(rows []FlatResult, strict bool) ([]PivotedResult, error) {
	byReg := make(map[int]int) // register number -> index in out
	var out []PivotedResult

	for _, row := range rows {
		i, seen := byReg[row.RegisterNo]
		if !seen {
			byReg[row.RegisterNo] = len(out)
			out = append(out, PivotedResult{
				RegisterNo:  row.RegisterNo,
				StudentName: row.StudentName,
				Branch:      row.Branch,
				Semester:    row.Semester,
				ExamType:    row.ExamType,
				Withheld:    row.Withheld,
				Courses:     []string{row.Course},
				Outcomes:    map[string]CourseOutcome{row.Course: deriveOutcome(row)},
			})
			continue
		}

		p := &out[i]
		if strict {
			if err := checkConsistent(p, row); err != nil {
				return nil, err
			}
		}
		if _, ok := p.Outcomes[row.Course]; !ok {
			p.Courses = append(p.Courses, row.Course)
		}
		p.Outcomes[row.Course] = outcomeFromGrade(row.Grade)
	}

	return out, nil
}

// deriveOutcome resolves a row's display outcome by strict precedence:
// an explicit grade wins, then absence, then malpractice (recorded as a fail
// grade), then a plain withheld result. Anything else is unset.
func deriveOutcome(row FlatResult) CourseOutcome {
	switch {
	case row.Grade != nil:
		return CourseOutcome{Kind: OutcomeGrade, Grade: *row.Grade}
	case row.Attendance == Absent:
		return CourseOutcome{Kind: OutcomeAbsent}
	case row.Withheld == WithheldMalpractice:
		return CourseOutcome{Kind: OutcomeGrade, Grade: GradeF}
	case row.Withheld == WithheldPlain:
		return CourseOutcome{Kind: OutcomeWithheld}
	default:
		return CourseOutcome{Kind: OutcomeUnset}
	}
}

// outcomeFromGrade stores a raw grade value as-is: nil becomes an unset
// outcome, anything else a grade outcome.
func outcomeFromGrade(g *Grade) CourseOutcome {
	if g == nil {
		return CourseOutcome{Kind: OutcomeUnset}
	}
	return CourseOutcome{Kind: OutcomeGrade, Grade: *g}
}

func checkConsistent(p *PivotedResult, row FlatResult) error {
	mismatch := func(field, first, got string) error {
		return &InconsistentStudentError{RegisterNo: row.RegisterNo, Field: field, First: first, Got: got}
	}
	switch {
	case row.StudentName != p.StudentName:
		return mismatch("studentName", p.StudentName, row.StudentName)
	case row.Branch != p.Branch:
		return mismatch("branch", p.Branch, row.Branch)
	case row.Semester != p.Semester:
		return mismatch("semester", strconv.Itoa(p.Semester), strconv.Itoa(row.Semester))
	case row.ExamType != p.ExamType:
		return mismatch("examType", string(p.ExamType), string(row.ExamType))
	case row.Withheld != p.Withheld:
		return mismatch("withheld", string(p.Withheld), string(row.Withheld))
	}
	return nil
}

// CourseUniverse returns the distinct course codes across all students in
// global first-seen order: each student's courses are scanned in their stored
// order, students in their stored order, and a course is added the first time
// it appears. The renderer uses this as the workbook column ordering.
func CourseUniverse(results []PivotedResult) []string {
	seen := make(map[string]bool)
	var courses []string
	for _, p := range results {
		for _, c := range p.Courses {
			if !seen[c] {
				seen[c] = true
				courses = append(courses, c)
			}
		}
	}
	return courses
}
