// Package result implements the core of the tabulation pipeline: parsing the
// board's long-format result export (one row per student/course pair) and
// pivoting it into one record per student with a course→outcome mapping.
// This package has no rendering or HTTP dependencies.
package result

// ExamType distinguishes regular from supplementary examination sittings.
type ExamType string

const (
	ExamRegular       ExamType = "Regular"
	ExamSupplementary ExamType = "Supplementary"
)

// Attendance is the recorded attendance for one student/course pair.
type Attendance string

const (
	Present Attendance = "Present"
	Absent  Attendance = "Absent"
)

// Withheld marks results held back by the board. The empty string means the
// result is not withheld. WithheldMalpractice is the exact phrase used in the
// board's export, including the space in "With held".
type Withheld string

const (
	NotWithheld         Withheld = ""
	WithheldPlain       Withheld = "Withheld"
	WithheldMalpractice Withheld = "With held for Malpractice"
)

// Grade is a letter grade on the board's ordered scale (F lowest, S highest).
// It is deliberately an open string type: unrecognized values from the export
// pass through untouched in default mode and are only rejected in strict mode.
type Grade string

// GradeScale lists the known grades in ascending order.
var GradeScale = []Grade{"F", "E", "D", "C", "B", "A", "S"}

const GradeF Grade = "F"

// Valid reports whether the grade is on the known scale.
func (g Grade) Valid() bool {
	for _, k := range GradeScale {
		if g == k {
			return true
		}
	}
	return false
}

// Result is the pass/fail verdict column of the export.
type Result string

const (
	Pass Result = "Pass"
	Fail Result = "Fail"
)

// FlatResult is one parsed row of the raw export: a single student/course pair.
// Nullable columns (Mark, Grade, Result) are pointers; nil means the cell was
// empty. Withheld's zero value means the column was empty.
type FlatResult struct {
	RegisterNo  int
	StudentName string
	Branch      string
	Semester    int
	Course      string
	ExamType    ExamType
	Attendance  Attendance
	Withheld    Withheld
	Mark        *float64
	Grade       *Grade
	Result      *Result
}

// OutcomeKind tags the variant stored in a CourseOutcome.
type OutcomeKind int

const (
	OutcomeUnset OutcomeKind = iota
	OutcomeGrade
	OutcomeAbsent
	OutcomeWithheld
)

// String returns the tag name, mainly for log output and test failure messages.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeGrade:
		return "grade"
	case OutcomeAbsent:
		return "absent"
	case OutcomeWithheld:
		return "withheld"
	default:
		return "unset"
	}
}

// CourseOutcome is the resolved status of one student in one course. Grade is
// only meaningful when Kind is OutcomeGrade.
type CourseOutcome struct {
	Kind  OutcomeKind
	Grade Grade
}

// PivotedResult is one aggregated row per student. Metadata fields are copied
// from the first raw row seen for the student; later rows are trusted to agree
// and are not checked in default mode (see PivotStrict).
//
// Courses preserves the order in which the student's courses first appeared in
// the input. Outcomes holds exactly one entry per course in Courses.
type PivotedResult struct {
	RegisterNo  int
	StudentName string
	Branch      string
	Semester    int
	ExamType    ExamType
	Withheld    Withheld
	Courses     []string
	Outcomes    map[string]CourseOutcome
}
