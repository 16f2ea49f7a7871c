// Package schema defines the expected column layout of the board's result
// export. The parser matches columns by normalized header name, so the specs
// here are keyed by field name rather than column position.
package schema

// FieldType represents the expected data type for an export column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInt
	FieldFloat
	FieldEnum
)

// FieldSpec defines one column of the export.
//
// Name is the lower-camel-case field name derived from the header token
// ("Register No" normalizes to "registerNo"). EnumValues is only consulted in
// strict mode; default mode lets unrecognized values pass through.
type FieldSpec struct {
	Name       string
	Header     string // conventional Title-Case header in the export
	Type       FieldType
	Required   bool // strict mode: cell must be non-empty
	EnumValues []string
}

// ResultFields lists the columns of the SBTE result export in their
// conventional order. Only Required fields are enforced, and only in strict
// mode; the default pipeline tolerates missing or malformed optional columns.
var ResultFields = []FieldSpec{
	{Name: "registerNo", Header: "Register No", Type: FieldInt, Required: true},
	{Name: "studentName", Header: "Student Name", Type: FieldText, Required: true},
	{Name: "branch", Header: "Branch", Type: FieldText},
	{Name: "semester", Header: "Semester", Type: FieldInt},
	{Name: "course", Header: "Course", Type: FieldText, Required: true},
	{Name: "examType", Header: "Exam Type", Type: FieldEnum, EnumValues: []string{"Regular", "Supplementary"}},
	{Name: "attendance", Header: "Attendance", Type: FieldEnum, EnumValues: []string{"Present", "Absent"}},
	{Name: "withheld", Header: "Withheld", Type: FieldEnum, EnumValues: []string{"Withheld", "With held for Malpractice"}},
	{Name: "iMark", Header: "I Mark", Type: FieldFloat},
	{Name: "grade", Header: "Grade", Type: FieldEnum, EnumValues: []string{"F", "E", "D", "C", "B", "A", "S"}},
	{Name: "result", Header: "Result", Type: FieldEnum, EnumValues: []string{"Pass", "Fail"}},
}
