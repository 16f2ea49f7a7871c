package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/amjed-ali-k/sbte-refactor/internal/config"
	"github.com/amjed-ali-k/sbte-refactor/internal/result"
)

const sampleExport = `Register No,Student Name,Branch,Semester,Course,Exam Type,Attendance,Withheld,I Mark,Grade,Result
101,ANJALI K,CS,4,CS401,Regular,Present,,45,A,Pass
101,ANJALI K,CS,4,CS402,Regular,Present,,30,F,Fail
102,RAHUL P,CS,4,CS401,Regular,Absent,,,,
102,RAHUL P,CS,4,CS402,Regular,Present,,41,B,Pass
103,MEERA S,CS,4,CS401,Regular,Present,Withheld,,,
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	return cfg
}

func TestService_Convert(t *testing.T) {
	s := NewService(testConfig(t))

	res, workbook, err := s.Convert(context.Background(), strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	defer workbook.Close()

	if res.Rows != 5 {
		t.Errorf("Rows = %d, want 5", res.Rows)
	}
	if res.Students != 3 {
		t.Errorf("Students = %d, want 3", res.Students)
	}
	if res.Courses != 2 {
		t.Errorf("Courses = %d, want 2", res.Courses)
	}
	if res.ConversionID == "" {
		t.Error("ConversionID is empty")
	}

	// Spot-check that the pipeline output landed in the workbook.
	got, err := workbook.GetCellValue("Result", "F3")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if got != "A" {
		t.Errorf("first student CS401 cell = %q, want %q", got, "A")
	}
	got, err = workbook.GetCellValue("Result", "F4")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if got != "Absent" {
		t.Errorf("second student CS401 cell = %q, want %q", got, "Absent")
	}
}

func TestService_ConvertEmptyInput(t *testing.T) {
	s := NewService(testConfig(t))

	_, _, err := s.Convert(context.Background(), strings.NewReader("Register No,Course\n"))
	if !errors.Is(err, result.ErrEmptyInput) {
		t.Errorf("Convert() error = %v, want ErrEmptyInput", err)
	}
}

func TestService_ConvertStrict(t *testing.T) {
	cfg := testConfig(t)
	cfg.Convert.Strict = true
	s := NewService(cfg)

	bad := "Register No,Student Name,Branch,Semester,Course,Exam Type,Attendance,Withheld,I Mark,Grade,Result\n" +
		"oops,ANJALI K,CS,4,CS401,Regular,Present,,45,A,Pass\n"

	_, _, err := s.Convert(context.Background(), strings.NewReader(bad))
	var rowErr *result.MalformedRowError
	if !errors.As(err, &rowErr) {
		t.Errorf("Convert() error = %v, want MalformedRowError in strict mode", err)
	}

	// The same input converts fine in default mode.
	cfg2 := testConfig(t)
	s2 := NewService(cfg2)
	res, workbook, err := s2.Convert(context.Background(), strings.NewReader(bad))
	if err != nil {
		t.Fatalf("Convert() default mode error = %v", err)
	}
	defer workbook.Close()
	if res.Students != 1 {
		t.Errorf("Students = %d, want 1", res.Students)
	}
}

func TestService_ConvertStrictInconsistentStudent(t *testing.T) {
	cfg := testConfig(t)
	cfg.Convert.Strict = true
	s := NewService(cfg)

	bad := "Register No,Student Name,Branch,Semester,Course,Exam Type,Attendance,Withheld,I Mark,Grade,Result\n" +
		"101,ANJALI K,CS,4,CS401,Regular,Present,,45,A,Pass\n" +
		"101,ANJALI KUMARI,CS,4,CS402,Regular,Present,,40,B,Pass\n"

	_, _, err := s.Convert(context.Background(), strings.NewReader(bad))
	var incErr *result.InconsistentStudentError
	if !errors.As(err, &incErr) {
		t.Errorf("Convert() error = %v, want InconsistentStudentError in strict mode", err)
	}
}
