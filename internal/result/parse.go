package result

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/amjed-ali-k/sbte-refactor/internal/schema"
)

// ParseOptions controls parser behavior.
//
// Strict turns silent coercion into errors: malformed numbers, unknown enum
// values, and empty required cells fail the whole parse with a
// MalformedRowError. Default mode mirrors the export-tool behavior the board's
// clerks rely on: bad cells coerce to zero values and flow through.
type ParseOptions struct {
	Strict bool
}

// Parse decodes the raw export into flat result rows with default options.
func Parse(r io.Reader) ([]FlatResult, error) {
	return ParseWith(r, ParseOptions{})
}

// ParseWith decodes the raw export into flat result rows, preserving input
// order. There is no partial success: any error aborts with no output.
//
// The export is comma-separated with a single header line. Semicolon
// delimiters are tolerated in the header line only, since some spreadsheet
// locales re-save the header that way. Fully empty rows are skipped.
func ParseWith(r io.Reader, opts ParseOptions) ([]FlatResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &DecodeError{Err: errors.New("input is not valid UTF-8 text")}
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, ErrEmptyInput
	}

	lines[0] = strings.ReplaceAll(lines[0], ";", ",")

	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if len(records) < 2 {
		return nil, ErrEmptyInput
	}

	idx := headerIndex(records[0])

	out := make([]FlatResult, 0, len(records)-1)
	for i, row := range records[1:] {
		if emptyRow(row) {
			continue
		}
		line := i + 2 // 1-based, header is line 1
		fr, err := buildRow(row, idx, line, opts.Strict)
		if err != nil {
			return nil, err
		}
		out = append(out, fr)
	}
	return out, nil
}

// headerIndex maps normalized header names to their column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := NormalizeHeader(h)
		if key == "" {
			continue
		}
		if _, seen := idx[key]; seen {
			continue // first occurrence wins
		}
		idx[key] = i
	}
	return idx
}

// NormalizeHeader converts a header token to its lower-camel-case field name:
// the first word keeps its casing except for a lowered first letter, each
// later word gets an uppercased first letter, and all whitespace is stripped.
// "Register No" and "RegisterNo" both normalize to "registerNo".
func NormalizeHeader(h string) string {
	words := strings.Fields(strings.TrimSpace(h))
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if i == 0 {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		b.WriteString(w[size:])
	}
	return b.String()
}

func emptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// buildRow assembles one FlatResult from a raw record using the column specs.
// Default mode never fails: missing columns stay at their zero values and
// malformed cells coerce (ints to 0, floats to nil). Unknown enum spellings
// pass through as-is so they remain visible in the final workbook.
func buildRow(row []string, idx map[string]int, line int, strict bool) (FlatResult, error) {
	var fr FlatResult
	for _, spec := range schema.ResultFields {
		var raw string
		if pos, ok := idx[spec.Name]; ok && pos < len(row) {
			raw = strings.TrimSpace(row[pos])
		}

		if strict {
			canon, err := validateCell(spec, raw, line)
			if err != nil {
				return FlatResult{}, err
			}
			raw = canon
		}

		switch spec.Name {
		case "registerNo":
			fr.RegisterNo = toInt(raw)
		case "studentName":
			fr.StudentName = raw
		case "branch":
			fr.Branch = raw
		case "semester":
			fr.Semester = toInt(raw)
		case "course":
			fr.Course = raw
		case "examType":
			fr.ExamType = ExamType(raw)
		case "attendance":
			fr.Attendance = Attendance(raw)
		case "withheld":
			fr.Withheld = Withheld(raw)
		case "iMark":
			fr.Mark = toFloat(raw)
		case "grade":
			if raw != "" {
				g := Grade(raw)
				fr.Grade = &g
			}
		case "result":
			if raw != "" {
				res := Result(raw)
				fr.Result = &res
			}
		}
	}
	return fr, nil
}

// validateCell enforces the column spec in strict mode. Enum matching is
// case-insensitive and returns the canonical spelling.
func validateCell(spec schema.FieldSpec, raw string, line int) (string, error) {
	if raw == "" {
		if spec.Required {
			return "", &MalformedRowError{Line: line, Field: spec.Name, Value: raw, Reason: "required field is empty"}
		}
		return raw, nil
	}

	switch spec.Type {
	case schema.FieldInt:
		if _, err := strconv.Atoi(raw); err != nil {
			return "", &MalformedRowError{Line: line, Field: spec.Name, Value: raw, Reason: "invalid number"}
		}
	case schema.FieldFloat:
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return "", &MalformedRowError{Line: line, Field: spec.Name, Value: raw, Reason: "invalid number"}
		}
	case schema.FieldEnum:
		for _, v := range spec.EnumValues {
			if strings.EqualFold(raw, v) {
				return v, nil
			}
		}
		return "", &MalformedRowError{Line: line, Field: spec.Name, Value: raw, Reason: "invalid enum value"}
	}
	return raw, nil
}

func toInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func toFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
