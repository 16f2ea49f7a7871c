package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amjed-ali-k/sbte-refactor/internal/result"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "empty input",
			err:      result.ErrEmptyInput,
			wantCode: "FILE001",
		},
		{
			name:     "decode error",
			err:      &result.DecodeError{Err: errors.New("input is not valid UTF-8 text")},
			wantCode: "FILE002",
		},
		{
			name:     "body too large",
			err:      errors.New("http: request body too large"),
			wantCode: "FILE003",
		},
		{
			name:     "no file selected",
			err:      fmt.Errorf("no file provided: %w", errors.New("http: no such file")),
			wantCode: "FILE004",
		},
		{
			name:     "malformed row in strict mode",
			err:      &result.MalformedRowError{Line: 3, Field: "grade", Value: "A+", Reason: "invalid enum value"},
			wantCode: "VAL001",
		},
		{
			name: "inconsistent student in strict mode",
			err: &result.InconsistentStudentError{
				RegisterNo: 101, Field: "branch", First: "CS", Got: "EEE",
			},
			wantCode: "VAL002",
		},
		{
			name:     "cancelled",
			err:      errors.New("context canceled"),
			wantCode: "CONV001",
		},
		{
			name:     "timeout",
			err:      errors.New("context deadline exceeded"),
			wantCode: "CONV002",
		},
		{
			name:     "unknown error falls back",
			err:      errors.New("something completely different"),
			wantCode: "ERR000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if got.Message == "" {
				t.Error("MapError() returned empty message")
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	got := MapError(nil)
	if got.Code != "" || got.Message != "" {
		t.Errorf("MapError(nil) = %+v, want zero value", got)
	}
}
