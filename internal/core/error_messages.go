package core

// error_messages.go maps internal errors to user-facing messages.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. When users encounter errors, they can quote the error code for
// faster diagnosis.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Empty file: the export has no data rows
//	          Action: Export the results again and include the data rows
//	          Patterns: "no data rows"
//
//	FILE002 - Encoding error: the file cannot be decoded as text
//	          Action: Save the export as UTF-8 CSV and retry
//	          Patterns: "encoding error"
//
//	FILE003 - File too large: the upload exceeds the size limit
//	          Action: Upload one semester export at a time
//	          Patterns: "request body too large", "file too large"
//
//	FILE004 - No file: no file was selected
//	          Action: Choose the result export file before submitting
//	          Patterns: "no file provided"
//
// # Validation Errors (VAL001-VAL099)
//
// Only produced in strict mode; default mode coerces silently.
//
//	VAL001 - Malformed row: a cell failed strict validation
//	         Action: Fix the reported line in the export, or disable strict mode
//	         Patterns: "malformed row"
//
//	VAL002 - Inconsistent student: repeated rows for one register number disagree
//	         Action: Check the reported register number in the export
//	         Patterns: "inconsistent student data"
//
// # Conversion Errors (CONV001-CONV099)
//
//	CONV001 - Request cancelled
//	          Patterns: "context canceled"
//
//	CONV002 - Request timeout
//	          Patterns: "context deadline exceeded"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches.
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come before general ones.

import (
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "no data rows",
		msg: UserMessage{
			Message: "The uploaded file has no data rows",
			Action:  "Export the results again and make sure the data rows are included",
			Code:    "FILE001",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "The file could not be read as text",
			Action:  "Save the export as UTF-8 CSV and try again",
			Code:    "FILE002",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The file exceeds the upload size limit",
			Action:  "Upload one semester export at a time",
			Code:    "FILE003",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the upload size limit",
			Action:  "Upload one semester export at a time",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose the result export file before submitting",
			Code:    "FILE004",
		},
	},
	{
		pattern: "malformed row",
		msg: UserMessage{
			Message: "A row in the export failed validation",
			Action:  "Fix the reported line in the export, or disable strict mode",
			Code:    "VAL001",
		},
	},
	{
		pattern: "inconsistent student data",
		msg: UserMessage{
			Message: "Repeated rows for one register number do not match",
			Action:  "Check the reported register number in the export",
			Code:    "VAL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "CONV001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "CONV002",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-friendly message.
// The original error should still be logged server-side for debugging.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(errStr, p.pattern) {
			return p.msg
		}
	}

	return defaultMessage
}
