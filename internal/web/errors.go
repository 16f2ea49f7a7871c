package web

// errors.go provides unified error response handling for the web layer.
//
// Errors are logged with full technical details server-side and returned to
// clients as user-friendly JSON messages with action suggestions and a
// support code, mapped via core.MapError.

import (
	"encoding/json"
	"net/http"

	"github.com/amjed-ali-k/sbte-refactor/internal/core"
	"github.com/amjed-ali-k/sbte-refactor/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error with request context and writes a
// user-friendly JSON error response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// writeJSON writes a successful JSON response.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// logConvertWriteFailure records a workbook streaming failure after response
// headers have been sent.
func logConvertWriteFailure(r *http.Request, err error) {
	logging.FromContext(r.Context()).Error("workbook write aborted",
		"path", r.URL.Path,
		"error", err.Error(),
	)
}
