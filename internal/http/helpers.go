package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"zhangben/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON renders v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps a ledger error to an HTTP status and a JSON error body.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrMissingTitle),
		errors.Is(err, core.ErrMissingAmount),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrMissingCategory),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrEmptyName):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrDuplicateName):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// requireMethod enforces the allowed methods, answering 405 otherwise.
func requireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	w.WriteHeader(http.StatusMethodNotAllowed)
	return false
}

// formValue reads a named value from form body or query, sanitized.
func formValue(r *http.Request, key string) string {
	return sanitizeInput(r.FormValue(key))
}

// parseMonthRef extracts an optional year/month filter from the query. A
// request without both parameters means "no filter" and returns nil.
func parseMonthRef(r *http.Request) (*time.Time, error) {
	yearStr := strings.TrimSpace(r.URL.Query().Get("year"))
	monthStr := strings.TrimSpace(r.URL.Query().Get("month"))
	if yearStr == "" && monthStr == "" {
		return nil, nil
	}
	if yearStr == "" || monthStr == "" {
		return nil, fmt.Errorf("year and month must be provided together")
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, fmt.Errorf("invalid year %q", yearStr)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %q", monthStr)
	}

	ref := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return &ref, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
