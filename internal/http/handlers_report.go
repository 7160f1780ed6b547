package http

import (
	"log/slog"
	"net/http"

	"zhangben/internal/core"
	"zhangben/internal/report"
)

// chartEntry is one slice of the category breakdown, with the color the
// chart renderer should use.
type chartEntry struct {
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	ColorSeed int     `json:"colorSeed"`
	Color     string  `json:"color"`
}

// handleSections returns day-bucketed bill sections, optionally restricted
// to one calendar month via year/month query parameters.
func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	ref, err := parseMonthRef(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	cacheKey := "all"
	if ref != nil {
		cacheKey = ref.Format("2006-01")
	}
	if sections, ok := s.sectionsCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, map[string]any{"sections": sections})
		return
	}

	bills, err := s.loadBills(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load bills for sections", "error", err)
		writeError(w, err)
		return
	}

	sections := report.BuildMonthSections(bills, ref)
	if sections == nil {
		sections = []report.DaySection{}
	}
	s.sectionsCache.Set(cacheKey, sections)

	writeJSON(w, http.StatusOK, map[string]any{"sections": sections})
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	bills, err := s.loadBills(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load bills for totals", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report.AggregateTotals(bills))
}

// handleChart returns the per-category breakdown driving the pie chart.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	billType := core.BillType(r.URL.Query().Get("type"))
	if !billType.IsValid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "type must be 'income' or 'expense'"})
		return
	}

	bills, err := s.loadBills(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load bills for chart", "error", err)
		writeError(w, err)
		return
	}

	slices := report.CategoryBreakdown(bills, billType)
	entries := make([]chartEntry, len(slices))
	for i, sl := range slices {
		entries[i] = chartEntry{
			Category:  sl.Category,
			Amount:    sl.Amount,
			ColorSeed: sl.ColorSeed,
			Color:     sl.Color(),
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"type": billType, "entries": entries})
}
