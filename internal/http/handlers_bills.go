package http

import (
	"log/slog"
	"net/http"

	"zhangben/internal/core"
	"zhangben/internal/log"
)

// billDTO is a Bill plus its sign-derived type, for clients that render the
// two kinds differently.
type billDTO struct {
	core.Bill
	Type core.BillType `json:"type"`
}

func toBillDTOs(bills []core.Bill) []billDTO {
	out := make([]billDTO, len(bills))
	for i, b := range bills {
		out[i] = billDTO{Bill: b, Type: b.Type()}
	}
	return out
}

// loadBills reads the bill list through the cache.
func (s *Server) loadBills(r *http.Request) ([]core.Bill, error) {
	if bills, ok := s.billsCache.Get("bills"); ok {
		return bills, nil
	}
	bills, err := s.ledger.ListBills(r.Context())
	if err != nil {
		return nil, err
	}
	s.billsCache.Set("bills", bills)
	return bills, nil
}

func (s *Server) handleBills(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListBills(w, r)
	case http.MethodPost:
		s.handleCreateBill(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.loadBills(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list bills", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bills": toBillDTOs(bills)})
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	billType := core.BillType(formValue(r, "type"))
	if billType == "" {
		billType = core.Expense
	}

	in := core.BillInput{
		Title:    formValue(r, "title"),
		Amount:   formValue(r, "amount"),
		Type:     billType,
		Category: formValue(r, "category"),
		Date:     formValue(r, "date"),
	}

	bill, err := s.ledger.AddBill(r.Context(), in)
	if err != nil {
		slog.WarnContext(r.Context(), "Bill rejected",
			"error", err, "title", in.Title, "category", in.Category)
		writeError(w, err)
		return
	}

	s.invalidateCaches()

	slog.InfoContext(r.Context(), "Bill created",
		log.FieldComponent, log.ComponentHTTP,
		log.FieldBillID, bill.ID,
		log.FieldBillTitle, bill.Title,
		log.FieldAmount, bill.Amount,
		log.FieldCategory, bill.Category,
		log.FieldBillType, bill.Type())

	writeJSON(w, http.StatusCreated, billDTO{Bill: bill, Type: bill.Type()})
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, http.MethodDelete) {
		return
	}

	id := formValue(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing id"})
		return
	}

	if err := s.ledger.DeleteBill(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete bill",
			log.FieldComponent, log.ComponentHTTP,
			log.FieldBillID, id,
			log.FieldError, err.Error())
		writeError(w, err)
		return
	}

	s.invalidateCaches()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleClearBills erases the whole ledger. The destructive path only runs
// with an explicit confirm flag; without it nothing is mutated.
func (s *Server) handleClearBills(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	if confirm := formValue(r, "confirm"); confirm != "true" && confirm != "1" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "confirmation required: pass confirm=true"})
		return
	}

	if err := s.ledger.ClearBills(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to clear bills", "error", err)
		writeError(w, err)
		return
	}

	s.invalidateCaches()
	slog.WarnContext(r.Context(), "Bill ledger cleared by user request")
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
