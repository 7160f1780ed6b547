package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	Income  BillType = "income"
	Expense BillType = "expense"
)

type (
	BillType string

	// Bill is a single income or expense transaction. The sign of Amount is
	// the source of truth for its type: negative means expense, non-negative
	// means income.
	Bill struct {
		ID       string  `json:"id"`
		Title    string  `json:"title"`
		Amount   float64 `json:"amount"`
		Category string  `json:"category"`
		Date     string  `json:"date"`
	}

	// Category is a user-defined tag applied to bills. Bill.Category stores
	// the name as a plain string snapshot, not a reference; deleting a
	// category leaves existing bills untouched.
	Category struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// BillInput carries raw user input for a new bill before validation.
	BillInput struct {
		Title    string
		Amount   string
		Type     BillType
		Category string
		Date     string
	}
)

var (
	ErrMissingTitle    = errors.New("missing title")
	ErrMissingAmount   = errors.New("missing amount")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrMissingCategory = errors.New("missing category")
	ErrInvalidType     = errors.New("invalid bill type")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyName       = errors.New("empty category name")
	ErrDuplicateName   = errors.New("duplicate category name")
)

// Type derives the transaction type from the amount sign.
func (b Bill) Type() BillType {
	if b.Amount < 0 {
		return Expense
	}
	return Income
}

func (t BillType) IsValid() bool {
	return t == Income || t == Expense
}

// Validate checks a raw input without mutating it. The category only has to
// be non-empty; whether it still exists in the registry is not enforced.
func (in BillInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(in.Amount) == "" {
		return ErrMissingAmount
	}
	if _, err := ParseAmount(in.Amount); err != nil {
		return err
	}
	if !in.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrMissingCategory
	}
	if in.Date != "" {
		if _, err := ParseBillDate(in.Date); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}

// EffectiveTime resolves the calendar date a bill belongs to. It tries the
// Date field first, then falls back to interpreting a numeric ID as a
// millisecond timestamp. ok is false when neither yields a valid date; the
// bill is then skipped by date-bucketed views but stays in the raw list.
func (b Bill) EffectiveTime() (time.Time, bool) {
	if b.Date != "" {
		if t, err := ParseBillDate(b.Date); err == nil {
			return t, true
		}
	}
	if ms, err := strconv.ParseInt(b.ID, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}

// billDateLayouts are tried in order when parsing Bill.Date.
var billDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// ParseBillDate parses a user-supplied or stored date string.
func ParseBillDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range billDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// DayKey formats a time as the YYYY-MM-DD bucket key used for sectioned views.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
