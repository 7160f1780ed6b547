// Package report derives date-bucketed and category-level views from a bill
// list. All functions are pure over their input slice and never touch the
// backing store.
package report

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"zhangben/internal/core"
)

type (
	// DaySection is one rendered section: a day key and the bills that fall
	// on that day, in the relative order they appeared in the input.
	DaySection struct {
		Key   string      `json:"key"`
		Bills []core.Bill `json:"bills"`
	}

	// Totals holds the sign-classified sums over a bill list. TotalExpense
	// keeps the raw negative sum; display code decides how to present it.
	Totals struct {
		TotalIncome  float64 `json:"totalIncome"`
		TotalExpense float64 `json:"totalExpense"`
	}

	// CategorySlice is one entry of a category breakdown, sized by the sum
	// of absolute amounts. ColorSeed is the discovery index of the category
	// and drives deterministic chart coloring.
	CategorySlice struct {
		Category  string  `json:"category"`
		Amount    float64 `json:"amount"`
		ColorSeed int     `json:"colorSeed"`
	}
)

// Color returns the chart color for this slice, derived from its seed.
func (s CategorySlice) Color() string {
	return fmt.Sprintf("hsl(%d, 70%%, 60%%)", (s.ColorSeed*60)%360)
}

// GroupByDay buckets bills by calendar day. The day comes from the date
// field when it parses, else from a numeric ID treated as a millisecond
// timestamp; bills with neither are skipped with a diagnostic so one
// malformed record cannot abort the whole view. Sections appear in the order
// their keys were first encountered.
func GroupByDay(bills []core.Bill) []DaySection {
	index := make(map[string]int)
	var sections []DaySection

	for _, b := range bills {
		t, ok := b.EffectiveTime()
		if !ok {
			slog.Warn("Bill has no usable date, skipping from grouping",
				"id", b.ID, "date", b.Date)
			continue
		}
		key := core.DayKey(t)

		i, seen := index[key]
		if !seen {
			i = len(sections)
			index[key] = i
			sections = append(sections, DaySection{Key: key})
		}
		sections[i].Bills = append(sections[i].Bills, b)
	}

	return sections
}

// FilterByMonth keeps bills whose date falls in the same calendar year and
// month as ref. A nil ref returns the input unchanged; a bill with an
// unparsable date simply fails the comparison and is excluded.
func FilterByMonth(bills []core.Bill, ref *time.Time) []core.Bill {
	if ref == nil {
		return bills
	}

	var kept []core.Bill
	for _, b := range bills {
		t, err := core.ParseBillDate(b.Date)
		if err != nil {
			continue
		}
		if t.Year() == ref.Year() && t.Month() == ref.Month() {
			kept = append(kept, b)
		}
	}
	return kept
}

// AggregateTotals sums amounts by sign classification. Sums are plain
// full-precision additions; nothing is rounded here.
func AggregateTotals(bills []core.Bill) Totals {
	var t Totals
	for _, b := range bills {
		if b.Type() == core.Income {
			t.TotalIncome += b.Amount
		} else {
			t.TotalExpense += b.Amount
		}
	}
	return t
}

// CategoryBreakdown sums absolute amounts per distinct category over bills
// of the requested type. Output order and color seeds follow the order each
// category was first seen; categories with no matching bills do not appear.
func CategoryBreakdown(bills []core.Bill, billType core.BillType) []CategorySlice {
	index := make(map[string]int)
	var slices []CategorySlice

	for _, b := range bills {
		if b.Type() != billType {
			continue
		}
		i, seen := index[b.Category]
		if !seen {
			i = len(slices)
			index[b.Category] = i
			slices = append(slices, CategorySlice{Category: b.Category, ColorSeed: i})
		}
		slices[i].Amount += math.Abs(b.Amount)
	}

	return slices
}

// BuildMonthSections is the composed view behind the home screen: an
// optional month filter followed by day bucketing.
func BuildMonthSections(bills []core.Bill, ref *time.Time) []DaySection {
	return GroupByDay(FilterByMonth(bills, ref))
}
