package report

import (
	"testing"
	"time"

	"zhangben/internal/core"
)

func TestGroupByDay(t *testing.T) {
	bills := []core.Bill{
		{ID: "1", Title: "a", Date: "2024-03-01"},
		{ID: "2", Title: "b", Date: "2024-03-01"},
		{ID: "3", Title: "c", Date: "2024-03-02"},
	}

	sections := GroupByDay(bills)
	if len(sections) != 2 {
		t.Fatalf("got %d sections", len(sections))
	}
	if sections[0].Key != "2024-03-01" || sections[1].Key != "2024-03-02" {
		t.Fatalf("key order: %s, %s", sections[0].Key, sections[1].Key)
	}
	if len(sections[0].Bills) != 2 {
		t.Fatalf("first section has %d bills", len(sections[0].Bills))
	}
	if sections[0].Bills[0].ID != "1" || sections[0].Bills[1].ID != "2" {
		t.Fatal("relative input order lost within a day")
	}
	if len(sections[1].Bills) != 1 || sections[1].Bills[0].ID != "3" {
		t.Fatalf("second section: %+v", sections[1].Bills)
	}
}

func TestGroupByDayKeyOrderIsFirstEncounter(t *testing.T) {
	// A later date appearing first in the input must head the sections.
	bills := []core.Bill{
		{ID: "1", Date: "2024-03-05"},
		{ID: "2", Date: "2024-03-01"},
		{ID: "3", Date: "2024-03-05"},
	}
	sections := GroupByDay(bills)
	if len(sections) != 2 {
		t.Fatalf("got %d sections", len(sections))
	}
	if sections[0].Key != "2024-03-05" || sections[1].Key != "2024-03-01" {
		t.Fatalf("sections sorted instead of insertion-ordered: %s, %s",
			sections[0].Key, sections[1].Key)
	}
}

func TestGroupByDayIDTimestampFallback(t *testing.T) {
	bills := []core.Bill{
		// 2024-05-15T12:00:00Z in epoch milliseconds
		{ID: "1715774400000", Date: ""},
	}
	sections := GroupByDay(bills)
	if len(sections) != 1 || sections[0].Key != "2024-05-15" {
		t.Fatalf("fallback grouping: %+v", sections)
	}
}

func TestGroupByDayDropsMalformedRecords(t *testing.T) {
	bills := []core.Bill{
		{ID: "abc", Title: "broken", Date: "garbage"},
		{ID: "2", Title: "fine", Date: "2024-03-01"},
	}
	sections := GroupByDay(bills)
	if len(sections) != 1 {
		t.Fatalf("got %d sections", len(sections))
	}
	if len(sections[0].Bills) != 1 || sections[0].Bills[0].Title != "fine" {
		t.Fatalf("malformed record not dropped: %+v", sections[0].Bills)
	}
}

func TestFilterByMonth(t *testing.T) {
	bills := []core.Bill{
		{ID: "1", Date: "2024-04-30"},
		{ID: "2", Date: "2024-05-01"},
		{ID: "3", Date: "2024-05-31"},
		{ID: "4", Date: "not-a-date"},
	}
	ref := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	kept := FilterByMonth(bills, &ref)
	if len(kept) != 2 {
		t.Fatalf("got %d bills", len(kept))
	}
	if kept[0].ID != "2" || kept[1].ID != "3" {
		t.Fatalf("wrong bills kept: %+v", kept)
	}
}

func TestFilterByMonthNilReferencePassesThrough(t *testing.T) {
	bills := []core.Bill{
		{ID: "1", Date: "2024-04-30"},
		{ID: "2", Date: "garbage"},
	}
	kept := FilterByMonth(bills, nil)
	if len(kept) != 2 {
		t.Fatalf("nil reference must not filter: got %d", len(kept))
	}
}

func TestAggregateTotals(t *testing.T) {
	bills := []core.Bill{
		{Amount: 100},
		{Amount: -40},
		{Amount: -10},
	}
	got := AggregateTotals(bills)
	if got.TotalIncome != 100 {
		t.Fatalf("income: got %v", got.TotalIncome)
	}
	if got.TotalExpense != -50 {
		t.Fatalf("expense: got %v", got.TotalExpense)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	bills := []core.Bill{
		{Category: "food", Amount: -20},
		{Category: "transport", Amount: -15},
		{Category: "food", Amount: -5},
		{Category: "salary", Amount: 1000}, // income, excluded
	}

	got := CategoryBreakdown(bills, core.Expense)
	if len(got) != 2 {
		t.Fatalf("got %d slices", len(got))
	}
	if got[0].Category != "food" || got[0].Amount != 25 || got[0].ColorSeed != 0 {
		t.Fatalf("first slice: %+v", got[0])
	}
	if got[1].Category != "transport" || got[1].Amount != 15 || got[1].ColorSeed != 1 {
		t.Fatalf("second slice: %+v", got[1])
	}
}

func TestCategorySliceColor(t *testing.T) {
	cases := []struct {
		seed int
		want string
	}{
		{0, "hsl(0, 70%, 60%)"},
		{1, "hsl(60, 70%, 60%)"},
		{6, "hsl(0, 70%, 60%)"}, // wraps around
	}
	for _, tc := range cases {
		if got := (CategorySlice{ColorSeed: tc.seed}).Color(); got != tc.want {
			t.Fatalf("seed %d: got %q, want %q", tc.seed, got, tc.want)
		}
	}
}

func TestBuildMonthSections(t *testing.T) {
	bills := []core.Bill{
		{ID: "1", Date: "2024-05-01"},
		{ID: "2", Date: "2024-05-01"},
		{ID: "3", Date: "2024-04-30"},
	}
	ref := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	sections := BuildMonthSections(bills, &ref)
	if len(sections) != 1 {
		t.Fatalf("got %d sections", len(sections))
	}
	if sections[0].Key != "2024-05-01" || len(sections[0].Bills) != 2 {
		t.Fatalf("section: %+v", sections[0])
	}
}
