package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"zhangben/internal/core"
	"zhangben/internal/kv"
	"zhangben/internal/report"
)

func testBillStore() (*BillStore, *kv.MemoryStore) {
	store := kv.NewMemoryStore()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	n := 0
	bills := NewBillStore(store).WithClock(func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	})
	return bills, store
}

func TestBillStoreAddAndList(t *testing.T) {
	ctx := context.Background()
	bills, _ := testBillStore()

	added, err := bills.Add(ctx, core.BillInput{
		Title:    "lunch",
		Amount:   "12.50",
		Type:     core.Expense,
		Category: "food",
		Date:     "2024-03-01T12:00:00Z",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.Amount != -12.50 {
		t.Fatalf("expense amount not negated: %v", added.Amount)
	}
	if added.ID == "" {
		t.Fatal("missing id")
	}

	list, err := bills.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d bills", len(list))
	}
	got := list[0]
	if got.Title != "lunch" || got.Category != "food" || got.Date != "2024-03-01T12:00:00Z" {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if got.Type() != core.Expense {
		t.Fatalf("type: got %s", got.Type())
	}
}

func TestBillStoreAddPrepends(t *testing.T) {
	ctx := context.Background()
	bills, _ := testBillStore()

	first, _ := bills.Add(ctx, core.BillInput{Title: "a", Amount: "1", Type: core.Income, Category: "misc"})
	second, _ := bills.Add(ctx, core.BillInput{Title: "b", Amount: "2", Type: core.Income, Category: "misc"})

	list, _ := bills.List(ctx)
	if len(list) != 2 {
		t.Fatalf("got %d bills", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("most recent bill should come first: %v %v", list[0].ID, list[1].ID)
	}
	if first.ID == second.ID {
		t.Fatal("ids must be unique")
	}
}

func TestBillStoreAddAcceptsSignedAmount(t *testing.T) {
	ctx := context.Background()
	bills, _ := testBillStore()

	// A typed minus is tolerated; the chosen type decides the stored sign.
	expense, err := bills.Add(ctx, core.BillInput{Title: "refund typo", Amount: "-5", Type: core.Expense, Category: "misc"})
	if err != nil {
		t.Fatalf("add signed expense: %v", err)
	}
	if expense.Amount != -5 {
		t.Fatalf("expense amount: got %v, want -5", expense.Amount)
	}

	income, err := bills.Add(ctx, core.BillInput{Title: "deposit", Amount: "-5", Type: core.Income, Category: "misc"})
	if err != nil {
		t.Fatalf("add signed income: %v", err)
	}
	if income.Amount != 5 {
		t.Fatalf("income amount: got %v, want 5", income.Amount)
	}
}

func TestBillStoreAddValidation(t *testing.T) {
	ctx := context.Background()
	bills, _ := testBillStore()

	cases := []struct {
		name string
		in   core.BillInput
		want error
	}{
		{"missing title", core.BillInput{Amount: "1", Type: core.Income, Category: "c"}, core.ErrMissingTitle},
		{"missing amount", core.BillInput{Title: "a", Type: core.Income, Category: "c"}, core.ErrMissingAmount},
		{"non-numeric amount", core.BillInput{Title: "a", Amount: "x", Type: core.Income, Category: "c"}, core.ErrInvalidAmount},
		{"missing category", core.BillInput{Title: "a", Amount: "1", Type: core.Income}, core.ErrMissingCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := bills.Add(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			// A refused add must not persist anything.
			list, _ := bills.List(ctx)
			if len(list) != 0 {
				t.Fatalf("partial write after validation failure: %d bills", len(list))
			}
		})
	}
}

func TestBillStoreRemoveIdempotent(t *testing.T) {
	ctx := context.Background()
	bills, _ := testBillStore()

	added, _ := bills.Add(ctx, core.BillInput{Title: "a", Amount: "1", Type: core.Income, Category: "c"})
	bills.Add(ctx, core.BillInput{Title: "b", Amount: "2", Type: core.Income, Category: "c"})

	if err := bills.Remove(ctx, added.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	afterFirst, _ := bills.List(ctx)

	if err := bills.Remove(ctx, added.ID); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	afterSecond, _ := bills.List(ctx)

	if len(afterFirst) != 1 || len(afterSecond) != 1 {
		t.Fatalf("remove not idempotent: %d then %d", len(afterFirst), len(afterSecond))
	}
	if afterSecond[0].Title != "b" {
		t.Fatalf("wrong bill removed: %+v", afterSecond[0])
	}
}

func TestBillStoreClear(t *testing.T) {
	ctx := context.Background()
	bills, store := testBillStore()

	bills.Add(ctx, core.BillInput{Title: "a", Amount: "1", Type: core.Income, Category: "c"})
	if err := bills.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	list, _ := bills.List(ctx)
	if len(list) != 0 {
		t.Fatalf("got %d bills after clear", len(list))
	}
	if _, ok, _ := store.Get(ctx, BillKey); ok {
		t.Fatal("bills key still present after clear")
	}
}

func TestBillWithoutUsableDateStaysListedButIsNotGrouped(t *testing.T) {
	ctx := context.Background()
	bills, store := testBillStore()

	// Stored garbage: unparsable date and a non-numeric id. Listing keeps the
	// record; the day-bucketed view drops it.
	store.Set(ctx, BillKey, `[{"id":"abc","title":"broken","amount":-5,"category":"misc","date":"garbage"}]`)

	list, err := bills.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Title != "broken" {
		t.Fatalf("record lost from list: %+v", list)
	}

	if sections := report.GroupByDay(list); len(sections) != 0 {
		t.Fatalf("undatable record grouped anyway: %+v", sections)
	}
}

func TestBillStoreToleratesCorruptPayload(t *testing.T) {
	ctx := context.Background()
	bills, store := testBillStore()

	store.Set(ctx, BillKey, "{not json")
	list, err := bills.List(ctx)
	if err != nil {
		t.Fatalf("list over corrupt payload: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("got %d bills", len(list))
	}
}
