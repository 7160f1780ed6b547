package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"zhangben/internal/core"
	"zhangben/internal/kv"
)

func testRegistry() (*CategoryRegistry, *kv.MemoryStore) {
	store := kv.NewMemoryStore()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	n := 0
	reg := NewCategoryRegistry(store).WithClock(func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	})
	return reg, store
}

func TestCategoryRegistryAddAndList(t *testing.T) {
	ctx := context.Background()
	reg, _ := testRegistry()

	food, err := reg.Add(ctx, "food")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if food.Name != "food" || food.ID == "" {
		t.Fatalf("unexpected category: %+v", food)
	}

	reg.Add(ctx, "transport")
	list, err := reg.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "food" || list[1].Name != "transport" {
		t.Fatalf("insertion order lost: %+v", list)
	}
}

func TestCategoryRegistryRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	reg, _ := testRegistry()

	reg.Add(ctx, "food")
	if _, err := reg.Add(ctx, "food"); !errors.Is(err, core.ErrDuplicateName) {
		t.Fatalf("got %v, want ErrDuplicateName", err)
	}

	// Case-sensitive: a different casing is a different category.
	if _, err := reg.Add(ctx, "Food"); err != nil {
		t.Fatalf("different casing rejected: %v", err)
	}

	list, _ := reg.List(ctx)
	if len(list) != 2 {
		t.Fatalf("registry changed by rejected add: %+v", list)
	}
}

func TestCategoryRegistryRejectsBlankNames(t *testing.T) {
	ctx := context.Background()
	reg, _ := testRegistry()

	for _, name := range []string{"", "   ", "\t"} {
		if _, err := reg.Add(ctx, name); !errors.Is(err, core.ErrEmptyName) {
			t.Fatalf("%q: got %v, want ErrEmptyName", name, err)
		}
	}
}

func TestCategoryRegistryTrimsNames(t *testing.T) {
	ctx := context.Background()
	reg, _ := testRegistry()

	c, err := reg.Add(ctx, "  food  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.Name != "food" {
		t.Fatalf("name not trimmed: %q", c.Name)
	}
	// The trimmed name counts for duplicate detection.
	if _, err := reg.Add(ctx, "food"); !errors.Is(err, core.ErrDuplicateName) {
		t.Fatalf("got %v, want ErrDuplicateName", err)
	}
}

func TestCategoryRegistryRemoveIdempotent(t *testing.T) {
	ctx := context.Background()
	reg, _ := testRegistry()

	c, _ := reg.Add(ctx, "food")
	if err := reg.Remove(ctx, c.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := reg.Remove(ctx, c.ID); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if err := reg.Remove(ctx, "never-existed"); err != nil {
		t.Fatalf("remove unknown id: %v", err)
	}

	list, _ := reg.List(ctx)
	if len(list) != 0 {
		t.Fatalf("got %d categories", len(list))
	}
}

func TestCategoryRemovalDoesNotCascadeToBills(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	reg := NewCategoryRegistry(store)
	bills := NewBillStore(store)

	c, _ := reg.Add(ctx, "food")
	bills.Add(ctx, core.BillInput{Title: "lunch", Amount: "10", Type: core.Expense, Category: "food"})

	if err := reg.Remove(ctx, c.ID); err != nil {
		t.Fatalf("remove category: %v", err)
	}

	list, _ := bills.List(ctx)
	if len(list) != 1 || list[0].Category != "food" {
		t.Fatalf("orphaned category snapshot lost: %+v", list)
	}
}
