// Package ledger implements the persisted bill list and category registry.
//
// Both collections live as JSON arrays under fixed keys in a kv.Store; every
// mutation re-reads the current state, applies the change and writes the full
// array back. A failed or absent read is treated as an empty collection.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"zhangben/internal/core"
	"zhangben/internal/kv"
)

// Fixed keys in the backing store.
const (
	BillKey     = "bills"
	CategoryKey = "categories"
)

// BillStore owns the persisted bill list.
type BillStore struct {
	store kv.Store

	mu     sync.Mutex
	now    func() time.Time
	lastID int64
}

func NewBillStore(store kv.Store) *BillStore {
	return &BillStore{store: store, now: time.Now}
}

// WithClock overrides the time source used for ID generation.
func (s *BillStore) WithClock(now func() time.Time) *BillStore {
	s.now = now
	return s
}

// nextID returns a millisecond timestamp that is strictly greater than any
// previously issued ID, so back-to-back adds never collide.
func (s *BillStore) nextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ms := s.now().UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return strconv.FormatInt(ms, 10)
}

// List loads the full bill list. Insertion order is preserved; Add prepends,
// so the most recently added bill comes first.
func (s *BillStore) List(ctx context.Context) ([]core.Bill, error) {
	return loadList[core.Bill](ctx, s.store, BillKey)
}

// Add validates the input, normalizes the amount sign for the chosen type,
// prepends the new bill to the persisted list and returns the record.
func (s *BillStore) Add(ctx context.Context, in core.BillInput) (core.Bill, error) {
	if err := in.Validate(); err != nil {
		return core.Bill{}, err
	}

	magnitude, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Bill{}, err
	}

	bill := core.Bill{
		ID:       s.nextID(),
		Title:    in.Title,
		Amount:   core.NormalizeAmount(in.Type, magnitude),
		Category: in.Category,
		Date:     in.Date,
	}

	bills, err := s.List(ctx)
	if err != nil {
		return core.Bill{}, fmt.Errorf("load bills: %w", err)
	}

	updated := append([]core.Bill{bill}, bills...)
	if err := saveList(ctx, s.store, BillKey, updated); err != nil {
		return core.Bill{}, fmt.Errorf("save bills: %w", err)
	}

	slog.InfoContext(ctx, "Bill saved",
		"id", bill.ID,
		"title", bill.Title,
		"amount", bill.Amount,
		"category", bill.Category,
		"type", bill.Type())

	return bill, nil
}

// Remove deletes the bill with the given ID. Removing an unknown ID is a
// no-op, not an error.
func (s *BillStore) Remove(ctx context.Context, id string) error {
	bills, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("load bills: %w", err)
	}

	kept := bills[:0]
	for _, b := range bills {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(bills) {
		slog.DebugContext(ctx, "Bill not found, nothing removed", "id", id)
		return nil
	}

	if err := saveList(ctx, s.store, BillKey, kept); err != nil {
		return fmt.Errorf("save bills: %w", err)
	}

	slog.InfoContext(ctx, "Bill removed", "id", id, "remaining", len(kept))
	return nil
}

// Clear erases the entire bill collection. Irreversible; callers gate it
// behind an explicit confirmation step. A failed delete leaves prior state
// intact.
func (s *BillStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, BillKey); err != nil {
		return fmt.Errorf("clear bills: %w", err)
	}
	slog.WarnContext(ctx, "All bills cleared")
	return nil
}

// loadList reads a JSON array from the store. Absent keys, read errors and
// corrupt payloads all degrade to an empty list so one bad read cannot take
// down the whole view.
func loadList[T any](ctx context.Context, store kv.Store, key string) ([]T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "KV read failed, treating as empty", "key", key, "error", err)
		return nil, nil
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.WarnContext(ctx, "Stored list is not valid JSON, treating as empty", "key", key, "error", err)
		return nil, nil
	}
	return items, nil
}

func saveList[T any](ctx context.Context, store kv.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := store.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
