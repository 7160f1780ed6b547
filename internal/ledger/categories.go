package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"zhangben/internal/core"
	"zhangben/internal/kv"
)

// CategoryRegistry owns the set of valid categories. Bills reference
// categories by name snapshot only, so removing a category never cascades.
type CategoryRegistry struct {
	store kv.Store

	mu     sync.Mutex
	now    func() time.Time
	lastID int64
}

func NewCategoryRegistry(store kv.Store) *CategoryRegistry {
	return &CategoryRegistry{store: store, now: time.Now}
}

// WithClock overrides the time source used for ID generation.
func (r *CategoryRegistry) WithClock(now func() time.Time) *CategoryRegistry {
	r.now = now
	return r
}

func (r *CategoryRegistry) nextID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ms := r.now().UnixMilli()
	if ms <= r.lastID {
		ms = r.lastID + 1
	}
	r.lastID = ms
	return strconv.FormatInt(ms, 10)
}

// List loads the full category set in insertion order.
func (r *CategoryRegistry) List(ctx context.Context) ([]core.Category, error) {
	return loadList[core.Category](ctx, r.store, CategoryKey)
}

// Add appends a new category. Blank names and names equal (case-sensitive)
// to an existing category are rejected and nothing is persisted.
func (r *CategoryRegistry) Add(ctx context.Context, name string) (core.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.Category{}, core.ErrEmptyName
	}

	categories, err := r.List(ctx)
	if err != nil {
		return core.Category{}, fmt.Errorf("load categories: %w", err)
	}

	for _, c := range categories {
		if c.Name == name {
			return core.Category{}, core.ErrDuplicateName
		}
	}

	category := core.Category{ID: r.nextID(), Name: name}
	updated := append(categories, category)
	if err := saveList(ctx, r.store, CategoryKey, updated); err != nil {
		return core.Category{}, fmt.Errorf("save categories: %w", err)
	}

	slog.InfoContext(ctx, "Category added", "id", category.ID, "name", category.Name)
	return category, nil
}

// Remove deletes the category with the given ID. Idempotent; existing bills
// that snapshotted the name keep it.
func (r *CategoryRegistry) Remove(ctx context.Context, id string) error {
	categories, err := r.List(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	kept := categories[:0]
	for _, c := range categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(categories) {
		slog.DebugContext(ctx, "Category not found, nothing removed", "id", id)
		return nil
	}

	if err := saveList(ctx, r.store, CategoryKey, kept); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}

	slog.InfoContext(ctx, "Category removed", "id", id, "remaining", len(kept))
	return nil
}
