// Package services orchestrates ledger mutations with the optional change
// event feed. Persistence always happens first; a failed publish is logged
// and never fails the user's request.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"zhangben/internal/amqp"
	"zhangben/internal/core"
	"zhangben/internal/ledger"
)

// LedgerService wraps the bill store and category registry and publishes a
// ledger event after every successful mutation.
type LedgerService struct {
	bills      *ledger.BillStore
	categories *ledger.CategoryRegistry
	amqpClient *amqp.Client
	cleanup    func() error
}

func NewLedgerService(bills *ledger.BillStore, categories *ledger.CategoryRegistry, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		bills:      bills,
		categories: categories,
		amqpClient: amqpClient,
	}
}

// WithCleanup registers a function run on Close, typically the backing
// store's Close.
func (s *LedgerService) WithCleanup(fn func() error) *LedgerService {
	s.cleanup = fn
	return s
}

func (s *LedgerService) ListBills(ctx context.Context) ([]core.Bill, error) {
	return s.bills.List(ctx)
}

// AddBill validates and persists a new bill, then publishes a change event.
func (s *LedgerService) AddBill(ctx context.Context, in core.BillInput) (core.Bill, error) {
	bill, err := s.bills.Add(ctx, in)
	if err != nil {
		return core.Bill{}, err
	}

	s.publishEvent(ctx, amqp.OpBillAdded, bill.ID)
	return bill, nil
}

func (s *LedgerService) DeleteBill(ctx context.Context, id string) error {
	if err := s.bills.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove bill: %w", err)
	}

	s.publishEvent(ctx, amqp.OpBillRemoved, id)
	return nil
}

// ClearBills erases the whole bill collection. The confirmation gate lives
// at the presentation boundary; by the time this runs the user has confirmed.
func (s *LedgerService) ClearBills(ctx context.Context) error {
	if err := s.bills.Clear(ctx); err != nil {
		return fmt.Errorf("clear bills: %w", err)
	}

	s.publishEvent(ctx, amqp.OpBillsCleared, "")
	return nil
}

func (s *LedgerService) ListCategories(ctx context.Context) ([]core.Category, error) {
	return s.categories.List(ctx)
}

func (s *LedgerService) AddCategory(ctx context.Context, name string) (core.Category, error) {
	category, err := s.categories.Add(ctx, name)
	if err != nil {
		return core.Category{}, err
	}

	s.publishEvent(ctx, amqp.OpCategoryAdded, category.ID)
	return category, nil
}

func (s *LedgerService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove category: %w", err)
	}

	s.publishEvent(ctx, amqp.OpCategoryRemoved, id)
	return nil
}

func (s *LedgerService) publishEvent(ctx context.Context, op, id string) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishLedgerEvent(ctx, op, id); err != nil {
		// The mutation already persisted; the mirror catches up on its
		// periodic reconcile.
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"op", op, "id", id, "error", err)
	}
}

// Close releases the AMQP connection and runs the registered cleanup.
func (s *LedgerService) Close() error {
	var errs []error

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if s.cleanup != nil {
		if err := s.cleanup(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
