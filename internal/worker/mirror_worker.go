// Package worker maintains an off-to-the-side snapshot of the ledger. The
// mirror is a second kv store that receives a verbatim copy of the persisted
// collections whenever a change event arrives, plus a periodic reconcile for
// events that were lost or never published.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"zhangben/internal/amqp"
	"zhangben/internal/kv"
	"zhangben/internal/ledger"
)

// mirroredKeys are the collections copied on every snapshot.
var mirroredKeys = []string{ledger.BillKey, ledger.CategoryKey}

// MirrorWorker copies ledger state from the primary store into the mirror.
type MirrorWorker struct {
	primary kv.Store
	mirror  kv.Store
}

func NewMirrorWorker(primary, mirror kv.Store) *MirrorWorker {
	return &MirrorWorker{
		primary: primary,
		mirror:  mirror,
	}
}

// HandleLedgerEvent processes a single ledger event from AMQP. Events carry
// no payload, so every event triggers a fresh snapshot of the changed world.
func (w *MirrorWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event", "op", msg.Op, "id", msg.ID)

	if err := w.Snapshot(ctx); err != nil {
		return fmt.Errorf("snapshot after %s: %w", msg.Op, err)
	}
	return nil
}

// Snapshot copies every mirrored key from the primary store to the mirror.
// A key absent from the primary is removed from the mirror so a cleared
// collection does not linger there.
func (w *MirrorWorker) Snapshot(ctx context.Context) error {
	for _, key := range mirroredKeys {
		value, ok, err := w.primary.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("read %s from primary: %w", key, err)
		}

		if !ok {
			if err := w.mirror.Delete(ctx, key); err != nil {
				return fmt.Errorf("remove %s from mirror: %w", key, err)
			}
			continue
		}

		if err := w.mirror.Set(ctx, key, value); err != nil {
			return fmt.Errorf("write %s to mirror: %w", key, err)
		}
	}

	slog.DebugContext(ctx, "Ledger snapshot mirrored", "keys", len(mirroredKeys))
	return nil
}

// Reconcile is the periodic safety net behind the event feed: it re-runs a
// full snapshot regardless of whether any event arrived.
func (w *MirrorWorker) Reconcile(ctx context.Context) error {
	if err := w.Snapshot(ctx); err != nil {
		return fmt.Errorf("periodic reconcile: %w", err)
	}
	slog.InfoContext(ctx, "Periodic mirror reconcile completed")
	return nil
}
