package amqp

import (
	"encoding/json"
	"time"
)

// Ledger event operations.
const (
	OpBillAdded       = "bill_added"
	OpBillRemoved     = "bill_removed"
	OpBillsCleared    = "bills_cleared"
	OpCategoryAdded   = "category_added"
	OpCategoryRemoved = "category_removed"
)

// LedgerEventMessage is a lightweight notification that the persisted ledger
// changed. It carries only the operation and the affected record ID; the
// consumer re-reads the full state from the store.
type LedgerEventMessage struct {
	Op        string    `json:"op"`
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEventMessage creates a new event message for an operation.
func NewLedgerEventMessage(op, id string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Op:        op,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
