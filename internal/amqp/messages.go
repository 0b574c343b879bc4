package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// ChangeKind names the mutation a ChangeMessage announces
type ChangeKind string

const (
	TransactionCreated ChangeKind = "transaction.created"
	TransactionUpdated ChangeKind = "transaction.updated"
	TransactionDeleted ChangeKind = "transaction.deleted"
	BudgetsSaved       ChangeKind = "budgets.saved"
)

func (k ChangeKind) valid() bool {
	switch k {
	case TransactionCreated, TransactionUpdated, TransactionDeleted, BudgetsSaved:
		return true
	}
	return false
}

// ChangeMessage announces that the saved collections changed.
// It carries references only; listeners reload the store to see the data.
// ID is a transaction id, or a "YYYY-MM" period for BudgetsSaved.
type ChangeMessage struct {
	Kind      ChangeKind `json:"kind"`
	ID        string     `json:"id"`
	Revision  uint64     `json:"revision"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewChangeMessage creates a change message stamped with the current time
func NewChangeMessage(kind ChangeKind, id string, revision uint64) *ChangeMessage {
	return &ChangeMessage{
		Kind:      kind,
		ID:        id,
		Revision:  revision,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON decodes a message and rejects unknown kinds
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if !msg.Kind.valid() {
		return nil, fmt.Errorf("unknown change kind %q", msg.Kind)
	}
	return &msg, nil
}
