package amqp

import (
	"encoding/json"
	"time"
)

// Actions a ledger change message can carry. Reset has no transaction
// id; every other action names the record it touched.
const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
	ActionRemoved = "removed"
	ActionReset   = "reset"
)

// LedgerChangeMessage tells consumers the ledger changed. It carries
// only the id and action; the worker re-reads the full document from
// the store, so stale or reordered deliveries are harmless.
type LedgerChangeMessage struct {
	ID        string    `json:"id,omitempty"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerChangeMessage(id, action string) *LedgerChangeMessage {
	return &LedgerChangeMessage{
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *LedgerChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangeMessageFromJSON(data []byte) (*LedgerChangeMessage, error) {
	var msg LedgerChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
