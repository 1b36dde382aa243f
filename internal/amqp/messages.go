package amqp

import (
	"encoding/json"
	"time"
)

// Export message actions.
const (
	ActionSync   = "sync"
	ActionDelete = "delete"
)

// ExportMessage notifies the worker that a transaction changed. It carries
// only the ID and action; the worker fetches current data from the database,
// so a stale or duplicated delivery is harmless.
type ExportMessage struct {
	TransactionID string    `json:"transaction_id"`
	Action        string    `json:"action"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewExportMessage creates a message for the given transaction and action
func NewExportMessage(transactionID, action string) *ExportMessage {
	return &ExportMessage{
		TransactionID: transactionID,
		Action:        action,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExportMessageFromJSON creates a message from JSON bytes
func ExportMessageFromJSON(data []byte) (*ExportMessage, error) {
	var msg ExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
