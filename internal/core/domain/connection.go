package domain

import (
	"strings"
	"time"
)

// ConnectionStatus is the lifecycle state of a connection request.
// Declined requests are deleted rather than moved to ConnectionRejected.
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionRejected ConnectionStatus = "rejected"
)

// Connection is a directed request between two users.
type Connection struct {
	ID          string           `json:"id"`
	RequesterID string           `json:"requesterId"`
	ReceiverID  string           `json:"receiverId"`
	Status      ConnectionStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Involves reports whether userID is either party of the connection.
func (c *Connection) Involves(userID string) bool {
	return c.RequesterID == userID || c.ReceiverID == userID
}

// PairKey returns an order-independent key for two user ids. It backs the
// unique indexes enforcing one connection and one conversation per pair.
func PairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + ":" + b
}
