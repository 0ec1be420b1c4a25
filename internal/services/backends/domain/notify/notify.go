// Package notify models outbound customer notifications.
//
// Notifications are recorded, never actually sent; the record is the
// simulation.
package notify

import "time"

// EmailNotification is a recorded outbound email.
type EmailNotification struct {
	ID         string    `json:"email_id"`
	CustomerID string    `json:"customer_id"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Template   string    `json:"template"`
	SentAt     time.Time `json:"sent_at"`
}
