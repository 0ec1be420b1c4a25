// Package customer defines customer identity records.
//
// Customers are immutable after creation except for their contact channels,
// which support the update path the commerce surface exposes.
package customer

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/homestream/internal/platform/errors"
)

// ErrInvalidEmail indicates a contact email that fails basic validation.
var ErrInvalidEmail = apperrors.New(apperrors.CodeInvalidArgument, "email address is invalid")

// Address is a postal address attached to a customer.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Customer represents a known shopper.
type Customer struct {
	ID      string  `json:"customer_id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
	// CreatedAt is the timestamp when the customer record was created.
	CreatedAt time.Time `json:"created_at"`
}

// UpdateContact replaces the mutable contact channels. Identity fields are
// left untouched.
func (c Customer) UpdateContact(email, phone string) (Customer, error) {
	email = strings.TrimSpace(email)
	if email != "" {
		if !strings.Contains(email, "@") {
			return Customer{}, ErrInvalidEmail
		}
		c.Email = email
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		c.Phone = phone
	}
	return c, nil
}
