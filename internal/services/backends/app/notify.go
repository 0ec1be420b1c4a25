package app

import (
	"context"
	"strings"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
	"github.com/louisbranch/homestream/internal/services/backends/domain/notify"
	"github.com/louisbranch/homestream/internal/services/backends/storage"
)

// SendEmail records an outbound notification. Nothing is delivered; the
// record is what the demo inspects.
func (a *App) SendEmail(ctx context.Context, customerID, to, subject, body, template string) (notify.EmailNotification, error) {
	if !strings.Contains(to, "@") {
		return notify.EmailNotification{}, platformerrors.New(platformerrors.CodeInvalidArgument,
			"invalid email address")
	}
	emailID, err := a.newID("EML")
	if err != nil {
		return notify.EmailNotification{}, err
	}
	now := a.now()

	email := notify.EmailNotification{
		ID:         emailID,
		CustomerID: customerID,
		To:         to,
		Subject:    subject,
		Body:       body,
		Template:   template,
		SentAt:     now,
	}
	err = a.store.Update(ctx, func(tx storage.Tx) error {
		tx.PutEmail(email)
		return nil
	})
	if err != nil {
		return notify.EmailNotification{}, err
	}
	a.record(ctx, "notify", "send_email",
		map[string]string{"to": to, "subject": subject, "template": template}, email)
	return email, nil
}

// ListEmails returns recorded notifications, optionally for one customer.
func (a *App) ListEmails(ctx context.Context, customerID string) ([]notify.EmailNotification, error) {
	var out []notify.EmailNotification
	err := a.store.View(ctx, func(tx storage.ReadTx) error {
		if customerID == "" {
			out = tx.Emails()
			return nil
		}
		out = tx.EmailsByCustomer(customerID)
		return nil
	})
	return out, err
}
