// Package mailer sends the two transactional order emails (admin notice and
// customer confirmation) with the invoice PDF attached. Both sends are
// best-effort from the order pipeline's perspective.
package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/optistyle/core-engine/internal/awsx"
	"github.com/optistyle/core-engine/internal/invoice"
	"github.com/optistyle/core-engine/internal/orders"
)

// Mailer sends raw MIME email through SES.
type Mailer struct {
	client     awsx.SESAPI
	sender     string
	adminEmail string
}

// New returns a Mailer bound to a verified sender identity.
func New(client awsx.SESAPI, sender, adminEmail string) *Mailer {
	return &Mailer{
		client:     client,
		sender:     sender,
		adminEmail: adminEmail,
	}
}

// SendAdminNotice emails the shop admin about a new order.
func (m *Mailer) SendAdminNotice(ctx context.Context, o orders.Order, pdf []byte) error {
	body, err := renderAdminBody(o)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("New Order %s", o.InvoiceNumber)
	return m.send(ctx, m.adminEmail, subject, body, o.InvoiceNumber, pdf)
}

// SendCustomerNotice emails the customer their order confirmation.
func (m *Mailer) SendCustomerNotice(ctx context.Context, o orders.Order, pdf []byte) error {
	body, err := renderCustomerBody(o)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Your Order %s - OptiStyle", o.InvoiceNumber)
	return m.send(ctx, o.UserEmail, subject, body, o.InvoiceNumber, pdf)
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody, invoiceNumber string, pdf []byte) error {
	var attachments []attachment
	if len(pdf) > 0 {
		attachments = append(attachments, attachment{
			Filename:    invoice.Filename(invoiceNumber),
			ContentType: "application/pdf",
			Content:     pdf,
		})
	}

	raw := buildMIME(m.sender, to, subject, htmlBody, attachments)

	_, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		Content: &sestypes.EmailContent{
			Raw: &sestypes.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
