package mailer

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optistyle/core-engine/internal/orders"
)

type mockSES struct {
	sent    []*sesv2.SendEmailInput
	sendErr error
}

func (m *mockSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	m.sent = append(m.sent, params)
	return &sesv2.SendEmailOutput{}, nil
}

func testOrder() orders.Order {
	return orders.Order{
		OrderID:       "order-42",
		InvoiceNumber: "OPTI-INV-2026-0042",
		UserEmail:     "asha@example.com",
		CustomerName:  "Asha Rao",
		Products: []orders.Product{
			{Name: "Aviator", Quantity: 1, Price: 5000},
		},
		TotalAmount: 5000,
	}
}

func TestSendCustomerNotice_BuildsMultipartMessage(t *testing.T) {
	mock := &mockSES{}
	m := New(mock, "noreply@optistyle.in", "admin@optistyle.in")

	pdf := []byte("%PDF-1.4 fake invoice body")
	err := m.SendCustomerNotice(context.Background(), testOrder(), pdf)
	require.NoError(t, err)
	require.Len(t, mock.sent, 1)

	raw := string(mock.sent[0].Content.Raw.Data)
	assert.Contains(t, raw, "To: asha@example.com")
	assert.Contains(t, raw, "From: OptiStyle <noreply@optistyle.in>")
	assert.Contains(t, raw, "Subject: Your Order OPTI-INV-2026-0042 - OptiStyle")
	assert.Contains(t, raw, `Content-Type: multipart/mixed; boundary="`+mimeBoundary+`"`)
	assert.Contains(t, raw, "OPTI-INV-2026-0042")
	assert.Contains(t, raw, `filename="Invoice_OPTI-INV-2026-0042.pdf"`)

	// The attachment must round-trip through base64.
	parts := strings.Split(raw, "--"+mimeBoundary)
	require.GreaterOrEqual(t, len(parts), 3)
	attachmentPart := parts[2]
	idx := strings.Index(attachmentPart, "\r\n\r\n")
	require.Greater(t, idx, 0)
	encoded := strings.ReplaceAll(strings.TrimSpace(attachmentPart[idx+4:]), "\r\n", "")
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, pdf, decoded)
}

func TestSendAdminNotice_TargetsAdminAddress(t *testing.T) {
	mock := &mockSES{}
	m := New(mock, "noreply@optistyle.in", "admin@optistyle.in")

	err := m.SendAdminNotice(context.Background(), testOrder(), []byte("%PDF"))
	require.NoError(t, err)
	require.Len(t, mock.sent, 1)

	raw := string(mock.sent[0].Content.Raw.Data)
	assert.Contains(t, raw, "To: admin@optistyle.in")
	assert.Contains(t, raw, "Subject: New Order OPTI-INV-2026-0042")
	assert.Contains(t, raw, "Customer: asha@example.com")
	assert.Contains(t, raw, "Aviator")
}

func TestSend_NoAttachmentWhenPDFMissing(t *testing.T) {
	mock := &mockSES{}
	m := New(mock, "noreply@optistyle.in", "admin@optistyle.in")

	err := m.SendCustomerNotice(context.Background(), testOrder(), nil)
	require.NoError(t, err)
	require.Len(t, mock.sent, 1)

	raw := string(mock.sent[0].Content.Raw.Data)
	assert.NotContains(t, raw, "Content-Disposition: attachment")
}

func TestSend_PropagatesSESError(t *testing.T) {
	mock := &mockSES{sendErr: errors.New("ses unavailable")}
	m := New(mock, "noreply@optistyle.in", "admin@optistyle.in")

	err := m.SendCustomerNotice(context.Background(), testOrder(), []byte("%PDF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asha@example.com")
}
