package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/optistyle/core-engine/internal/orders"
)

var adminTemplate = template.Must(template.New("admin").Parse(`
    <h2>New Order Received</h2>
    <p><strong>Invoice:</strong> {{.InvoiceNumber}}</p>
    <table border="1" cellpadding="6" cellspacing="0">
      <tr><th>Item</th><th>Qty</th><th>Price</th></tr>
      {{range .Products}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>INR {{printf "%.2f" .Price}}</td></tr>{{end}}
    </table>
    <h3>Total: INR {{printf "%.2f" .TotalAmount}}</h3>
    <p>Customer: {{.UserEmail}}</p>
`))

var customerTemplate = template.Must(template.New("customer").Parse(`
    <h2>Thank you for your order!</h2>
    <p>Your order <strong>{{.InvoiceNumber}}</strong> has been confirmed.</p>
    <p>Total Amount: <strong>INR {{printf "%.2f" .TotalAmount}}</strong></p>
    <p>Your invoice is attached as a PDF.</p>
    <p>&ndash; Team OptiStyle</p>
`))

func renderAdminBody(o orders.Order) (string, error) {
	var buf bytes.Buffer
	if err := adminTemplate.Execute(&buf, o); err != nil {
		return "", fmt.Errorf("render admin email body: %w", err)
	}
	return buf.String(), nil
}

func renderCustomerBody(o orders.Order) (string, error) {
	var buf bytes.Buffer
	if err := customerTemplate.Execute(&buf, o); err != nil {
		return "", fmt.Errorf("render customer email body: %w", err)
	}
	return buf.String(), nil
}
