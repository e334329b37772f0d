package notify

// Job is the payload sent from API -> SQS -> worker for one order's
// notification emails.
type Job struct {
	OrderID       string `json:"order_id"`
	InvoiceNumber string `json:"invoice_number"`
	CorrelationID string `json:"correlation_id,omitempty"`
}
