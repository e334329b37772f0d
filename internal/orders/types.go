package orders

import "time"

// Order statuses
const (
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
)

// Payment statuses
const (
	PaymentPaid    = "Paid"
	PaymentPending = "Pending"
)

// Product is a single line item on an order.
type Product struct {
	Name     string  `dynamodbav:"name" json:"name"`
	Quantity int     `dynamodbav:"quantity" json:"quantity"`
	Price    float64 `dynamodbav:"price" json:"price"`
	Color    string  `dynamodbav:"color,omitempty" json:"color,omitempty"`
}

// Order represents the item stored in the orders DynamoDB table. Orders are
// written once at checkout and never mutated afterwards.
type Order struct {
	OrderID       string    `dynamodbav:"order_id" json:"orderId"` // PK
	InvoiceNumber string    `dynamodbav:"invoice_number" json:"invoiceNumber"`
	UserEmail     string    `dynamodbav:"user_email" json:"userEmail"` // GSI key for account history
	CustomerName  string    `dynamodbav:"customer_name" json:"customerName"`
	Address       string    `dynamodbav:"address" json:"address"`
	Products      []Product `dynamodbav:"products" json:"products"`
	TotalAmount   float64   `dynamodbav:"total_amount" json:"totalAmount"`
	OrderStatus   string    `dynamodbav:"order_status" json:"orderStatus"`
	PaymentStatus string    `dynamodbav:"payment_status" json:"paymentStatus"`
	InvoiceURL    string    `dynamodbav:"invoice_url,omitempty" json:"invoiceUrl,omitempty"`
	CreatedAt     time.Time `dynamodbav:"created_at" json:"createdAt"`
}
