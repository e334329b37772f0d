package validation

// OrderProduct represents a single checkout line item.
type OrderProduct struct {
	Name     string  `json:"name" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,min=1"` // must be >= 1
	Price    float64 `json:"price" validate:"required,gt=0"`     // price per unit, tax inclusive
	Color    string  `json:"color,omitempty"`
}

// CreateOrderRequest is the payload for POST /api/orders
type CreateOrderRequest struct {
	UserEmail    string         `json:"userEmail" validate:"required,email"`
	CustomerName string         `json:"customerName" validate:"required"`
	Address      string         `json:"address" validate:"required"`
	Products     []OrderProduct `json:"products" validate:"required,min=1,dive"` // at least one item
	TotalAmount  float64        `json:"totalAmount" validate:"required,gt=0"`    // total the client computed
}
