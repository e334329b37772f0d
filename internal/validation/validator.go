package validation

import (
	"fmt"
	"math"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// register struct-level validation for CreateOrderRequest to ensure
	// the provided TotalAmount matches the sum of (price * quantity) of products.
	v.RegisterStructValidation(createOrderStructValidation, CreateOrderRequest{})

	return v
}

// createOrderStructValidation verifies the aggregated total of products equals TotalAmount (within cents)
func createOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateOrderRequest)

	var sum float64
	for _, p := range req.Products {
		sum += float64(p.Quantity) * p.Price
	}

	sumCents := int(math.Round(sum * 100))
	totalCents := int(math.Round(req.TotalAmount * 100))
	if sumCents != totalCents {
		sl.ReportError(req.TotalAmount, "totalAmount", "TotalAmount", "total_match_products", fmt.Sprintf("products sum %.2f != totalAmount %.2f", sum, req.TotalAmount))
	}
}
