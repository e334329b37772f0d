package validation

import (
	"testing"
)

func TestCreateOrderRequest_Valid(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		UserEmail:    "asha@example.com",
		CustomerName: "Asha Rao",
		Address:      "12 MG Road, Pune",
		Products: []OrderProduct{
			{Name: "Aviator", Quantity: 1, Price: 5000, Color: "Gold"},
			{Name: "Round", Quantity: 2, Price: 2000},
		},
		TotalAmount: 9000, // 1*5000 + 2*2000
	}

	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestCreateOrderRequest_TotalMismatch(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		UserEmail:    "asha@example.com",
		CustomerName: "Asha Rao",
		Address:      "12 MG Road, Pune",
		Products: []OrderProduct{
			{Name: "Aviator", Quantity: 1, Price: 5000},
		},
		TotalAmount: 4999, // mismatch
	}

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for total mismatch, got nil")
	}
}

func TestCreateOrderRequest_MissingFields(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		// UserEmail missing
		Products:    []OrderProduct{},
		TotalAmount: 0,
	}

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation errors for missing required fields, got nil")
	}
}

func TestCreateOrderRequest_BadEmail(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		UserEmail:    "not-an-email",
		CustomerName: "Asha Rao",
		Address:      "12 MG Road, Pune",
		Products: []OrderProduct{
			{Name: "Aviator", Quantity: 1, Price: 5000},
		},
		TotalAmount: 5000,
	}

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for bad email, got nil")
	}
}

func TestCreateOrderRequest_ZeroQuantity(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		UserEmail:    "asha@example.com",
		CustomerName: "Asha Rao",
		Address:      "12 MG Road, Pune",
		Products: []OrderProduct{
			{Name: "Aviator", Quantity: 0, Price: 5000},
		},
		TotalAmount: 5000,
	}

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for zero quantity, got nil")
	}
}
