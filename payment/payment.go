// Package payment isolates the payment step behind a provider interface so a
// real gateway can be substituted without touching booking logic.
package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

// Request describes a single charge for an appointment.
type Request struct {
	AppointmentID uint
	Method        string
	// Amount in the smallest currency unit.
	Amount int64
}

// Result is the provider's outcome. A declined charge is a non-error result
// with Succeeded=false; errors are reserved for gateway failures.
type Result struct {
	Succeeded bool   `json:"succeeded"`
	ReceiptID string `json:"receiptId"`
	Reference string `json:"reference"`
}

type Provider interface {
	Charge(ctx context.Context, req Request) (Result, error)
}

// Mock always succeeds. It stands in for the gateway in every environment
// without Razorpay credentials.
type Mock struct{}

func (Mock) Charge(ctx context.Context, req Request) (Result, error) {
	receipt := uuid.NewString()
	return Result{
		Succeeded: true,
		ReceiptID: receipt,
		Reference: fmt.Sprintf("mock-%s", receipt),
	}, nil
}

// Razorpay creates a payment order through the Razorpay API.
type Razorpay struct {
	client *razorpay.Client
}

func NewRazorpay(keyID, secret string) *Razorpay {
	return &Razorpay{client: razorpay.NewClient(keyID, secret)}
}

func (r *Razorpay) Charge(ctx context.Context, req Request) (Result, error) {
	receipt := uuid.NewString()
	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": "INR",
		"receipt":  receipt,
		"notes": map[string]interface{}{
			"appointment_id": fmt.Sprintf("%d", req.AppointmentID),
			"method":         req.Method,
		},
	}

	order, err := r.client.Order.Create(data, nil)
	if err != nil {
		return Result{}, fmt.Errorf("razorpay order creation failed: %w", err)
	}

	orderID, _ := order["id"].(string)
	return Result{
		Succeeded: true,
		ReceiptID: receipt,
		Reference: orderID,
	}, nil
}
