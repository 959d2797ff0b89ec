package booking

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"shutterhub/models"
)

// PaymentPort charges the requester for a booking and returns a payment
// reference on success. Charge must be idempotent per booking so that a
// retried confirmation never double-bills.
type PaymentPort interface {
	Charge(ctx context.Context, b *models.Booking) (paymentRef string, err error)
}

// StripePaymentPort charges through Stripe PaymentIntents. The account key
// is installed globally in main via stripe.Key.
type StripePaymentPort struct{}

func NewStripePaymentPort() *StripePaymentPort {
	return &StripePaymentPort{}
}

func (p *StripePaymentPort) Charge(ctx context.Context, b *models.Booking) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits(b.TotalPrice)),
		Currency: stripe.String(strings.ToLower(b.Currency)),
		Metadata: map[string]string{
			"booking_id":  b.ID,
			"resource_id": b.ResourceID,
		},
		Confirm: stripe.Bool(true),
	}
	params.Context = ctx
	// One intent per booking regardless of retries.
	params.SetIdempotencyKey("booking-charge-" + b.ID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent for booking %s: %w", b.ID, err)
	}
	return intent.ID, nil
}

// minorUnits converts a price to the currency's minor unit (kobo, cents).
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
