package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// PaymentIntent is the slice of the provider's intent object the booking flow
// needs: the id to key the unpaid row and the client secret the frontend's
// payment element consumes.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentProvider is the external payment collaborator. Card processing and
// settlement live entirely on the provider's side; the booking core only asks
// for an intent and, later, whether it succeeded.
type PaymentProvider interface {
	// CreateOrReuseIntent returns an intent for the given amount. When
	// existingID is non-empty the provider updates that intent in place so
	// repeated checkout attempts against the same draft never pile up
	// duplicate intents.
	CreateOrReuseIntent(amount float64, currency string, existingID string, metadata map[string]string) (PaymentIntent, error)

	// CheckSucceeded reports whether the intent's payment has succeeded.
	CheckSucceeded(intentID string) (bool, error)
}

// StripeProvider implements PaymentProvider on Stripe payment intents.
type StripeProvider struct{}

func NewStripeProvider() (*StripeProvider, error) {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		return nil, errors.New("STRIPE_SECRET_KEY environment variable is not set")
	}
	stripe.Key = key
	return &StripeProvider{}, nil
}

// zeroDecimalCurrencies are the currencies Stripe charges in whole units
// rather than hundredths.
var zeroDecimalCurrencies = map[string]struct{}{
	"bif": {}, "clp": {}, "djf": {}, "gnf": {}, "jpy": {}, "kmf": {},
	"krw": {}, "mga": {}, "pyg": {}, "rwf": {}, "ugx": {}, "vnd": {},
	"vuv": {}, "xaf": {}, "xof": {}, "xpf": {},
}

// minorUnits converts a decimal amount to the currency's minor unit, which is
// what Stripe expects (cents for USD, whole yen for JPY).
func minorUnits(amount float64, currency string) int64 {
	if _, ok := zeroDecimalCurrencies[strings.ToLower(currency)]; ok {
		return int64(math.Round(amount))
	}
	return int64(math.Round(amount * 100))
}

func (p *StripeProvider) CreateOrReuseIntent(amount float64, currency string, existingID string, metadata map[string]string) (PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits(amount, currency)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	if existingID != "" {
		pi, err := paymentintent.Update(existingID, params)
		if err == nil {
			return PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
		}
		// A stale or already-consumed intent id falls through to a fresh
		// intent instead of failing the whole checkout.
		log.Printf("⚠️  Stripe intent %s not reusable, creating a new one: %v", existingID, err)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return PaymentIntent{}, fmt.Errorf("stripe create intent: %w", err)
	}
	return PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (p *StripeProvider) CheckSucceeded(intentID string) (bool, error) {
	pi, err := paymentintent.Get(intentID, nil)
	if err != nil {
		return false, fmt.Errorf("stripe get intent: %w", err)
	}
	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}
