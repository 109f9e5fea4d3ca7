package payments

import (
	"context"
	"fmt"
	"math"
	"os"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/price"
	"github.com/stripe/stripe-go/v76/product"
)

// CheckoutSession is what the storefront needs back from the provider:
// where to send the user and how to recognize the webhook later.
type CheckoutSession struct {
	SessionID string
	URL       string
}

// CheckoutProvider creates hosted checkout sessions.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, userEmail string, total float64, ref string) (*CheckoutSession, error)
}

// StripeProvider implements CheckoutProvider against the Stripe hosted
// checkout API: one product + one price per purchase, single line item.
type StripeProvider struct {
	appURL string
}

func NewStripeProvider() (*StripeProvider, error) {
	key := os.Getenv("STRIPE_SECRET_KEY")
	appURL := os.Getenv("APP_URL")
	if key == "" || appURL == "" {
		return nil, fmt.Errorf("stripe configuration missing")
	}
	stripe.Key = key
	return &StripeProvider{appURL: appURL}, nil
}

func (p *StripeProvider) CreateSession(ctx context.Context, userEmail string, total float64, ref string) (*CheckoutSession, error) {
	prod, err := product.New(&stripe.ProductParams{
		Name:        stripe.String("Book Purchase"),
		Description: stripe.String("Purchase of books for " + userEmail),
		Params: stripe.Params{
			Context:  ctx,
			Metadata: map[string]string{"userEmail": userEmail},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	pr, err := price.New(&stripe.PriceParams{
		UnitAmount: stripe.Int64(int64(math.Round(total * 100))),
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
		Product:    stripe.String(prod.ID),
		Params:     stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create price: %w", err)
	}

	sess, err := session.New(&stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(pr.ID), Quantity: stripe.Int64(1)},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.appURL),
		CancelURL:  stripe.String(p.appURL),
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"userEmail":      userEmail,
				"transactionRef": ref,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	if sess.URL == "" {
		return nil, fmt.Errorf("stripe returned empty checkout URL")
	}

	return &CheckoutSession{SessionID: sess.ID, URL: sess.URL}, nil
}
