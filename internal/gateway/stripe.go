// Package gateway adapts the Stripe PaymentIntents API to port.PaymentGateway.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/port"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"golang.org/x/text/currency"
)

type intentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type stripeGateway struct {
	intents intentCreator
}

func NewStripe(secretKey string) (port.PaymentGateway, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("secretKey is empty")
	}

	sc := client.New(secretKey, nil)

	return &stripeGateway{intents: sc.PaymentIntents}, nil
}

func (g *stripeGateway) CreateIntent(ctx context.Context, amountMinor int64, unit currency.Unit) (domain.PaymentIntent, error) {
	if amountMinor < 0 {
		return domain.PaymentIntent{}, fmt.Errorf("%w: amount is negative", domain.ErrInvalidRequest)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(strings.ToLower(unit.String())),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := g.intents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return domain.PaymentIntent{}, fmt.Errorf("%w: stripe %s[%s]: %s",
				domain.ErrPaymentGateway, stripeErr.Type, stripeErr.Code, stripeErr.Msg)
		}
		return domain.PaymentIntent{}, fmt.Errorf("%w: intents.New: %w", domain.ErrPaymentGateway, err)
	}

	return domain.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}
