// Package payments holds the payment gateway client. The order flow only
// sees the Payer interface so tests can swap in a fake.
package payments

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fresnizky/pizza-delivery-api/config"
	"github.com/fresnizky/pizza-delivery-api/models"
)

// Payer charges a positive amount of whole currency units.
type Payer interface {
	Charge(ctx context.Context, amount int) error
}

// Stripe charges through the Stripe charges API.
type Stripe struct {
	secretKey string
	apiURL    string
	currency  string
	client    *http.Client
}

func NewStripe(cfg *config.Config) *Stripe {
	return &Stripe{
		secretKey: cfg.Stripe.SecretKey,
		apiURL:    cfg.Stripe.APIURL,
		currency:  cfg.Stripe.Currency,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Charge posts a charge for the given amount of whole units. Stripe expects
// minor units, so the amount is converted to cents. Each attempt carries a
// fresh idempotency key.
func (s *Stripe) Charge(ctx context.Context, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be a positive integer", models.ErrPaymentFailed)
	}

	form := url.Values{}
	form.Set("amount", strconv.Itoa(amount*100))
	form.Set("currency", s.currency)
	form.Set("source", "tok_mastercard")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+"/v1/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrPaymentFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to reach stripe: %v", models.ErrPaymentFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: stripe returned %d: %s", models.ErrPaymentFailed, resp.StatusCode, string(body))
	}
	return nil
}
