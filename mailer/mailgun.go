// Package mailer sends transactional email. The order flow only sees the
// Notifier interface so tests can swap in a fake.
package mailer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fresnizky/pizza-delivery-api/config"
	"github.com/fresnizky/pizza-delivery-api/models"
)

// Notifier delivers a message to a named recipient.
type Notifier interface {
	Send(ctx context.Context, name, email, subject, body string) error
}

// Mailgun sends through the Mailgun messages API.
type Mailgun struct {
	domain    string
	apiKey    string
	fromEmail string
	fromName  string
	apiURL    string
	client    *http.Client
}

func NewMailgun(cfg *config.Config) *Mailgun {
	return &Mailgun{
		domain:    cfg.Mailgun.Domain,
		apiKey:    cfg.Mailgun.APIKey,
		fromEmail: cfg.Mailgun.FromEmail,
		fromName:  cfg.Mailgun.FromName,
		apiURL:    cfg.Mailgun.APIURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *Mailgun) Send(ctx context.Context, name, email, subject, body string) error {
	if name == "" || email == "" || subject == "" || body == "" {
		return fmt.Errorf("%w: missing recipient or content", models.ErrEmailFailed)
	}

	form := url.Values{}
	form.Set("from", fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail))
	form.Set("to", fmt.Sprintf("%s <%s>", name, email))
	form.Set("subject", subject)
	form.Set("text", body)

	endpoint := fmt.Sprintf("%s/v3/%s/messages", m.apiURL, m.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrEmailFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to reach mailgun: %v", models.ErrEmailFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: mailgun returned %d: %s", models.ErrEmailFailed, resp.StatusCode, string(respBody))
	}
	return nil
}
