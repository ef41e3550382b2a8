package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Config holds payment provider settings, loaded from the environment.
type Config struct {
	APIURL      string
	SecretKey   string
	CallbackURL string
}

// Client talks to a Stripe-style payments API: basic auth with the secret
// key, a fresh idempotency key per request, redirect confirmation.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a payment client with a bounded request timeout.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Details describes the payment to create for an order.
type Details struct {
	OrderID     int
	Amount      float64
	Description string
}

type amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type confirmation struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

type createRequest struct {
	Amount       amount            `json:"amount"`
	Capture      bool              `json:"capture"`
	Description  string            `json:"description"`
	Metadata     map[string]string `json:"metadata"`
	Confirmation confirmation      `json:"confirmation"`
}

// Payment is the provider's representation of a created payment.
type Payment struct {
	ID           string       `json:"id"`
	Status       string       `json:"status"`
	Confirmation confirmation `json:"confirmation"`
}

// URL returns the redirect address the customer completes the payment at.
func (p *Payment) URL() string {
	return p.Confirmation.ConfirmationURL
}

// CreatePayment registers a payment for an order and returns the provider's
// payment record, including the confirmation redirect URL.
func (c *Client) CreatePayment(ctx context.Context, details Details) (*Payment, error) {
	payload := createRequest{
		Amount: amount{
			Value:    strconv.FormatFloat(details.Amount, 'f', 2, 64),
			Currency: "usd",
		},
		Capture:     true,
		Description: details.Description,
		Metadata: map[string]string{
			"order_id": strconv.Itoa(details.OrderID),
		},
		Confirmation: confirmation{
			Type:      "redirect",
			ReturnURL: c.cfg.CallbackURL,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", uuid.NewString())
	req.SetBasicAuth(c.cfg.SecretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithFields(log.Fields{
			"order_id": details.OrderID,
			"status":   resp.StatusCode,
		}).Error("Payment provider rejected payment creation")
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// CallbackData is the provider's webhook body posted to the checkout callback.
type CallbackData struct {
	Object struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Metadata struct {
			OrderID json.Number `json:"order_id"`
		} `json:"metadata"`
	} `json:"object"`
}

// StatusSucceeded is the provider's terminal success status.
const StatusSucceeded = "succeeded"
