package stripepay

import (
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/webhook"
)

// Config параметры подключения к Stripe
type Config struct {
	SecretKey        string
	WebhookSecret    string
	Currency         string
	WebhookTolerance time.Duration
}

// Client клиент платежного провайдера Stripe.
// Суммы передаются в минимальных единицах валюты (пенсы для GBP).
type Client struct {
	webhookSecret    string
	currency         string
	webhookTolerance time.Duration
	configured       bool
}

// PaymentIntent результат создания платежного намерения
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
}

func NewClient(cfg Config) *Client {
	secretKey := strings.TrimSpace(cfg.SecretKey)
	if secretKey != "" {
		// stripe-go использует глобальный API-ключ
		stripe.Key = secretKey
	}

	currency := strings.ToLower(strings.TrimSpace(cfg.Currency))
	if currency == "" {
		currency = string(stripe.CurrencyGBP)
	}

	tolerance := cfg.WebhookTolerance
	if tolerance <= 0 {
		tolerance = 300 * time.Second
	}

	return &Client{
		webhookSecret:    strings.TrimSpace(cfg.WebhookSecret),
		currency:         currency,
		webhookTolerance: tolerance,
		configured:       secretKey != "",
	}
}

// CreateIntent создает PaymentIntent на указанную сумму в минимальных
// единицах валюты. idempotencyKey защищает от повторного списания при ретраях.
func (c *Client) CreateIntent(amountMinorUnits int64, idempotencyKey string, metadata map[string]string) (*PaymentIntent, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(c.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	if idempotencyKey != "" {
		params.IdempotencyKey = stripe.String(idempotencyKey)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateIntent - amount %d %s: %v", ErrCreateIntent, amountMinorUnits, c.currency, err)
	}

	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
		Status:       string(intent.Status),
	}, nil
}

// GetIntent получает актуальное состояние PaymentIntent
func (c *Client) GetIntent(intentID string) (*PaymentIntent, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}

	intent, err := paymentintent.Get(intentID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: GetIntent - id %s: %v", ErrGetIntent, intentID, err)
	}

	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
		Status:       string(intent.Status),
	}, nil
}

// ConstructWebhookEvent проверяет подпись вебхука и разбирает событие.
// Проверка подписи заменяет авторизацию на этом эндпоинте.
func (c *Client) ConstructWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEventWithTolerance(payload, signatureHeader, c.webhookSecret, c.webhookTolerance)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return event, nil
}

// WebhookConfigured сообщает, задан ли секрет вебхука
func (c *Client) WebhookConfigured() bool {
	return c.webhookSecret != ""
}
