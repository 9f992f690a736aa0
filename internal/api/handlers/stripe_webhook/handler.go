package stripe_webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v79"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
)

// Тело вебхука ограничено, чтобы не читать произвольно большие запросы
const maxBodyBytes = 1 << 20

type WebhookVerifier interface {
	ConstructWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error)
	WebhookConfigured() bool
}

type OrdersService interface {
	ApplyPaymentSucceeded(ctx context.Context, intentID string) error
	ApplyPaymentFailed(ctx context.Context, intentID string, reason string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	verifier WebhookVerifier
	orders   OrdersService
	logger   Logger
}

func NewHandler(verifier WebhookVerifier, orders OrdersService, logger Logger) *Handler {
	return &Handler{
		verifier: verifier,
		orders:   orders,
		logger:   logger,
	}
}

// Handle POST /api/v1/webhooks/stripe
// Авторизация запроса - проверка подписи Stripe, не JWT.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.verifier.WebhookConfigured() {
		h.logger.Error("POST /webhooks/stripe - Webhook secret is not configured")
		handlers.RespondError(w, http.StatusServiceUnavailable, "webhook is not configured")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("POST /webhooks/stripe - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, "failed to read request body")
		return
	}

	event, err := h.verifier.ConstructWebhookEvent(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("POST /webhooks/stripe - Invalid signature: %v", err)
		handlers.RespondBadRequest(w, "invalid signature")
		return
	}

	h.logger.Info("POST /webhooks/stripe - Event received: id=%s, type=%s", event.ID, event.Type)

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			h.logger.Error("POST /webhooks/stripe - Invalid payment intent payload: %v", err)
			break
		}
		if err := h.orders.ApplyPaymentSucceeded(r.Context(), intent.ID); err != nil {
			h.logger.Error("POST /webhooks/stripe - Failed to apply success: intent=%s, error=%v", intent.ID, err)
			handlers.RespondInternalError(w)
			return
		}

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			h.logger.Error("POST /webhooks/stripe - Invalid payment intent payload: %v", err)
			break
		}
		reason := ""
		if intent.LastPaymentError != nil {
			reason = intent.LastPaymentError.Msg
		}
		if err := h.orders.ApplyPaymentFailed(r.Context(), intent.ID, reason); err != nil {
			h.logger.Error("POST /webhooks/stripe - Failed to apply failure: intent=%s, error=%v", intent.ID, err)
			handlers.RespondInternalError(w)
			return
		}

	default:
		// Остальные события подтверждаем без обработки
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
