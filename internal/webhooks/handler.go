// Package webhooks turns signed payment-provider notifications into paid ads.
package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/edaterlove/adboard/internal/models"
	"github.com/edaterlove/adboard/pkg/utils"
)

// EventOrderCreated is the only event that creates an ad.
const EventOrderCreated = "order_created"

// maxBodyBytes caps the signed body; larger deliveries get 413 instead of a truncated read.
const maxBodyBytes = 1 << 20

// Webhook outcomes reported to the observer.
const (
	OutcomeUnauthorized = "unauthorized"
	OutcomeBadRequest   = "bad_request"
	OutcomeTooLarge     = "too_large"
	OutcomeIgnored      = "ignored"
	OutcomeDuplicate    = "duplicate"
	OutcomeCreated      = "created"
	OutcomeFailed       = "failed"
)

// AdCreator persists an ad.
type AdCreator interface {
	CreateAd(ctx context.Context, in models.NewAd) (models.Ad, error)
}

// Invalidator drops cached ad listings.
type Invalidator interface {
	Invalidate()
}

// Archiver stores a verified raw body for audit and returns where it went.
type Archiver interface {
	Archive(ctx context.Context, event string, raw []byte) (string, error)
}

// Observer receives one outcome per delivery.
type Observer interface {
	ObserveWebhook(outcome string)
}

// Event is the part of an order notification the handler reads.
type Event struct {
	Meta struct {
		EventName  string          `json:"event_name"`
		CustomData json.RawMessage `json:"custom_data"`
	} `json:"meta"`
	Data struct {
		ID         json.RawMessage `json:"id"`
		Attributes struct {
			UserEmail string `json:"user_email"`
		} `json:"attributes"`
	} `json:"data"`
}

// OrderID returns data.id as a string whether it was sent as a string or a number.
func (e Event) OrderID() string {
	raw := bytes.TrimSpace(e.Data.ID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// Option configures a Handler.
type Option func(*Handler)

// WithLedger de-duplicates redelivered orders.
func WithLedger(l Ledger) Option { return func(h *Handler) { h.ledger = l } }

// WithArchive stores every verified body.
func WithArchive(a Archiver) Option { return func(h *Handler) { h.archive = a } }

// WithObserver reports outcomes, for metrics.
func WithObserver(o Observer) Option { return func(h *Handler) { h.observer = o } }

// Handler handles POST /webhook.
type Handler struct {
	secret   []byte
	store    AdCreator
	cache    Invalidator
	ledger   Ledger
	archive  Archiver
	observer Observer
	logger   *zap.Logger
}

// NewHandler creates a webhook handler verifying deliveries with secret.
func NewHandler(secret []byte, store AdCreator, cache Invalidator, logger *zap.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{secret: secret, store: store, cache: cache, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle verifies the signature over the raw body before anything else, then creates a paid ad
// for an order_created event. Responses are plain text.
func (h *Handler) Handle(c *gin.Context) {
	signature := c.GetHeader(SignatureHeader)
	if signature == "" {
		h.reject(c, http.StatusUnauthorized, OutcomeUnauthorized)
		return
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes+1))
	if err != nil {
		h.reject(c, http.StatusBadRequest, OutcomeBadRequest)
		return
	}
	if len(raw) > maxBodyBytes {
		h.logger.Warn("webhook body too large", zap.String("client_ip", c.ClientIP()))
		h.reject(c, http.StatusRequestEntityTooLarge, OutcomeTooLarge)
		return
	}
	if !Verify(raw, signature, h.secret) {
		h.logger.Warn("webhook signature rejected", zap.String("client_ip", c.ClientIP()))
		h.reject(c, http.StatusUnauthorized, OutcomeUnauthorized)
		return
	}

	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		h.reject(c, http.StatusBadRequest, OutcomeBadRequest)
		return
	}
	ctx := c.Request.Context()
	h.archiveBody(ctx, ev.Meta.EventName, raw)

	if ev.Meta.EventName != EventOrderCreated {
		h.logger.Debug("webhook event ignored", zap.String("event", ev.Meta.EventName))
		h.done(c, http.StatusOK, OutcomeIgnored)
		return
	}

	meta := decodeCustomData(ev.Meta.CustomData)
	message := strings.TrimSpace(meta["message"])
	email := strings.TrimSpace(ev.Data.Attributes.UserEmail)
	if message == "" || email == "" {
		h.logger.Warn("order without message or email", zap.String("order_id", ev.OrderID()))
		h.reject(c, http.StatusBadRequest, OutcomeBadRequest)
		return
	}
	var link *string
	if l := strings.TrimSpace(meta["link"]); l != "" {
		link = &l
	}

	orderID := ev.OrderID()
	claimed := false
	if h.ledger != nil && orderID != "" {
		first, err := h.ledger.Claim(ctx, orderID)
		if err != nil {
			h.logger.Error("order ledger unavailable", zap.String("order_id", orderID), zap.Error(err))
			h.reject(c, http.StatusInternalServerError, OutcomeFailed)
			return
		}
		if !first {
			h.logger.Info("duplicate order delivery", zap.String("order_id", orderID))
			h.done(c, http.StatusOK, OutcomeDuplicate)
			return
		}
		claimed = true
	}

	ad, err := h.store.CreateAd(ctx, models.NewAd{Message: message, Link: link, Email: email, Paid: true})
	if err != nil {
		h.logger.Error("create ad from order failed",
			zap.String("order_id", orderID),
			zap.String("email_hash", utils.HashEmail(email)),
			zap.Error(err),
		)
		if claimed {
			if rerr := h.ledger.Release(ctx, orderID); rerr != nil {
				h.logger.Error("release order claim failed", zap.String("order_id", orderID), zap.Error(rerr))
			}
		}
		h.reject(c, http.StatusInternalServerError, OutcomeFailed)
		return
	}
	h.cache.Invalidate()

	h.logger.Info("ad created from order",
		zap.String("order_id", orderID),
		zap.String("ad_id", ad.ID),
		zap.String("email_hash", utils.HashEmail(email)),
	)
	h.done(c, http.StatusOK, OutcomeCreated)
}

// archiveBody stores the verified body. Failures are logged and never change the response.
func (h *Handler) archiveBody(ctx context.Context, event string, raw []byte) {
	if h.archive == nil {
		return
	}
	key, err := h.archive.Archive(ctx, event, raw)
	if err != nil {
		h.logger.Warn("webhook archive failed", zap.String("event", event), zap.Error(err))
		return
	}
	h.logger.Debug("webhook archived", zap.String("key", key))
}

func (h *Handler) reject(c *gin.Context, status int, outcome string) {
	h.observe(outcome)
	c.String(status, http.StatusText(status))
	c.Abort()
}

func (h *Handler) done(c *gin.Context, status int, outcome string) {
	h.observe(outcome)
	c.String(status, "OK")
}

func (h *Handler) observe(outcome string) {
	if h.observer != nil {
		h.observer.ObserveWebhook(outcome)
	}
}
