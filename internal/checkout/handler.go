package checkout

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/edaterlove/adboard/internal/ads"
	"github.com/edaterlove/adboard/pkg/lemonsqueezy"
	"github.com/edaterlove/adboard/pkg/response"
	"github.com/edaterlove/adboard/pkg/utils"
)

// ButtonColor is the checkout button color shown on the hosted page.
const ButtonColor = "#7C3AED"

const msgCheckoutFailed = "Failed to create checkout session."

// Provider creates hosted checkout sessions.
type Provider interface {
	CreateCheckout(ctx context.Context, in lemonsqueezy.CheckoutRequest) (string, error)
}

// Response is the body of a successful POST /create-checkout.
type Response struct {
	Success     bool   `json:"success"`
	CheckoutURL string `json:"checkoutUrl"`
}

// Handler handles checkout creation.
type Handler struct {
	provider    Provider
	frontendURL string
	logger      *zap.Logger
}

// NewHandler creates a checkout handler. frontendURL is where the provider sends the buyer after paying.
func NewHandler(provider Provider, frontendURL string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{provider: provider, frontendURL: strings.TrimRight(frontendURL, "/"), logger: logger}
}

// Create handles POST /create-checkout. The ad text travels in the checkout's custom data and comes
// back in the order webhook.
func (h *Handler) Create(c *gin.Context) {
	sub, err := ads.DecodeSubmission(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "Request body must be a JSON object.")
		return
	}
	if verr := ads.Validate(sub); verr != nil {
		response.BadRequest(c, verr.Message)
		return
	}
	sub = sub.Normalize()

	url, err := h.provider.CreateCheckout(c.Request.Context(), lemonsqueezy.CheckoutRequest{
		Email:       sub.Email,
		Custom:      map[string]string{"message": sub.Message, "link": sub.LinkValue()},
		RedirectURL: h.frontendURL + "/payment-success",
		ButtonColor: ButtonColor,
	})
	if err == nil && url == "" {
		err = errors.New("empty checkout url")
	}
	if err != nil {
		h.logger.Error("create checkout failed",
			zap.Error(err),
			zap.String("email_hash", utils.HashEmail(sub.Email)),
		)
		response.Internal(c, msgCheckoutFailed)
		return
	}

	h.logger.Info("checkout created", zap.String("email_hash", utils.HashEmail(sub.Email)))
	c.JSON(http.StatusOK, Response{Success: true, CheckoutURL: url})
}
