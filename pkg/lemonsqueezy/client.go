// Package lemonsqueezy creates hosted checkouts for one store variant through the Lemon Squeezy SDK.
package lemonsqueezy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	lsq "github.com/NdoleStudio/lemonsqueezy-go"
	"go.uber.org/zap"
)

// CheckoutRequest describes one hosted checkout.
type CheckoutRequest struct {
	Email string
	// Custom is echoed back in the order webhook's meta.custom_data.
	Custom      map[string]string
	RedirectURL string
	ButtonColor string
}

// Config holds client settings. Endpoint overrides the API root and is empty in production.
type Config struct {
	Endpoint  string
	APIKey    string
	StoreID   string
	VariantID string
	Timeout   time.Duration
}

// Client creates checkouts for one store variant.
type Client struct {
	sdk       *lsq.Client
	storeID   int
	variantID int
	logger    *zap.Logger
}

// NewClient creates a Lemon Squeezy client. Store and variant ids must be numeric.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	storeID, err := strconv.Atoi(cfg.StoreID)
	if err != nil {
		return nil, fmt.Errorf("store id %q: %w", cfg.StoreID, err)
	}
	variantID, err := strconv.Atoi(cfg.VariantID)
	if err != nil {
		return nil, fmt.Errorf("variant id %q: %w", cfg.VariantID, err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := []lsq.Option{
		lsq.WithAPIKey(cfg.APIKey),
		lsq.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, lsq.WithBaseURL(cfg.Endpoint))
	}
	return &Client{
		sdk:       lsq.New(opts...),
		storeID:   storeID,
		variantID: variantID,
		logger:    logger,
	}, nil
}

// CreateCheckout creates a checkout and returns its hosted URL.
func (c *Client) CreateCheckout(ctx context.Context, in CheckoutRequest) (string, error) {
	custom := make(map[string]any, len(in.Custom))
	for k, v := range in.Custom {
		custom[k] = v
	}

	start := time.Now()
	checkout, resp, err := c.sdk.Checkouts.Create(ctx, c.storeID, c.variantID, &lsq.CheckoutCreateAttributes{
		ProductOptions:  lsq.CheckoutCreateProductOptions{RedirectURL: in.RedirectURL},
		CheckoutOptions: lsq.CheckoutCreateOptions{ButtonColor: in.ButtonColor},
		CheckoutData:    lsq.CheckoutCreateData{Email: in.Email, Custom: custom},
	})
	if resp != nil && resp.HTTPResponse != nil {
		c.logger.Debug("lemonsqueezy call",
			zap.Int("status", resp.HTTPResponse.StatusCode),
			zap.Duration("latency", time.Since(start)),
		)
	}
	if err != nil {
		return "", fmt.Errorf("create checkout: %w", err)
	}
	if checkout == nil || checkout.Data.Attributes.URL == "" {
		return "", errors.New("lemonsqueezy: checkout response has no url")
	}
	return checkout.Data.Attributes.URL, nil
}
