package lemonsqueezy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{Endpoint: srv.URL, APIKey: "sk", StoreID: "11", VariantID: "22"}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestCreateCheckout(t *testing.T) {
	var doc struct {
		Data struct {
			Type       string `json:"type"`
			Attributes struct {
				CheckoutData struct {
					Email  string            `json:"email"`
					Custom map[string]string `json:"custom"`
				} `json:"checkout_data"`
				CheckoutOptions struct {
					ButtonColor string `json:"button_color"`
				} `json:"checkout_options"`
				ProductOptions struct {
					RedirectURL string `json:"redirect_url"`
				} `json:"product_options"`
			} `json:"attributes"`
			Relationships map[string]struct {
				Data struct {
					Type string `json:"type"`
					ID   any    `json:"id"`
				} `json:"data"`
			} `json:"relationships"`
		} `json:"data"`
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/checkouts") {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk" {
			t.Errorf("missing bearer credential")
		}
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/vnd.api+json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"type":"checkouts","id":"c1","attributes":{"url":"https://shop.example/checkout/c1"}}}`))
	})

	url, err := c.CreateCheckout(context.Background(), CheckoutRequest{
		Email:       "a@b.com",
		Custom:      map[string]string{"message": "hi", "link": ""},
		RedirectURL: "https://front.example/payment-success",
		ButtonColor: "#7C3AED",
	})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}
	if url != "https://shop.example/checkout/c1" {
		t.Errorf("unexpected url %q", url)
	}

	attrs := doc.Data.Attributes
	if doc.Data.Type != "checkouts" || attrs.CheckoutData.Email != "a@b.com" {
		t.Errorf("unexpected document %+v", doc.Data)
	}
	if attrs.CheckoutData.Custom["message"] != "hi" {
		t.Errorf("unexpected custom data %v", attrs.CheckoutData.Custom)
	}
	if attrs.ProductOptions.RedirectURL != "https://front.example/payment-success" || attrs.CheckoutOptions.ButtonColor != "#7C3AED" {
		t.Errorf("unexpected options %+v", attrs)
	}
	store, variant := doc.Data.Relationships["store"].Data, doc.Data.Relationships["variant"].Data
	if fmt.Sprint(store.ID) != "11" || fmt.Sprint(variant.ID) != "22" {
		t.Errorf("unexpected relationships %+v", doc.Data.Relationships)
	}
}

func TestCreateCheckoutFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "api error", status: http.StatusUnprocessableEntity, body: `{"errors":[{"detail":"variant not found","status":"422"}]}`},
		{name: "unauthenticated", status: http.StatusUnauthorized, body: `{"errors":[{"title":"Unauthenticated"}]}`},
		{name: "missing url", status: http.StatusCreated, body: `{"data":{"type":"checkouts","attributes":{}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			if _, err := c.CreateCheckout(context.Background(), CheckoutRequest{Email: "a@b.com"}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewClientRejectsNonNumericIDs(t *testing.T) {
	tests := []Config{
		{StoreID: "store", VariantID: "22"},
		{StoreID: "11", VariantID: ""},
	}
	for _, cfg := range tests {
		if _, err := NewClient(cfg, nil); err == nil {
			t.Errorf("expected error for %+v", cfg)
		}
	}
}
