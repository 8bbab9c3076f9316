package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/edaterlove/adboard/internal/ads"
	"github.com/edaterlove/adboard/internal/checkout"
	"github.com/edaterlove/adboard/internal/models"
	"github.com/edaterlove/adboard/internal/webhooks"
	"github.com/edaterlove/adboard/pkg/lemonsqueezy"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memStore struct{ ads []models.Ad }

func (m *memStore) ListPaidAds(context.Context, int) ([]models.Ad, error) {
	out := make([]models.Ad, 0, len(m.ads))
	for i := len(m.ads) - 1; i >= 0; i-- {
		out = append(out, m.ads[i])
	}
	return out, nil
}

func (m *memStore) CreateAd(_ context.Context, in models.NewAd) (models.Ad, error) {
	ad := models.Ad{ID: "rec1", Message: in.Message, Email: in.Email, Paid: in.Paid, CreatedAt: time.Now()}
	m.ads = append(m.ads, ad)
	return ad, nil
}

type stubProvider struct{}

func (stubProvider) CreateCheckout(context.Context, lemonsqueezy.CheckoutRequest) (string, error) {
	return "https://shop.example/c", nil
}

func testRouter(directCreate bool) *gin.Engine {
	store := &memStore{}
	cache := ads.NewCache(store, ads.CacheTTL)
	return newRouter(routerDeps{
		ads:          ads.NewHandler(cache, store, nil),
		checkout:     checkout.NewHandler(stubProvider{}, "https://quiz.example", nil),
		webhook:      webhooks.NewHandler([]byte("secret"), store, cache, nil),
		corsOrigins:  "https://quiz.example",
		directCreate: directCreate,
		logger:       zap.NewNop(),
	})
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouterRoutes(t *testing.T) {
	r := testRouter(true)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{method: http.MethodGet, path: "/health", want: http.StatusOK},
		{method: http.MethodGet, path: "/metrics", want: http.StatusOK},
		{method: http.MethodGet, path: "/ads", want: http.StatusOK},
		{method: http.MethodPost, path: "/create-ad", body: `{"message":"hi","email":"a@b.com"}`, want: http.StatusOK},
		{method: http.MethodPost, path: "/create-checkout", body: `{"message":"hi","email":"a@b.com"}`, want: http.StatusOK},
		{method: http.MethodPost, path: "/webhook", body: `{}`, want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		if w := serve(r, tt.method, tt.path, tt.body); w.Code != tt.want {
			t.Errorf("%s %s: got %d, want %d", tt.method, tt.path, w.Code, tt.want)
		}
	}
}

func TestRouterDirectCreateDisabled(t *testing.T) {
	r := testRouter(false)
	if w := serve(r, http.MethodPost, "/create-ad", `{"message":"hi","email":"a@b.com"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when direct create is disabled, got %d", w.Code)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	if newLogger("debug").Core().Enabled(zap.DebugLevel) != true {
		t.Error("expected debug enabled")
	}
	if newLogger("warn").Core().Enabled(zap.InfoLevel) {
		t.Error("expected info disabled at warn")
	}
	if !newLogger("nonsense").Core().Enabled(zap.InfoLevel) {
		t.Error("expected info fallback")
	}
}
