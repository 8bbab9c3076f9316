package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	hitsBefore := testutil.ToFloat64(CacheLookups.WithLabelValues("hit"))
	createdBefore := testutil.ToFloat64(WebhookDeliveries.WithLabelValues("created"))

	r.ObserveCache("hit")
	r.ObserveCache("hit")
	r.ObserveWebhook("created")

	if got := testutil.ToFloat64(CacheLookups.WithLabelValues("hit")) - hitsBefore; got != 2 {
		t.Errorf("expected 2 cache hits, got %v", got)
	}
	if got := testutil.ToFloat64(WebhookDeliveries.WithLabelValues("created")) - createdBefore; got != 1 {
		t.Errorf("expected 1 created delivery, got %v", got)
	}
}
