package webhooks

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLedger(t *testing.T) (*RedisLedger, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLedger(client, time.Hour), mr
}

func TestRedisLedgerClaimOnce(t *testing.T) {
	ledger, mr := newTestLedger(t)
	ctx := context.Background()

	first, err := ledger.Claim(ctx, "1001")
	if err != nil || !first {
		t.Fatalf("first claim: ok=%v err=%v", first, err)
	}
	second, err := ledger.Claim(ctx, "1001")
	if err != nil || second {
		t.Fatalf("second claim: ok=%v err=%v", second, err)
	}
	if ttl := mr.TTL("webhook:order:1001"); ttl != time.Hour {
		t.Errorf("expected 1h ttl, got %v", ttl)
	}
}

func TestRedisLedgerRelease(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	if _, err := ledger.Claim(ctx, "7"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := ledger.Release(ctx, "7"); err != nil {
		t.Fatalf("release: %v", err)
	}
	again, err := ledger.Claim(ctx, "7")
	if err != nil || !again {
		t.Fatalf("claim after release: ok=%v err=%v", again, err)
	}
}

func TestRedisLedgerExpiry(t *testing.T) {
	ledger, mr := newTestLedger(t)
	ctx := context.Background()

	if _, err := ledger.Claim(ctx, "9"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	mr.FastForward(2 * time.Hour)
	again, err := ledger.Claim(ctx, "9")
	if err != nil || !again {
		t.Fatalf("expected expired claim to be reclaimable: ok=%v err=%v", again, err)
	}
}

func TestRedisLedgerUnavailable(t *testing.T) {
	ledger, mr := newTestLedger(t)
	mr.Close()

	if _, err := ledger.Claim(context.Background(), "1"); err == nil {
		t.Fatal("expected error when redis is down")
	}
}
