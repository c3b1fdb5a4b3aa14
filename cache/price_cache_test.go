package cache

import (
	"context"
	"testing"
	"time"
)

func TestPriceCacheWithoutRedis(t *testing.T) {
	c := NewPriceCache(nil)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "EV-A", "hash1"); ok {
		t.Fatal("empty cache should miss")
	}

	report := PriceReport{VehicleID: "EV-A", Report: `{"current_value": 100000}`, GeneratedAt: time.Now()}
	c.Set(ctx, "EV-A", "hash1", report, time.Hour)

	got, ok := c.Get(ctx, "EV-A", "hash1")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got.Report != report.Report {
		t.Errorf("expected report %q, got %q", report.Report, got.Report)
	}
}

func TestPriceCacheKeyedByHash(t *testing.T) {
	c := NewPriceCache(nil)
	ctx := context.Background()

	c.Set(ctx, "EV-A", "hash1", PriceReport{VehicleID: "EV-A", Report: "old"}, time.Hour)

	// A changed summary hashes differently, so the stale entry is never served.
	if _, ok := c.Get(ctx, "EV-A", "hash2"); ok {
		t.Error("different data hash must miss")
	}
	if _, ok := c.Get(ctx, "EV-B", "hash1"); ok {
		t.Error("different vehicle must miss")
	}
}

func TestDataHash(t *testing.T) {
	type summary struct {
		Vehicle string
		SOH     float64
	}

	a := DataHash(summary{Vehicle: "EV-A", SOH: 80})
	b := DataHash(summary{Vehicle: "EV-A", SOH: 80})
	if a != b {
		t.Errorf("identical content must hash identically: %s vs %s", a, b)
	}

	c := DataHash(summary{Vehicle: "EV-A", SOH: 79.9})
	if a == c {
		t.Error("changed content must change the hash")
	}

	if len(a) != 16 {
		t.Errorf("expected 8-byte hex hash (16 chars), got %q", a)
	}
}
