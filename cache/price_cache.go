package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// PriceReport is one cached model response for one vehicle.
type PriceReport struct {
	VehicleID   string    `json:"vehicle_id"`
	Report      string    `json:"report"`
	GeneratedAt time.Time `json:"generated_at"`
}

// PriceCache memoizes per-vehicle pricing reports keyed by (vehicle, data
// hash). Entries live in process memory first; when a Redis client is
// available they are also written through so repeated uploads across
// restarts skip the model call. A changed summary changes the hash, which
// naturally invalidates the old entry.
type PriceCache struct {
	redis *RedisClient

	mu      sync.RWMutex
	entries map[string]PriceReport
}

// NewPriceCache creates a price cache. redis may be nil.
func NewPriceCache(redis *RedisClient) *PriceCache {
	return &PriceCache{
		redis:   redis,
		entries: make(map[string]PriceReport),
	}
}

func priceKey(vehicleID, dataHash string) string {
	return fmt.Sprintf("price:report:%s:%s", vehicleID, dataHash)
}

// Get returns the cached report for a vehicle and input hash, if any.
func (c *PriceCache) Get(ctx context.Context, vehicleID, dataHash string) (PriceReport, bool) {
	key := priceKey(vehicleID, dataHash)

	c.mu.RLock()
	report, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return report, true
	}

	if c.redis != nil {
		if err := c.redis.Get(ctx, key, &report); err == nil {
			c.mu.Lock()
			c.entries[key] = report
			c.mu.Unlock()
			return report, true
		}
	}
	return PriceReport{}, false
}

// Set stores a report for a vehicle and input hash.
func (c *PriceCache) Set(ctx context.Context, vehicleID, dataHash string, report PriceReport, ttl time.Duration) {
	key := priceKey(vehicleID, dataHash)

	c.mu.Lock()
	c.entries[key] = report
	c.mu.Unlock()

	if c.redis != nil {
		// Write-through is best effort; in-memory entry already holds the data.
		_ = c.redis.Set(ctx, key, report, ttl)
	}
}

// DataHash fingerprints any JSON-serializable input so cache keys track the
// content of the summary, not its address.
func DataHash(data interface{}) string {
	jsonData, _ := json.Marshal(data)
	hash := md5.Sum(jsonData)
	return fmt.Sprintf("%x", hash[:8]) // first 8 bytes keep keys short
}
