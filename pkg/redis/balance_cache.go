package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// CachedBalance is the stored shape of a balance observation
type CachedBalance struct {
	Balance float64   `json:"balance"`
	ReadAt  time.Time `json:"readAt"`
}

// BalanceCache caches last-known wallet balances with a TTL so repeated
// balance reads do not hammer chain RPC endpoints. Only successful reads
// are cached; an unavailable chain never overwrites a known balance.
type BalanceCache struct {
	ttl time.Duration
}

// NewBalanceCache creates a balance cache with the given TTL
func NewBalanceCache(ttl time.Duration) *BalanceCache {
	return &BalanceCache{ttl: ttl}
}

func balanceKey(address, chain string) string {
	return "balance:" + chain + ":" + address
}

// Get returns the cached balance for (address, chain), or found=false
func (c *BalanceCache) Get(ctx context.Context, address, chain string) (*CachedBalance, bool) {
	raw, err := get(ctx, balanceKey(address, chain))
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			// Cache trouble degrades to a chain read, nothing more.
			return nil, false
		}
		return nil, false
	}

	var cached CachedBalance
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, false
	}
	return &cached, true
}

// Put stores a balance observation under the cache TTL
func (c *BalanceCache) Put(ctx context.Context, address, chain string, balance float64, readAt time.Time) error {
	payload, err := json.Marshal(CachedBalance{Balance: balance, ReadAt: readAt})
	if err != nil {
		return err
	}
	return set(ctx, balanceKey(address, chain), payload, c.ttl)
}

// Invalidate drops the cached balance for (address, chain)
func (c *BalanceCache) Invalidate(ctx context.Context, address, chain string) error {
	return del(ctx, balanceKey(address, chain))
}
