// Package query is the read side: it fetches on-chain cash-account state and
// keeps a bounded, TTL-limited cache of it. The write path shares nothing
// with it except the derived addresses.
package query

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/solcash/cashgo/client"
	"github.com/solcash/cashgo/config"
	"github.com/solcash/cashgo/logx"
	"github.com/solcash/cashgo/program"
	"github.com/solcash/cashgo/types"
)

// Cache serves cash-account records with an explicit staleness window. A
// record stays cached until its TTL lapses or Invalidate drops it after a
// confirmed mutation.
type Cache struct {
	rpc client.ChainRPC
	lru *expirable.LRU[solana.PublicKey, *types.CashAccountRecord]
}

func NewCache(rpc client.ChainRPC, cfg config.CacheConfig) *Cache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = config.DefaultCacheMaxEntries
	}
	return &Cache{
		rpc: rpc,
		lru: expirable.NewLRU[solana.PublicKey, *types.CashAccountRecord](maxEntries, nil, ttl),
	}
}

// Get returns the record for addr, from cache when fresh, otherwise fetched
// from the chain. A missing account surfaces as ErrAccountNotFound.
func (c *Cache) Get(ctx context.Context, addr solana.PublicKey) (*types.CashAccountRecord, error) {
	if rec, ok := c.lru.Get(addr); ok {
		return rec, nil
	}

	info, err := c.rpc.AccountInfo(ctx, addr)
	if err != nil {
		return nil, err
	}
	rec, err := program.DecodeCashAccount(addr, info.Data, info.Lamports)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	c.lru.Add(addr, rec)
	logx.Debug("QUERY", "cached record for ", addr.String())
	return rec, nil
}

// Invalidate drops the cached record for addr so the next Get refetches.
// Call it after every confirmed submission that touches addr.
func (c *Cache) Invalidate(addr solana.PublicKey) {
	c.lru.Remove(addr)
}

// Balance reads the lamport balance for addr directly from the chain; it is
// never served from cache.
func (c *Cache) Balance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	return c.rpc.Balance(ctx, addr)
}

// PendingRequest fetches and decodes the pending-request account at addr. It
// is not cached: requests are consumed immediately by accept or decline.
func (c *Cache) PendingRequest(ctx context.Context, addr solana.PublicKey) (*types.PendingRequestRecord, error) {
	info, err := c.rpc.AccountInfo(ctx, addr)
	if err != nil {
		return nil, err
	}
	rec, err := program.DecodePendingRequest(addr, info.Data)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return rec, nil
}
