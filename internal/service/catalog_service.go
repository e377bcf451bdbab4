package service

import (
	"context"
	"fmt"
	"time"

	"walletledger/internal/core/domain"
	"walletledger/internal/core/ports"

	"github.com/rs/zerolog"
)

const currencyCacheTTL = 10 * time.Minute

// CurrencyCatalogImpl implements ports.CurrencyCatalog with a Redis
// read-through cache in front of the currency reference table. Cache
// failures are logged and fall through to the database, so the catalog
// stays available when Redis is down.
type CurrencyCatalogImpl struct {
	repo  ports.CurrencyRepository
	cache ports.CurrencyCache
	log   zerolog.Logger
}

// NewCurrencyCatalog creates a new CurrencyCatalogImpl.
func NewCurrencyCatalog(repo ports.CurrencyRepository, cache ports.CurrencyCache, log zerolog.Logger) *CurrencyCatalogImpl {
	return &CurrencyCatalogImpl{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Resolve looks up a currency by name. Returns nil, nil when the name is
// unknown; only infrastructure failures produce an error.
func (c *CurrencyCatalogImpl) Resolve(ctx context.Context, name string) (*domain.Currency, error) {
	cached, err := c.cache.Get(ctx, name)
	if err != nil {
		c.log.Warn().Err(err).Str("currency", name).Msg("currency cache read failed, falling through to DB")
	}
	if cached != nil {
		return cached, nil
	}

	cur, err := c.repo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("currency lookup: %w", err)
	}
	if cur == nil {
		return nil, nil
	}

	if err := c.cache.Set(ctx, cur, currencyCacheTTL); err != nil {
		c.log.Warn().Err(err).Str("currency", name).Msg("failed to cache currency")
	}

	return cur, nil
}
