package repository

import (
	"context"
	"encoding/json"
	"time"

	"loan-qualifier/domain"
	"loan-qualifier/logger"
)

const rateSheetCachePrefix = "ratesheet:"

// locator is implemented by sources that read from an addressable place
// (a file path, an s3 object).
type locator interface {
	Location() string
}

// CachedRateSheetRepository keeps the parsed rate sheet of another
// repository in a cache for ttl. Cache failures fall back to the source.
type CachedRateSheetRepository struct {
	source RateSheetRepository
	cache  CacheRepository
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedRateSheetRepository(
	source RateSheetRepository,
	cache CacheRepository,
	ttl time.Duration,
	log logger.Logger,
) *CachedRateSheetRepository {
	return &CachedRateSheetRepository{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"source": source.Source()}),
	}
}

func (c *CachedRateSheetRepository) Source() string {
	return c.source.Source() + "+cache"
}

func (c *CachedRateSheetRepository) cacheKey() string {
	key := rateSheetCachePrefix + c.source.Source()
	if l, ok := c.source.(locator); ok {
		key += ":" + l.Location()
	}
	return key
}

func (c *CachedRateSheetRepository) Load(ctx context.Context) (domain.RateSheet, error) {
	key := c.cacheKey()

	if val, ok := c.cache.Get(ctx, key); ok {
		var sheet domain.RateSheet
		if err := json.Unmarshal([]byte(val), &sheet); err == nil {
			c.logger.Debug("rate sheet cache hit", map[string]interface{}{"rows": len(sheet)})
			return sheet, nil
		}
		c.logger.Warn("discarding undecodable cached rate sheet", map[string]interface{}{"key": key})
	}

	sheet, err := c.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(sheet)
	if err != nil {
		return sheet, nil
	}
	// Not critical if it fails.
	if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
		c.logger.Warn("failed to cache rate sheet", map[string]interface{}{"error": err.Error()})
	}
	return sheet, nil
}
