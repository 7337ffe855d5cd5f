package cache

import (
	"fmt"
	"ratesboard/internal/domain"
	"strconv"
	"strings"

	"github.com/dgraph-io/ristretto"
)

type RistrettoFilterCache struct {
	cache *ristretto.Cache
}

func NewFilterCache(maxItems int64) (*RistrettoFilterCache, error) {
	if maxItems <= 0 {
		maxItems = 256
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create filter cache failed: %w", err)
	}
	return &RistrettoFilterCache{cache: c}, nil
}

func (c *RistrettoFilterCache) Get(version uint64, filter string) ([]domain.Rate, bool) {
	if v, ok := c.cache.Get(toKey(version, filter)); ok {
		rows, ok := v.([]domain.Rate)
		return rows, ok
	}
	return nil, false
}

func (c *RistrettoFilterCache) Set(version uint64, filter string, rows []domain.Rate) {
	c.cache.Set(toKey(version, filter), rows, 1)
}

func (c *RistrettoFilterCache) Close() { c.cache.Close() }

// filter text is case-insensitive, so the key is too
func toKey(version uint64, filter string) string {
	return strconv.FormatUint(version, 10) + ":" + strings.ToLower(filter)
}
