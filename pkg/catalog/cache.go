package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/maypok86/otter/v2"
)

// Cache holds built catalogs keyed by UTC calendar day. Offsets only move at
// DST transitions, so one build per day per zone list is enough.
type Cache struct {
	cache   *otter.Cache[string, []Entry]
	builder *Builder
	logger  *slog.Logger
	ids     []string
	idsKey  string
}

// NewCache creates a day-bucketed catalog cache over a fixed zone list.
func NewCache(builder *Builder, ids []string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	h := sha256.New()
	h.Write([]byte(strings.Join(ids, "\n")))

	return &Cache{
		cache: otter.Must(&otter.Options[string, []Entry]{
			MaximumSize:      64,
			ExpiryCalculator: otter.ExpiryWriting[string, []Entry](24 * time.Hour),
		}),
		builder: builder,
		logger:  logger,
		ids:     slices.Clone(ids),
		idsKey:  hex.EncodeToString(h.Sum(nil))[:16],
	}
}

// Catalog returns the catalog for the UTC day containing at, building it on
// first use. The returned slice is a copy the caller may modify.
func (c *Cache) Catalog(at time.Time) []Entry {
	key := c.key(at)

	if entries, found := c.cache.GetIfPresent(key); found {
		c.logger.Debug("catalog cache hit", "key", key)
		return slices.Clone(entries)
	}

	entries := c.builder.Build(c.ids, at)
	c.cache.Set(key, entries)
	c.logger.Debug("catalog cache set", "key", key, "entries", len(entries))
	return slices.Clone(entries)
}

// Invalidate drops the cached catalog for the UTC day containing at.
func (c *Cache) Invalidate(at time.Time) {
	c.cache.Invalidate(c.key(at))
}

// Size reports the approximate number of cached catalogs.
func (c *Cache) Size() int {
	return c.cache.EstimatedSize()
}

func (c *Cache) key(at time.Time) string {
	return at.UTC().Format(time.DateOnly) + ":" + c.idsKey
}
