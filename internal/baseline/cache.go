package baseline

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pantrywise/consumption-service/pkg/logger"
)

// DefaultDays is the prediction used when an item has no baseline at all.
const DefaultDays = 14

type Entry struct {
	AvgDays  int
	Category string
}

// Cache is the read-only in-memory baseline lookup. It is constructed empty
// and populated exactly once via Load; later Load calls are no-ops. After
// loading it is safe for concurrent readers with no further writes.
type Cache struct {
	repo   Repository
	logger logger.ZapLogger

	mu      sync.RWMutex
	entries map[string]Entry
	loaded  bool
}

func NewCache(repo Repository, log logger.ZapLogger) *Cache {
	return &Cache{
		repo:    repo,
		logger:  log,
		entries: make(map[string]Entry),
	}
}

// Load populates the cache from the database. If the table is empty the
// built-in reference data is used instead, so lookups always have a dataset.
func (c *Cache) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return nil
	}

	rows, err := c.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		c.logger.Warn("baseline table empty, falling back to built-in defaults")
		c.entries = Defaults()
	} else {
		for _, row := range rows {
			c.entries[NormalizeName(row.ItemName)] = Entry{
				AvgDays:  row.AvgDays,
				Category: row.Category,
			}
		}
	}

	c.loaded = true
	c.logger.Info("baseline cache loaded", zap.Int("entries", len(c.entries)))
	return nil
}

// Lookup returns the baseline for a normalized item name, if known.
func (c *Cache) Lookup(itemName string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[NormalizeName(itemName)]
	return entry, ok
}

func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// NormalizeName is the canonical item-name key used across baselines,
// patterns and scan grouping.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
