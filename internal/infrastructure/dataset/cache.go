package dataset

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"TenderBoard/internal/domain"
	"TenderBoard/internal/ports"
)

// Cache owns the process-lifetime copy of the loaded table. The table is
// populated on first access and reloaded only when the source file's
// modification time changes. Concurrent readers share one immutable table;
// the mutex guards only the load slot.
type Cache struct {
	path   string
	loader *Loader
	logger *slog.Logger

	mu      sync.Mutex
	table   *domain.Table
	modTime time.Time
}

var _ ports.DatasetSource = (*Cache)(nil)

// NewCache wires a loader to a source file path.
func NewCache(path string, loader *Loader, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{path: path, loader: loader, logger: logger}
}

// GetOrLoad returns the cached table, loading or reloading it as needed.
// When the file disappears after a successful load, the cached copy keeps
// serving the session.
func (c *Cache) GetOrLoad(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	info, statErr := os.Stat(c.path)

	if c.table != nil {
		if statErr != nil {
			c.logger.Warn("source file unreadable, serving cached table", "path", c.path, "error", statErr)
			return c.table, nil
		}
		if info.ModTime().Equal(c.modTime) {
			return c.table, nil
		}
		c.logger.Info("source file changed, reloading", "path", c.path)
	}

	table, err := c.loader.Load(c.path)
	if err != nil {
		return nil, err
	}

	c.table = table
	if statErr == nil {
		c.modTime = info.ModTime()
	}

	return c.table, nil
}
