// Package app is the composition root: it wires storage into the
// repository consumed by the rest of the application.
package app

import (
	"context"
	"sync"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/repository"
	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/repository/sqlite"
)

// Container provides application dependencies
type Container interface {
	ItemsRepository(ctx context.Context) (repository.ItemsRepository, error)
}

// DataContainer provides an OfflineItemsRepository backed by the provider's database
type DataContainer struct {
	provider *sqlite.Provider

	mu   sync.Mutex
	repo repository.ItemsRepository
}

var _ Container = (*DataContainer)(nil)

// NewDataContainer creates a container. Nothing is opened until first use.
func NewDataContainer(provider *sqlite.Provider) *DataContainer {
	return &DataContainer{provider: provider}
}

// ItemsRepository returns the repository, building it on first access.
// A failure to open storage is returned and the next call tries again.
func (c *DataContainer) ItemsRepository(ctx context.Context) (repository.ItemsRepository, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.repo != nil {
		return c.repo, nil
	}

	db, err := c.provider.Database(ctx)
	if err != nil {
		return nil, err
	}
	c.repo = repository.NewOfflineItemsRepository(db.ItemDAO())
	return c.repo, nil
}
