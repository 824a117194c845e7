package repository

import (
	"context"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/domain"
	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/stream"
)

// ItemQueries defines the statements executed against the items table
type ItemQueries interface {
	// Write operations
	Insert(ctx context.Context, item domain.Item) error
	Update(ctx context.Context, item domain.Item) error
	Delete(ctx context.Context, item domain.Item) error

	// Live reads. GetItem emits nil while no row has the ID.
	GetItem(id int64) *stream.Stream[*domain.Item]
	GetAllItems() *stream.Stream[[]domain.Item]
}

// ItemsRepository provides insert, update, delete and retrieval of items
type ItemsRepository interface {
	// GetAllItemsStream streams every item ordered by name
	GetAllItemsStream() *stream.Stream[[]domain.Item]
	// GetItemStream streams the item with the given ID, or nil when absent
	GetItemStream(id int64) *stream.Stream[*domain.Item]

	InsertItem(ctx context.Context, item domain.Item) error
	DeleteItem(ctx context.Context, item domain.Item) error
	UpdateItem(ctx context.Context, item domain.Item) error
}

// OfflineItemsRepository implements ItemsRepository on top of local storage
type OfflineItemsRepository struct {
	queries ItemQueries
}

var _ ItemsRepository = (*OfflineItemsRepository)(nil)

// NewOfflineItemsRepository creates a repository forwarding to queries
func NewOfflineItemsRepository(queries ItemQueries) *OfflineItemsRepository {
	return &OfflineItemsRepository{queries: queries}
}

func (r *OfflineItemsRepository) GetAllItemsStream() *stream.Stream[[]domain.Item] {
	return r.queries.GetAllItems()
}

func (r *OfflineItemsRepository) GetItemStream(id int64) *stream.Stream[*domain.Item] {
	return r.queries.GetItem(id)
}

func (r *OfflineItemsRepository) InsertItem(ctx context.Context, item domain.Item) error {
	return r.queries.Insert(ctx, item)
}

func (r *OfflineItemsRepository) DeleteItem(ctx context.Context, item domain.Item) error {
	return r.queries.Delete(ctx, item)
}

func (r *OfflineItemsRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	return r.queries.Update(ctx, item)
}
