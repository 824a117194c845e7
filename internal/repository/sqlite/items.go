package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/domain"
	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/hub"
	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/metrics"
	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/repository"
	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/stream"
)

// Write operation names, as reported to NoOpHook and metrics
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// NoOp describes a write that changed no row: an insert whose ID already
// exists, or an update or delete whose ID does not.
type NoOp struct {
	Op   string
	Item domain.Item
}

// NoOpHook observes writes that were silently dropped. Callers of the write
// still see success; the hook exists purely for diagnostics.
type NoOpHook func(NoOp)

// ItemDAO runs the item statements and publishes a hub event for every
// write that changed a row
type ItemDAO struct {
	db     *sql.DB
	hub    *hub.Hub
	onNoOp NoOpHook
}

var _ repository.ItemQueries = (*ItemDAO)(nil)

func newItemDAO(db *sql.DB, h *hub.Hub, onNoOp NoOpHook) *ItemDAO {
	return &ItemDAO{
		db:     db,
		hub:    h,
		onNoOp: onNoOp,
	}
}

// Insert adds item, letting SQLite assign the ID when item.ID is 0.
// An existing row with the same ID is kept and the insert is ignored.
func (d *ItemDAO) Insert(ctx context.Context, item domain.Item) error {
	res, err := d.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO items (id, name, price, quantity)
		VALUES (?, ?, ?, ?)
	`, idToNull(item.ID), item.Name, item.Price, item.Quantity)
	if err != nil {
		metrics.ItemWritesTotal.WithLabelValues(OpInsert, metrics.Fail).Inc()
		return errors.Wrapf(err, "failed to insert item %q", item.Name)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read insert result")
	}
	if n == 0 {
		d.noOp(OpInsert, item)
		return nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "failed to read inserted id")
	}
	metrics.ItemWritesTotal.WithLabelValues(OpInsert, metrics.Ok).Inc()
	d.hub.Publish(hub.Event{Type: hub.EventItemInserted, Table: itemsTable, ItemID: id})
	return nil
}

// Update overwrites name, price and quantity of the row with item.ID
func (d *ItemDAO) Update(ctx context.Context, item domain.Item) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE items SET name = ?, price = ?, quantity = ?
		WHERE id = ?
	`, item.Name, item.Price, item.Quantity, item.ID)
	if err != nil {
		metrics.ItemWritesTotal.WithLabelValues(OpUpdate, metrics.Fail).Inc()
		return errors.Wrapf(err, "failed to update item %d", item.ID)
	}
	return d.finish(res, OpUpdate, hub.EventItemUpdated, item)
}

// Delete removes the row with item.ID
func (d *ItemDAO) Delete(ctx context.Context, item domain.Item) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, item.ID)
	if err != nil {
		metrics.ItemWritesTotal.WithLabelValues(OpDelete, metrics.Fail).Inc()
		return errors.Wrapf(err, "failed to delete item %d", item.ID)
	}
	return d.finish(res, OpDelete, hub.EventItemDeleted, item)
}

func (d *ItemDAO) finish(res sql.Result, op string, eventType hub.EventType, item domain.Item) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "failed to read %s result", op)
	}
	if n == 0 {
		d.noOp(op, item)
		return nil
	}

	metrics.ItemWritesTotal.WithLabelValues(op, metrics.Ok).Inc()
	d.hub.Publish(hub.Event{Type: eventType, Table: itemsTable, ItemID: item.ID})
	return nil
}

func (d *ItemDAO) noOp(op string, item domain.Item) {
	metrics.ItemWritesTotal.WithLabelValues(op, metrics.NoOp).Inc()
	metrics.ItemNoOpWritesTotal.WithLabelValues(op).Inc()
	log.WithFields(log.Fields{"op": op, "id": item.ID, "name": item.Name}).
		Debug("item write changed no row")

	if d.onNoOp != nil {
		d.onNoOp(NoOp{Op: op, Item: item})
	}
}

// GetItem streams the row with id, emitting nil while it does not exist
func (d *ItemDAO) GetItem(id int64) *stream.Stream[*domain.Item] {
	return stream.New(d.hub, func(ctx context.Context) (*domain.Item, error) {
		return d.getItem(ctx, id)
	}, func(e hub.Event) bool {
		return e.Table == itemsTable && e.ItemID == id
	})
}

// GetAllItems streams every row ordered by name
func (d *ItemDAO) GetAllItems() *stream.Stream[[]domain.Item] {
	return stream.New(d.hub, d.listItems, func(e hub.Event) bool {
		return e.Table == itemsTable
	})
}

func (d *ItemDAO) getItem(ctx context.Context, id int64) (*domain.Item, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query item %d", id)
	}
	return &item, nil
}

func (d *ItemDAO) listItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query items")
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan item")
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating items")
	}
	return items, nil
}
