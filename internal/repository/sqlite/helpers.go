package sqlite

import (
	"database/sql"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/domain"
)

// ============================================================================
// Item Row Scanner
// ============================================================================
//
// CRITICAL: column order must match between itemColumns and scanItem.

const itemsTable = "items"

// itemColumns lists the selected columns in scan order
const itemColumns = `id, name, price, quantity`

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem reads one item in itemColumns order
func scanItem(row rowScanner) (domain.Item, error) {
	var item domain.Item
	err := row.Scan(&item.ID, &item.Name, &item.Price, &item.Quantity)
	return item, err
}

// ============================================================================
// Argument Helpers
// ============================================================================

// idToNull maps the unset ID 0 to NULL so SQLite assigns the next rowid
func idToNull(id int64) sql.NullInt64 {
	if id == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}
