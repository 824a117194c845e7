// Package sqlite implements repository.ItemQueries on an embedded SQLite file.
//
// The package is split into:
//   - sqlite.go: the Database handle, connection setup and schema
//   - provider.go: Provider, the lazily-initialised accessor that hands out the
//     single Database of a process
//   - items.go: ItemDAO, the statements run against the items table
//   - helpers.go: row scanning and argument conversion
package sqlite

import (
	"context"
	"database/sql"
	"net/url"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/hub"
)

// Database is the open handle on the item database file
type Database struct {
	db    *sql.DB
	path  string
	hub   *hub.Hub
	items *ItemDAO
}

// open creates or opens the database at path and ensures its schema.
// Only Provider calls it, so a process never holds two handles on one file.
func open(ctx context.Context, path string, opts options) (*Database, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	// All statements share one connection; SQLite serialises writers anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	d := &Database{
		db:   db,
		path: path,
		hub:  hub.New(),
	}
	if err := d.migrate(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create schema")
	}
	d.items = newItemDAO(db, d.hub, opts.onNoOp)

	log.WithField("path", path).Info("item database opened")
	return d, nil
}

// dsn builds the URI filename for path. The path is percent-encoded so that
// '?', '#' and '%' in directory names stay part of the file name.
func dsn(path string) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath() +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
}

func (d *Database) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		price NUMERIC NOT NULL,
		quantity INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_items_name ON items(name);
	`

	_, err := d.db.ExecContext(ctx, schema)
	return err
}

// ItemDAO returns the query interface for the items table
func (d *Database) ItemDAO() *ItemDAO {
	return d.items
}

// Path returns the file backing this database
func (d *Database) Path() string {
	return d.path
}

// close releases the connection. The handle lives for the whole process in
// normal operation; tests use this to release temp files.
func (d *Database) close() error {
	return d.db.Close()
}
