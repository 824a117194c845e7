package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/metrics"
)

// DatabaseName is the default file name of the item database
const DatabaseName = "item_database"

// ErrStorageInit matches every error returned when the database cannot be
// created or opened
var ErrStorageInit = errors.New("storage initialization failed")

// InitError reports a failed attempt to open the database file
type InitError struct {
	Path string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorageInit, e.Path, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// Is reports ErrStorageInit as a match in addition to the wrapped cause
func (e *InitError) Is(target error) bool { return target == ErrStorageInit }

// Env supplies the storage location available to the process
type Env struct {
	// DataDir holds the database file; created on first use if missing.
	DataDir string
}

// Option configures a Provider
type Option func(*options)

type options struct {
	name   string
	onNoOp NoOpHook
}

// WithName overrides the database file name
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithNoOpHook installs a hook observing silently dropped writes
func WithNoOpHook(hook NoOpHook) Option {
	return func(o *options) {
		o.onNoOp = hook
	}
}

// Provider lazily opens the item database and hands the same handle to
// every caller. Create one per process and pass it through the composition
// root; opening the file from two Providers defeats the single-handle rule.
type Provider struct {
	env  Env
	opts options

	mu sync.Mutex
	db atomic.Pointer[Database]
}

// NewProvider creates a Provider for the database under env.DataDir
func NewProvider(env Env, opts ...Option) *Provider {
	o := options{name: DatabaseName}
	for _, opt := range opts {
		opt(&o)
	}
	return &Provider{env: env, opts: o}
}

// Path returns the database file location
func (p *Provider) Path() string {
	return filepath.Join(p.env.DataDir, p.opts.name)
}

// Database returns the process-wide handle, opening it on first use.
// Concurrent first calls construct exactly one handle. A failed open is
// not cached, so a later call retries.
func (p *Provider) Database(ctx context.Context) (*Database, error) {
	if db := p.db.Load(); db != nil {
		return db, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if db := p.db.Load(); db != nil {
		return db, nil
	}

	path := p.Path()
	db, err := p.open(ctx, path)
	if err != nil {
		metrics.DatabaseOpensTotal.WithLabelValues(metrics.Fail).Inc()
		log.WithFields(log.Fields{"path": path, "err": err}).Error("failed to open item database")
		return nil, &InitError{Path: path, Err: err}
	}

	metrics.DatabaseOpensTotal.WithLabelValues(metrics.Ok).Inc()
	p.db.Store(db)
	return db, nil
}

func (p *Provider) open(ctx context.Context, path string) (*Database, error) {
	if p.env.DataDir != "" {
		if err := os.MkdirAll(p.env.DataDir, 0755); err != nil {
			return nil, err
		}
	}
	return open(ctx, path, p.opts)
}

// Close releases the handle if one was opened. Streams and repositories
// built on it fail afterwards; a later Database call opens a fresh handle.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	db := p.db.Swap(nil)
	if db == nil {
		return nil
	}
	log.WithField("path", db.path).Debug("item database closed")
	return errors.Wrap(db.close(), "failed to close item database")
}
