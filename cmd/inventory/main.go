// Command inventory manages the local item database from the shell.
package main

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/app"
	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/config"
	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/repository"
	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/repository/sqlite"
)

// Options are the global flags shared by every sub-command. Set flags take
// precedence over the YAML config file.
type Options struct {
	ConfigPath string `long:"config" description:"Path to YAML config file (default: search standard locations)"`
	DataDir    string `long:"data-dir" env:"INVENTORY_DATA_DIR" description:"Directory holding the item database"`

	Log struct {
		Level  string `long:"level" env:"LEVEL" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"fatal" description:"Logging level"`
		Format string `long:"format" env:"FORMAT" choice:"json" choice:"text" choice:"color" description:"Logging output format"`
	} `group:"Logging" namespace:"log" env-namespace:"LOG"`

	Metrics struct {
		Addr string `long:"addr" env:"ADDR" description:"Serve prometheus metrics on this address while the command runs"`
	} `group:"Metrics" namespace:"metrics" env-namespace:"METRICS"`
}

var opts Options

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.LongDescription = `inventory stores items (name, price, quantity) in a local SQLite file
and keeps listings live as the data changes.

Configuration is read from $` + config.EnvConfigPath + `, ./` + config.ConfigFileName + `,
~/.config/` + config.AppDirName + `/config.yaml or /etc/` + config.AppDirName + `/config.yaml.`

	mustAddCmd(parser, "add", "Add an item", "Insert a new item. An explicit --id that already exists is ignored.", &cmdAdd{})
	mustAddCmd(parser, "update", "Update an item", "Overwrite every field of the item with --id. A missing id is ignored.", &cmdUpdate{})
	mustAddCmd(parser, "delete", "Delete an item", "Delete the item with --id. A missing id is ignored.", &cmdDelete{})
	mustAddCmd(parser, "get", "Show one item", "Print the item with --id.", &cmdGet{})
	mustAddCmd(parser, "list", "List items", "Print all items ordered by name.", &cmdList{})
	mustAddCmd(parser, "import", "Import items", "Insert every item from a JSON or YAML file. Items whose id already exists are skipped. With --follow the file is imported again on every change.", &cmdImport{})
	mustAddCmd(parser, "watch", "Follow items live", "Print the item list (or one item with --id) every time it changes, until interrupted.", &cmdWatch{})

	_, err := parser.Parse()
	shutdown()

	if err != nil {
		var flagErr *flags.Error
		if errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

func mustAddCmd(parser *flags.Parser, name, short, long string, data interface{}) {
	if _, err := parser.AddCommand(name, short, long, data); err != nil {
		log.WithField("err", err).Fatal("failed to add command")
	}
}

// resolveConfig loads the config file and applies flag overrides
func resolveConfig(o Options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, _, err = config.LoadFromPath(o.ConfigPath)
	} else {
		cfg, _, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if o.DataDir != "" {
		cfg.Database.Dir = o.DataDir
	}
	if o.Log.Level != "" {
		cfg.Log.Level = o.Log.Level
	}
	if o.Log.Format != "" {
		cfg.Log.Format = o.Log.Format
	}
	if o.Metrics.Addr != "" {
		cfg.Metrics.Addr = o.Metrics.Addr
	}
	return cfg, nil
}

// session holds the process-wide storage so every startup call in one
// process shares a single database handle.
var session struct {
	mu        sync.Mutex
	provider  *sqlite.Provider
	container *app.DataContainer
}

// startup configures logging and metrics and returns the item repository
func startup(ctx context.Context) (repository.ItemsRepository, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.container == nil {
		cfg, err := resolveConfig(opts)
		if err != nil {
			return nil, err
		}
		if err := config.InitLog(cfg.Log); err != nil {
			return nil, err
		}
		log.WithField("config", cfg.Summary()).Debug("resolved configuration")

		if cfg.Metrics.Addr != "" {
			serveMetrics(ctx, cfg.Metrics.Addr)
		}

		session.provider = sqlite.NewProvider(
			sqlite.Env{DataDir: cfg.Database.Dir},
			sqlite.WithName(cfg.Database.Name),
			sqlite.WithNoOpHook(func(n sqlite.NoOp) {
				log.WithFields(log.Fields{"op": n.Op, "id": n.Item.ID}).Info("write ignored: no matching row or id already taken")
			}),
		)
		session.container = app.NewDataContainer(session.provider)
	}
	return session.container.ItemsRepository(ctx)
}

// shutdown closes the database opened by startup, if any
func shutdown() {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.provider == nil {
		return
	}
	if err := session.provider.Close(); err != nil {
		log.WithField("err", err).Warn("failed to close item database")
	}
	session.provider, session.container = nil, nil
}

func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithFields(log.Fields{"addr": addr, "err": err}).Warn("metrics server stopped")
		}
	}()
	log.WithField("addr", addr).Info("serving metrics")
}
