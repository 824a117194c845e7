package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/codec"
	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/domain"
	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/stream"
	"github.com/rinooktavianridwan/Studi-Kasus-Room/internal/watcher"
)

type itemFields struct {
	Name     string `long:"name" required:"true" description:"Item name"`
	Price    string `long:"price" required:"true" description:"Unit price, e.g. 9.99"`
	Quantity int64  `long:"quantity" default:"0" description:"Quantity in stock"`
}

func (f itemFields) item(id int64) (domain.Item, error) {
	item, err := domain.NewItem(f.Name, f.Price, f.Quantity)
	if err != nil {
		return domain.Item{}, err
	}
	item.ID = id
	return item, nil
}

type cmdAdd struct {
	ID int64 `long:"id" description:"Explicit item id (default: assigned by the database)"`
	itemFields
}

func (cmd *cmdAdd) Execute([]string) error {
	item, err := cmd.item(cmd.ID)
	if err != nil {
		return err
	}

	ctx, stop := commandContext()
	defer stop()

	repo, err := startup(ctx)
	if err != nil {
		return err
	}
	return repo.InsertItem(ctx, item)
}

type cmdUpdate struct {
	ID int64 `long:"id" required:"true" description:"Id of the item to overwrite"`
	itemFields
}

func (cmd *cmdUpdate) Execute([]string) error {
	item, err := cmd.item(cmd.ID)
	if err != nil {
		return err
	}

	ctx, stop := commandContext()
	defer stop()

	repo, err := startup(ctx)
	if err != nil {
		return err
	}
	return repo.UpdateItem(ctx, item)
}

type cmdDelete struct {
	ID int64 `long:"id" required:"true" description:"Id of the item to delete"`
}

func (cmd *cmdDelete) Execute([]string) error {
	ctx, stop := commandContext()
	defer stop()

	repo, err := startup(ctx)
	if err != nil {
		return err
	}
	return repo.DeleteItem(ctx, domain.Item{ID: cmd.ID})
}

type cmdGet struct {
	ID int64 `long:"id" required:"true" description:"Id of the item to show"`
}

func (cmd *cmdGet) Execute([]string) error {
	ctx, stop := commandContext()
	defer stop()

	repo, err := startup(ctx)
	if err != nil {
		return err
	}

	item, err := snapshot(ctx, repo.GetItemStream(cmd.ID))
	if err != nil {
		return err
	}
	if item == nil {
		return errors.Errorf("item %d not found", cmd.ID)
	}
	return writeTable(os.Stdout, []domain.Item{*item})
}

type cmdList struct {
	Format string `long:"format" short:"o" default:"table" choice:"table" choice:"json" choice:"yaml" description:"Output format"`
}

func (cmd *cmdList) Execute([]string) error {
	ctx, stop := commandContext()
	defer stop()

	repo, err := startup(ctx)
	if err != nil {
		return err
	}

	items, err := snapshot(ctx, repo.GetAllItemsStream())
	if err != nil {
		return err
	}
	if cmd.Format == "table" {
		return writeTable(os.Stdout, items)
	}

	exporter, err := codec.ForFormat(cmd.Format)
	if err != nil {
		return err
	}
	return exporter.Export(items, os.Stdout)
}

type cmdImport struct {
	Format string `long:"format" choice:"json" choice:"yaml" description:"Input format (default: from the file extension)"`
	Follow bool   `long:"follow" short:"f" description:"Keep running and import again whenever the file changes"`
	Args   struct {
		File string `positional-arg-name:"FILE" required:"true"`
	} `positional-args:"true"`
}

func (cmd *cmdImport) Execute([]string) error {
	format := cmd.Format
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(cmd.Args.File), ".")
	}
	importer, err := codec.ForFormat(format)
	if err != nil {
		return err
	}

	ctx, stop := commandContext()
	defer stop()

	repo, err := startup(ctx)
	if err != nil {
		return err
	}

	load := func() error {
		f, err := os.Open(cmd.Args.File)
		if err != nil {
			return err
		}
		defer f.Close()

		items, err := importer.Parse(f)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := repo.InsertItem(ctx, item); err != nil {
				return err
			}
		}
		log.WithFields(log.Fields{"file": cmd.Args.File, "items": len(items)}).Info("import complete")
		return nil
	}

	if err := load(); err != nil || !cmd.Follow {
		return err
	}
	if err := watcher.New(cmd.Args.File, load).Watch(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

type cmdWatch struct {
	ID int64 `long:"id" description:"Follow a single item instead of the whole list"`
}

func (cmd *cmdWatch) Execute([]string) error {
	ctx, stop := commandContext()
	defer stop()

	repo, err := startup(ctx)
	if err != nil {
		return err
	}

	// A failed write to stdout ends the watch.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var writeErr error
	check := func(err error) {
		if err != nil && writeErr == nil {
			writeErr = err
			cancel()
		}
	}

	var sub *stream.Subscription
	if cmd.ID != 0 {
		sub, err = repo.GetItemStream(cmd.ID).Subscribe(ctx, func(item *domain.Item) {
			check(writeItem(os.Stdout, cmd.ID, item))
		})
	} else {
		sub, err = repo.GetAllItemsStream().Subscribe(ctx, func(items []domain.Item) {
			check(writeTable(os.Stdout, items))
		})
	}
	if err != nil {
		return err
	}
	if err := sub.Wait(); err != nil {
		return err
	}
	return writeErr
}

// commandContext is cancelled on SIGINT or SIGTERM
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// snapshot returns the current value of a stream without following it
func snapshot[T any](ctx context.Context, s *stream.Stream[T]) (T, error) {
	var value T
	sub, err := s.Subscribe(ctx, func(v T) { value = v })
	if err != nil {
		return value, err
	}
	sub.Cancel()
	if err := sub.Wait(); err != nil {
		return value, err
	}
	return value, nil
}
