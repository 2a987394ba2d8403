package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/mcoffline/internal/client/config"
	"github.com/dmitrijs2005/mcoffline/internal/client/models"
	"github.com/dmitrijs2005/mcoffline/internal/client/netx"
	"github.com/dmitrijs2005/mcoffline/internal/client/offline"
	"github.com/dmitrijs2005/mcoffline/internal/client/repositories/requests"
	"github.com/dmitrijs2005/mcoffline/internal/client/storage"
	"github.com/dmitrijs2005/mcoffline/internal/client/watcher"
	"github.com/dmitrijs2005/mcoffline/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger

	store      *storage.Store
	status     *offline.StatusStore
	tokens     *netx.MetadataTokens
	outbox     requests.Repository
	fetcher    *offline.Fetcher
	prefetcher *offline.Prefetcher
	watcher    *watcher.Watcher

	in  io.Reader
	out io.Writer
}

// NewApp opens the store named by c and wires the offline layer on top of
// it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := storage.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	db := store.DB()
	status := offline.NewStatusStore(store.Metadata(db))
	tokens := netx.NewMetadataTokens(store.Metadata(db))
	httpClient := netx.NewClient(c.BaseURL, c.PingPath, c.RequestTimeout, tokens)
	updater := offline.NewUpdater(store, c.UserName, log)

	return &App{
		config:     c,
		log:        log,
		store:      store,
		status:     status,
		tokens:     tokens,
		outbox:     store.Requests(db),
		fetcher:    offline.NewFetcher(c.BaseURL, status, store.Entities(db), updater, httpClient, log),
		prefetcher: offline.NewPrefetcher(c.BaseURL, store.Entities(db), httpClient, log),
		watcher:    watcher.New(httpClient, status, c.OnlineCheckInterval, log),
		in:         os.Stdin,
		out:        os.Stdout,
	}, nil
}

// Run starts the status watcher if enabled and serves the REPL until the
// input ends or the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.config.AutoDetectStatus {
		go a.watcher.Run(ctx)
	}

	fmt.Fprintln(a.out, "Offline client (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.promptStatus(ctx) }, bufio.NewScanner(a.in))
	return nil
}

func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) promptStatus(ctx context.Context) string {
	s, err := a.status.Status(ctx)
	if err != nil {
		return "?"
	}
	n, err := a.outbox.CountPending(ctx)
	if err != nil || n == 0 {
		return string(s)
	}
	return fmt.Sprintf("%s, %d pending", s, n)
}

// reportError prints err unless it only says the command was cancelled.
func reportError(err error) {
	if err == nil || offline.IsCanceled(err) {
		return
	}
	printlnFn("error:", err)
}

var errUsage = errors.New("usage")

func (a *App) SetMode(ctx context.Context, s models.OfflineStatus) error {
	if err := a.status.SetStatus(ctx, s); err != nil {
		return err
	}
	printlnFn("Switched to", s, "mode")
	return nil
}
