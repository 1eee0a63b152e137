package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/postkeeper/internal/client/config"
	"github.com/dmitrijs2005/postkeeper/internal/client/keyval"
	"github.com/dmitrijs2005/postkeeper/internal/client/kvstore"
	"github.com/dmitrijs2005/postkeeper/internal/client/posts"
	"github.com/dmitrijs2005/postkeeper/internal/client/profile"
	"github.com/dmitrijs2005/postkeeper/internal/client/services"
	"github.com/dmitrijs2005/postkeeper/internal/filex"
	"github.com/dmitrijs2005/postkeeper/internal/logging"
	"github.com/dmitrijs2005/postkeeper/internal/netx"
)

type App struct {
	config *config.Config
	logger logging.Logger

	db      *sql.DB
	store   posts.Store
	unbind  func()
	posts   services.PostService
	demo    services.DemoService
	profile *profile.Refresher

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local store, restores the posts container and builds
// the services. Logs go to stderr so they do not mix with REPL output.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat, os.Stderr)

	dbPath, err := filex.EnsureParentDir(c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error preparing data directory: %w", err)
	}

	db, err := kvstore.Open(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	local := kvstore.NewSQLiteRepository(db)

	store, unbind, err := posts.Open(ctx, posts.NewKVPersister(local), logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error restoring posts: %w", err)
	}

	httpClient := netx.New(netx.Config{Timeout: c.RequestTimeout, Logger: logger})
	remote := keyval.NewHTTPClient(c.KeyValURL, httpClient, logger.With("component", "keyval"))

	profiles := profile.NewRefresher(
		profile.NewClient(c.ProfileURL, httpClient, logger),
		c.ProfileRefreshInterval,
		c.ProfileStaleTime,
		logger.With("component", "profile"),
	)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		store:   store,
		unbind:  unbind,
		posts:   services.NewPostService(store, remote, local, logger.With("component", "posts")),
		demo:    services.NewDemoService(local),
		profile: profiles,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run starts background refreshes and blocks in the REPL until the user
// exits, stdin is closed or ctx is canceled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close(ctx)

	a.profile.Start(ctx)

	info("Welcome to postkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, promptEnabled())
}

func (a *App) close(ctx context.Context) {
	a.profile.Stop()
	a.unbind()
	if err := a.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		a.logger.Error(ctx, "failed to close database", "error", err)
	}
}

func (a *App) getStatus() string {
	st := a.store.Snapshot()
	s := fmt.Sprintf("%d posts", len(st.Posts))
	if st.IsLoading {
		s += ", syncing"
	}
	if st.Error != nil {
		s += ", error"
	}
	return "(" + s + ")"
}
