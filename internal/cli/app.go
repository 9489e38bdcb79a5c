package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/folio/internal/actor"
	"github.com/folio/internal/actor/local"
	"github.com/folio/internal/admin"
	"github.com/folio/internal/blogsync"
	"github.com/folio/internal/client"
	"github.com/folio/internal/db"
	"github.com/folio/internal/logging"
	"github.com/folio/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// app owns the connection and the session of one client run.
type app struct {
	cfg     Config
	logger  *zap.Logger
	term    *terminal
	handle  *actor.Handle
	session *client.Session
	closers []func()
}

func newApp(cfg Config, out io.Writer, scheduler admin.Scheduler) (*app, error) {
	level := "warn"
	if cfg.Verbose {
		level = "debug"
	}
	log, err := logging.New(level, true)
	if err != nil {
		return nil, err
	}

	term := newTerminal(out, !cfg.NoColor)
	handle := actor.NewHandle()
	a := &app{
		cfg:    cfg,
		logger: log,
		term:   term,
		handle: handle,
	}
	a.session = client.NewSession(client.Options{
		Source:    handle,
		Notifier:  term,
		Viewport:  term,
		Scheduler: scheduler,
		SyncOpts:  []blogsync.Option{blogsync.WithLogger(log)},
	})
	return a, nil
}

// connect publishes the backend on the handle once it answers.
func (a *app) connect(ctx context.Context) error {
	if a.handle.Current() != nil {
		return nil
	}
	backend, err := a.backend()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()
	if err := a.handle.Connect(ctx, backend); err != nil {
		a.logger.Warn("backend unavailable", zap.String("server", a.cfg.Server), zap.Error(err))
		return err
	}
	a.logger.Debug("connected", zap.String("server", a.cfg.Server), zap.String("database", a.cfg.Database))
	return nil
}

func (a *app) backend() (actor.Actor, error) {
	if a.cfg.Database != "" {
		gdb, err := db.Init(db.Options{Driver: db.DriverSQLite, Path: a.cfg.Database, LogLevel: logger.Silent})
		if err != nil {
			return nil, fmt.Errorf("open local database: %w", err)
		}
		a.closers = append(a.closers, func() {
			if sqlDB, err := gdb.DB(); err == nil {
				sqlDB.Close()
			}
		})
		return local.New(service.NewPostService(gdb), service.NewContactService(gdb)), nil
	}

	return actor.NewClient(a.cfg.Server, actor.WithHTTPClient(&http.Client{Timeout: a.cfg.Timeout})), nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	_ = a.logger.Sync()
}
