package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/joacominatel/cosmoschema/internal/config"
	"github.com/joacominatel/cosmoschema/internal/database"
)

// Lifespan owns the database connection from startup until shutdown and
// carries it to every tool invocation.
type Lifespan struct {
	log    *slog.Logger
	driver database.Driver

	closeOnce sync.Once
	closeErr  error
}

// Open reads the connection string from cfg and connects driver. A missing
// connection string fails with *ErrConfig before the driver is touched.
func Open(ctx context.Context, log *slog.Logger, cfg *config.Config, driver database.Driver) (*Lifespan, error) {
	if cfg == nil || cfg.ConnectionString == "" {
		return nil, &ErrConfig{Cause: config.ErrMissingConnectionString}
	}
	if driver == nil {
		return nil, &ErrConfig{Cause: fmt.Errorf("driver is required")}
	}
	if log == nil {
		log = slog.Default()
	}

	l := &Lifespan{log: log, driver: driver}
	if err := driver.Connect(ctx, cfg.ConnectionString); err != nil {
		// Release anything the driver acquired before failing.
		_ = l.Close(ctx)
		return nil, &ErrDatabase{Op: OpConnect, Cause: err}
	}

	log.Info("lifespan: database connection opened", "database", driver.DatabaseName())
	return l, nil
}

// Driver returns the live connection. Callers do not own it.
func (l *Lifespan) Driver() database.Driver {
	return l.driver
}

// Close closes the connection. Only the first call reaches the driver; later
// calls return the first result.
func (l *Lifespan) Close(ctx context.Context) error {
	l.closeOnce.Do(func() {
		if err := l.driver.Close(ctx); err != nil {
			l.closeErr = &ErrDatabase{Op: OpClose, Cause: err}
			l.log.Error("lifespan: failed to close database connection", "error", err)
			return
		}
		l.log.Info("lifespan: database connection closed")
	})
	return l.closeErr
}

// Run opens a Lifespan, calls fn with it and closes it on every exit path,
// including a panic in fn. An error from fn takes precedence over a close error.
func Run(ctx context.Context, log *slog.Logger, cfg *config.Config, driver database.Driver, fn func(context.Context, *Lifespan) error) (err error) {
	l, err := Open(ctx, log, cfg, driver)
	if err != nil {
		return err
	}
	defer func() {
		// Shutdown must not be cut short by the caller's cancelled context.
		closeErr := l.Close(context.WithoutCancel(ctx))
		if err == nil {
			err = closeErr
		}
	}()

	return fn(ctx, l)
}
