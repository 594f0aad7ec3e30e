// Package bootstrap runs a long-lived process and closes its resources on exit.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const DefaultShutdownTimeout = 10 * time.Second

// App runs a process and calls its shutdown hooks in reverse registration order when it stops.
type App struct {
	mu              sync.Mutex
	hooks           []func(ctx context.Context) error
	shutdownTimeout time.Duration
}

func New() *App {
	return &App{shutdownTimeout: DefaultShutdownTimeout}
}

// AddShutdownHook registers fn to run when the app stops. Safe to call from inside run.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run calls run until it returns or the process receives SIGINT or SIGTERM.
// The hooks run in both cases; after a signal, Run also waits for run to return
// within the shutdown timeout. The errors of run and of the hooks are joined.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	var runErr error
	finished := false
	select {
	case runErr = <-errCh:
		finished = true
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	shutdownErr := a.shutdown(shutdownCtx)
	if !finished {
		select {
		case runErr = <-errCh:
		case <-shutdownCtx.Done():
			runErr = fmt.Errorf("wait for the process to stop: %w", shutdownCtx.Err())
		}
	}
	return errors.Join(runErr, shutdownErr)
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		if err := a.hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.hooks = nil
	return errors.Join(errs...)
}
