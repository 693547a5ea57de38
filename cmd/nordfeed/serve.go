package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pevans/nordfeed/server"
)

// shutdownTimeout bounds how long in-flight requests may finish on exit.
const shutdownTimeout = 30 * time.Second

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	FilterFlags `embed:""`
	FeedFlags   `embed:""`

	Addr string `default:":8080" env:"NORDFEED_ADDR" help:"Address to listen on"`
}

// Run serves feeds until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	defaults, err := deps.Options(c.FilterFlags)
	if err != nil {
		return err
	}

	feed, err := deps.Feed(c.FeedFlags)
	if err != nil {
		return err
	}

	api := server.NewAPIServer(deps.Lister, feed, defaults, deps.Logger)
	srv := &http.Server{
		Addr:    c.Addr,
		Handler: api.SetupRouter(),
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe()
	}()
	deps.Logger.Info("serving feeds", "addr", c.Addr)

	select {
	case <-deps.Ctx.Done():
		deps.Logger.Info("shutting down gracefully")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
