// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const readHeaderTimeout = 10 * time.Second

// Serve listens on addr and serves the App until ctx is cancelled, then
// shuts down gracefully. An empty addr uses the configured address.
// Signal handling is left to the caller:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	err := a.Serve(ctx, "")
func (a *App) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = a.address
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("app: listen %s: %w", addr, err)
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener. The listener is closed
// when ServeListener returns.
func (a *App) ServeListener(ctx context.Context, ln net.Listener) error {
	if err := a.Start(ctx); err != nil {
		_ = ln.Close()
		return err
	}

	server := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           a.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(a.logger.Logger().Handler(), slog.LevelWarn),
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Logger().InfoContext(ctx, "server listening", "address", server.Addr)
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		a.Stop(context.Background())
		a.runStopHooks()
		return err
	case <-ctx.Done():
		a.logger.Logger().InfoContext(ctx, "server shutting down", "reason", ctx.Err())
	}

	// ctx is already cancelled; shutdown gets its own deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	a.dispatcher.Stop()
	serr := server.Shutdown(shutdownCtx)
	a.Stop(shutdownCtx)
	a.runStopHooks()

	if serr != nil {
		return fmt.Errorf("server forced to shutdown: %w", serr)
	}
	a.logger.Logger().InfoContext(shutdownCtx, "server exited")
	return nil
}
