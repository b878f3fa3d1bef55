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
	"fmt"
	"slices"
	"sync"
)

// hooks holds the lifecycle callbacks. Registration closes once the App
// has started.
type hooks struct {
	mu         sync.Mutex
	started    bool
	onStart    []func(context.Context) error // sequential, first error aborts
	onShutdown []func(context.Context)       // LIFO
	onStop     []func()                      // best effort
}

func (h *hooks) add(register func()) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return ErrHooksFrozen
	}
	register()
	return nil
}

// OnStart registers a hook that runs before the dispatcher accepts calls.
// Hooks run in registration order and the first error aborts the start.
//
//	a.OnStart(func(ctx context.Context) error {
//	    return store.Ping(ctx)
//	})
func (a *App) OnStart(fn func(context.Context) error) error {
	return a.hooks.add(func() { a.hooks.onStart = append(a.hooks.onStart, fn) })
}

// OnShutdown registers a hook that runs during graceful shutdown, after
// the dispatcher stopped taking calls. Hooks run in reverse order with a
// context bounded by the shutdown timeout.
func (a *App) OnShutdown(fn func(context.Context)) error {
	return a.hooks.add(func() { a.hooks.onShutdown = append(a.hooks.onShutdown, fn) })
}

// OnStop registers a hook that runs once the server has exited. Panics
// are recovered and logged.
func (a *App) OnStop(fn func()) error {
	return a.hooks.add(func() { a.hooks.onStop = append(a.hooks.onStop, fn) })
}

// Start runs the OnStart hooks and starts the dispatcher. Until Start is
// called every request is answered with 503. Serve calls Start itself.
func (a *App) Start(ctx context.Context) error {
	a.hooks.mu.Lock()
	if a.hooks.started {
		a.hooks.mu.Unlock()
		return ErrAlreadyStarted
	}
	a.hooks.started = true
	starts := slices.Clone(a.hooks.onStart)
	a.hooks.mu.Unlock()

	for i, hook := range starts {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("OnStart hook %d failed: %w", i, err)
		}
	}

	a.dispatcher.Start()
	a.logger.Logger().InfoContext(ctx, "dispatcher started",
		"routes", len(a.router.Routes()),
		"negotiate_content", a.dispatcher.NegotiateContent(),
	)
	return nil
}

// Stop stops the dispatcher, runs the OnShutdown hooks and flushes the
// metrics and tracing providers. It does not run the OnStop hooks.
func (a *App) Stop(ctx context.Context) {
	a.dispatcher.Stop()
	a.logger.Logger().InfoContext(ctx, "dispatcher stopped")

	a.hooks.mu.Lock()
	shutdowns := slices.Clone(a.hooks.onShutdown)
	a.hooks.mu.Unlock()
	for i := len(shutdowns) - 1; i >= 0; i-- {
		shutdowns[i](ctx)
	}

	a.shutdownObservability(ctx)
}

func (a *App) shutdownObservability(ctx context.Context) {
	if a.recorder != nil {
		if err := a.recorder.Shutdown(ctx); err != nil {
			a.logger.Logger().WarnContext(ctx, "metrics shutdown failed", "error", err)
		}
	}
	if err := a.tracer.Shutdown(ctx); err != nil {
		a.logger.Logger().WarnContext(ctx, "tracing shutdown failed", "error", err)
	}
}

func (a *App) runStopHooks() {
	a.hooks.mu.Lock()
	stops := slices.Clone(a.hooks.onStop)
	a.hooks.mu.Unlock()

	for _, hook := range stops {
		func() {
			defer func() {
				if r := recover(); r != nil {
					a.logger.Logger().Warn("OnStop hook panic", "error", r)
				}
			}()
			hook()
		}()
	}
}
