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

package routing

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"rivaas.dev/resource/score"
)

// Mode selects which accepted route wins when several match.
type Mode uint8

const (
	// ModeFirst picks the first attached route scoring above the threshold.
	ModeFirst Mode = iota
	// ModeBest picks the highest scoring route; earlier routes win ties.
	ModeBest
	// ModeLast picks the last attached route scoring above the threshold.
	ModeLast
)

// ParseMode parses "first", "best" or "last".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return ModeFirst, nil
	case "best":
		return ModeBest, nil
	case "last":
		return ModeLast, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeBest:
		return "best"
	case ModeLast:
		return "last"
	default:
		return "first"
	}
}

// Route binds a template to a target.
type Route[T any] struct {
	template *Template
	target   T
}

// Template returns the route's compiled template.
func (r *Route[T]) Template() *Template {
	return r.template
}

// Target returns the value attached with the template.
func (r *Route[T]) Target() T {
	return r.target
}

// Score scores the route against the remaining path.
func (r *Route[T]) Score(remaining string, required float64) float64 {
	return score.Route(remaining, r.template, required)
}

// Match is an accepted route together with the values extracted from the
// path.
type Match[T any] struct {
	Route *Route[T]
	Score float64

	// Variables maps template variable names to their values.
	Variables map[string]string

	// MatchedLength is the number of path characters the template consumed.
	MatchedLength int

	// Remaining is the unconsumed rest of the path, for nested routing.
	Remaining string
}

// Option configures a Router.
type Option func(*config)

type config struct {
	requiredScore float64
	mode          Mode
	matchMode     MatchMode
}

// WithRequiredScore sets the score a route must exceed to be accepted.
// The default is 0.5.
func WithRequiredScore(required float64) Option {
	return func(c *config) {
		c.requiredScore = required
	}
}

// WithMode sets the routing mode. The default is ModeFirst.
func WithMode(mode Mode) Option {
	return func(c *config) {
		c.mode = mode
	}
}

// WithDefaultMatchMode sets the match mode of templates compiled by Attach.
// The default is MatchStartsWith.
func WithDefaultMatchMode(mode MatchMode) Option {
	return func(c *config) {
		c.matchMode = mode
	}
}

// Router ranks attached routes against a request path.
//
// Routes are attached during setup. The first call to Next freezes the
// router; later Attach calls fail with ErrRouterFrozen. After that the
// router is read-only and safe for concurrent use.
type Router[T any] struct {
	cfg    config
	mu     sync.Mutex
	frozen atomic.Bool
	routes []*Route[T]
}

// New creates a router.
func New[T any](opts ...Option) (*Router[T], error) {
	cfg := config{requiredScore: score.DefaultRequired}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.requiredScore < 0 || cfg.requiredScore > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequiredScore, cfg.requiredScore)
	}
	return &Router[T]{cfg: cfg}, nil
}

// MustNew is like New but panics on error.
func MustNew[T any](opts ...Option) *Router[T] {
	r, err := New[T](opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// RequiredScore returns the acceptance threshold.
func (r *Router[T]) RequiredScore() float64 {
	return r.cfg.requiredScore
}

// Mode returns the routing mode.
func (r *Router[T]) Mode() Mode {
	return r.cfg.mode
}

// Attach compiles pattern and appends a route for target.
func (r *Router[T]) Attach(pattern string, target T, opts ...TemplateOption) (*Route[T], error) {
	opts = append([]TemplateOption{WithMatchMode(r.cfg.matchMode)}, opts...)
	tmpl, err := Compile(pattern, opts...)
	if err != nil {
		return nil, err
	}
	return r.AttachTemplate(tmpl, target)
}

// AttachTemplate appends a route for an already compiled template.
func (r *Router[T]) AttachTemplate(tmpl *Template, target T) (*Route[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		return nil, ErrRouterFrozen
	}
	route := &Route[T]{template: tmpl, target: target}
	r.routes = append(r.routes, route)
	return route, nil
}

// Routes returns the attached routes in order.
func (r *Router[T]) Routes() []*Route[T] {
	r.freeze()
	out := make([]*Route[T], len(r.routes))
	copy(out, r.routes)
	return out
}

func (r *Router[T]) freeze() {
	if r.frozen.Load() {
		return
	}
	r.mu.Lock()
	r.frozen.Store(true)
	r.mu.Unlock()
}

// Next selects the route for the remaining path according to the routing
// mode. Only routes scoring strictly above the required score are
// accepted. The boolean is false when no route is accepted.
func (r *Router[T]) Next(remaining string) (Match[T], bool) {
	r.freeze()

	var (
		best      *Route[T]
		bestScore float64
	)
	for _, route := range r.routes {
		s := route.Score(remaining, r.cfg.requiredScore)
		if s <= r.cfg.requiredScore {
			continue
		}

		switch r.cfg.mode {
		case ModeFirst:
			if best == nil {
				best, bestScore = route, s
			}
		case ModeBest:
			if best == nil || s > bestScore {
				best, bestScore = route, s
			}
		case ModeLast:
			best, bestScore = route, s
		}

		if r.cfg.mode == ModeFirst && best != nil {
			break
		}
	}

	if best == nil {
		return Match[T]{}, false
	}

	vars, length := best.template.Parse(remaining)
	return Match[T]{
		Route:         best,
		Score:         bestScore,
		Variables:     vars,
		MatchedLength: length,
		Remaining:     remaining[length:],
	}, true
}
