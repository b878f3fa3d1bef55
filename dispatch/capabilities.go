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

package dispatch

import (
	"context"
	"slices"

	"github.com/samber/lo"
)

// Capabilities describes what a bound target supports.
type Capabilities interface {
	// Allowed reports whether method is allowed. declared is false when
	// the target neither declares a check nor has a handler for method.
	Allowed(method Method) (allowed, declared bool)

	// Methods returns every allowed method.
	Methods() []Method

	// Invoke runs the handler for method. It returns ErrCapabilityAbsent
	// when there is none.
	Invoke(ctx context.Context, method Method, req *Request) (Result, error)
}

// Check reports whether a method is currently allowed on a target.
type Check[T any] func(target T) bool

// Handler runs a method on a target.
type Handler[T any] func(ctx context.Context, target T, req *Request) (Result, error)

type entry[T any] struct {
	check   Check[T]
	handler Handler[T]
}

// Table maps method names to checks and handlers for one target type. It
// is built once during setup and bound to each target instance.
//
// Methods without an explicit check follow these defaults:
//
//   - HEAD is allowed when GET is
//   - OPTIONS is always allowed
//   - GET, POST, PUT and DELETE are allowed when the target implements
//     Getter, Poster, Putter or Deleter, or a handler is registered
//   - any other method is allowed when a handler is registered
//
// A Table must not be modified after the first Bind.
type Table[T any] struct {
	entries map[Method]*entry[T]
	extra   []Method
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{entries: make(map[Method]*entry[T])}
}

func (t *Table[T]) entry(method string) *entry[T] {
	m := ParseMethod(method)
	e, ok := t.entries[m]
	if !ok {
		e = &entry[T]{}
		t.entries[m] = e
		if !m.IsStandard() {
			t.extra = append(t.extra, m)
		}
	}
	return e
}

// Allow registers the capability check for method.
func (t *Table[T]) Allow(method string, check Check[T]) *Table[T] {
	t.entry(method).check = check
	return t
}

// Handle registers the handler for method.
func (t *Table[T]) Handle(method string, handler Handler[T]) *Table[T] {
	t.entry(method).handler = handler
	return t
}

// Bind returns the capabilities of target.
func (t *Table[T]) Bind(target T) Capabilities {
	return &bound[T]{table: t, target: target}
}

// DefaultCapabilities returns capabilities derived only from the operation
// interfaces target implements.
func DefaultCapabilities(target any) Capabilities {
	return NewTable[any]().Bind(target)
}

type bound[T any] struct {
	table  *Table[T]
	target T
}

func (b *bound[T]) Allowed(method Method) (allowed, declared bool) {
	e := b.table.entries[method]
	if e != nil && e.check != nil {
		return e.check(b.target), true
	}

	switch method {
	case MethodHead:
		if e != nil && e.handler != nil {
			return true, true
		}
		return b.Allowed(MethodGet)
	case MethodOptions:
		return true, true
	}

	if e != nil && e.handler != nil {
		return true, true
	}
	if b.implements(method) {
		return true, true
	}
	return false, false
}

func (b *bound[T]) implements(method Method) bool {
	var ok bool
	switch method {
	case MethodGet:
		_, ok = any(b.target).(Getter)
	case MethodPost:
		_, ok = any(b.target).(Poster)
	case MethodPut:
		_, ok = any(b.target).(Putter)
	case MethodDelete:
		_, ok = any(b.target).(Deleter)
	}
	return ok
}

func (b *bound[T]) Methods() []Method {
	candidates := slices.Concat(standardMethods, b.table.extra)
	return lo.Filter(candidates, func(m Method, _ int) bool {
		allowed, _ := b.Allowed(m)
		return allowed
	})
}

func (b *bound[T]) Invoke(ctx context.Context, method Method, req *Request) (Result, error) {
	if e := b.table.entries[method]; e != nil && e.handler != nil {
		return e.handler(ctx, b.target, req)
	}

	switch method {
	case MethodGet:
		if g, ok := any(b.target).(Getter); ok {
			return g.Get(ctx, req)
		}
	case MethodHead:
		return b.Invoke(ctx, MethodGet, req)
	case MethodPost:
		if p, ok := any(b.target).(Poster); ok {
			return p.Post(ctx, req)
		}
	case MethodPut:
		if p, ok := any(b.target).(Putter); ok {
			return p.Put(ctx, req)
		}
	case MethodDelete:
		if d, ok := any(b.target).(Deleter); ok {
			return d.Delete(ctx, req)
		}
	}

	return Result{}, ErrCapabilityAbsent
}
