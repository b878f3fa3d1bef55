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
	"net/http"
	"strings"
	"sync/atomic"

	"rivaas.dev/resource/representation"
)

// document is a test double supporting every standard operation plus a
// PURGE extension method.
type document struct {
	readOnly    bool
	variants    []*representation.Variant
	variantsErr error
	opErr       error
	result      Result

	variantCalls atomic.Int32
	getCalls     atomic.Int32
	postCalls    atomic.Int32
	putCalls     atomic.Int32
	deleteCalls  atomic.Int32
	purgeCalls   atomic.Int32

	lastVariant atomic.Pointer[representation.Variant]
}

var documentTable = NewTable[*document]().
	Allow(http.MethodPut, func(d *document) bool { return !d.readOnly }).
	Allow(http.MethodDelete, func(d *document) bool { return !d.readOnly }).
	Allow("PATCH", func(*document) bool { return true }).
	Handle("PURGE", func(_ context.Context, d *document, _ *Request) (Result, error) {
		d.purgeCalls.Add(1)
		return Result{Status: http.StatusNoContent}, nil
	})

func (d *document) Capabilities() Capabilities {
	return documentTable.Bind(d)
}

func (d *document) Variants(context.Context, *Request) ([]*representation.Variant, error) {
	d.variantCalls.Add(1)
	return d.variants, d.variantsErr
}

func (d *document) Get(_ context.Context, req *Request) (Result, error) {
	d.getCalls.Add(1)
	d.lastVariant.Store(req.Variant)
	if d.opErr != nil {
		return Result{}, d.opErr
	}
	if d.result.Status != 0 || d.result.Entity != nil {
		return d.result, nil
	}
	return Result{Entity: &Entity{Body: strings.NewReader("hello")}}, nil
}

func (d *document) Post(context.Context, *Request) (Result, error) {
	d.postCalls.Add(1)
	return Result{Status: http.StatusCreated, Redirect: "/documents/2"}, d.opErr
}

func (d *document) Put(context.Context, *Request) (Result, error) {
	d.putCalls.Add(1)
	return Result{Status: http.StatusNoContent}, d.opErr
}

func (d *document) Delete(context.Context, *Request) (Result, error) {
	d.deleteCalls.Add(1)
	return Result{Status: http.StatusNoContent}, d.opErr
}

// readOnlyDocument only implements GET and relies on default capabilities.
type readOnlyDocument struct {
	variants []*representation.Variant
}

func (r *readOnlyDocument) Capabilities() Capabilities { return nil }

func (r *readOnlyDocument) Variants(context.Context, *Request) ([]*representation.Variant, error) {
	return r.variants, nil
}

func (r *readOnlyDocument) Get(context.Context, *Request) (Result, error) {
	return Result{}, nil
}

func newVariant(mt, lang, id string) *representation.Variant {
	v := &representation.Variant{Identifier: id}
	if mt != "" {
		parsed := representation.MustParseMediaType(mt)
		v.MediaType = &parsed
	}
	if lang != "" {
		v.Languages = []representation.Language{representation.MustParseLanguage(lang)}
	}
	return v
}

func withTag(v *representation.Variant, tag string) *representation.Variant {
	t, err := representation.ParseTag(tag)
	if err != nil {
		panic(err)
	}
	v.Tag = &t
	return v
}

func mustTags(ss ...string) []representation.Tag {
	out := make([]representation.Tag, len(ss))
	for i, s := range ss {
		t, err := representation.ParseTag(s)
		if err != nil {
			panic(err)
		}
		out[i] = t
	}
	return out
}

func body() *Entity {
	return &Entity{Body: strings.NewReader("payload")}
}

func resolverFor(r Resource) Resolver {
	return ResolverFunc(func(context.Context, *Request) (Resource, error) {
		return r, nil
	})
}
