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
	"io"
	"net/http"
	"strings"

	"rivaas.dev/resource/conditions"
	"rivaas.dev/resource/representation"
)

// Entity is a representation travelling with a request or an outcome.
// Body is nil when only the metadata is known.
type Entity struct {
	Variant *representation.Variant
	Body    io.Reader
}

// Available reports whether the entity carries a body.
func (e *Entity) Available() bool {
	return e != nil && e.Body != nil && e.Body != http.NoBody
}

// NewListingEntity returns a text/uri-list entity with one reference per line.
func NewListingEntity(refs []string) *Entity {
	mt := representation.TextURIList
	var b strings.Builder
	for _, ref := range refs {
		b.WriteString(ref)
		b.WriteString("\r\n")
	}
	return &Entity{
		Variant: &representation.Variant{MediaType: &mt},
		Body:    strings.NewReader(b.String()),
	}
}

// Request is the transport independent view of an inbound call. A Request
// belongs to a single call and is never shared.
type Request struct {
	Method string

	// Path is the part of the path not consumed by routing yet, BasePath
	// the part already consumed.
	Path     string
	BasePath string

	Preferences representation.Preferences
	Conditions  conditions.Conditions

	// Entity is the request body, nil when none was sent.
	Entity *Entity

	// Header holds the raw request headers.
	Header http.Header

	// Variables holds values extracted from route templates.
	Variables map[string]string

	// Variant is the representation selected by negotiation. It is set
	// before GET and HEAD operations run and is nil otherwise.
	Variant *representation.Variant
}

// Result is what a target operation reports back. A zero Status means
// 200 OK.
type Result struct {
	Status   int
	Redirect string
	Entity   *Entity
}

// Resource is a dispatch target.
type Resource interface {
	// Capabilities returns the methods the resource supports.
	Capabilities() Capabilities

	// Variants lists the representations the resource can produce for
	// the request. It is consulted for GET and HEAD, and for PUT and
	// DELETE when the request is conditional.
	Variants(ctx context.Context, req *Request) ([]*representation.Variant, error)
}

// Getter is implemented by resources supporting GET. HEAD uses it too.
type Getter interface {
	Get(ctx context.Context, req *Request) (Result, error)
}

// Poster is implemented by resources supporting POST.
type Poster interface {
	Post(ctx context.Context, req *Request) (Result, error)
}

// Putter is implemented by resources supporting PUT.
type Putter interface {
	Put(ctx context.Context, req *Request) (Result, error)
}

// Deleter is implemented by resources supporting DELETE.
type Deleter interface {
	Delete(ctx context.Context, req *Request) (Result, error)
}

// Resolver finds the target of a request. A nil Resource with a nil error
// means that there is no target.
type Resolver interface {
	FindTarget(ctx context.Context, req *Request) (Resource, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, req *Request) (Resource, error)

// FindTarget calls f.
func (f ResolverFunc) FindTarget(ctx context.Context, req *Request) (Resource, error) {
	return f(ctx, req)
}
