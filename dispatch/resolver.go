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

	"rivaas.dev/resource/routing"
)

// Factory creates the resource for a routed request. It runs once per
// call, after the route variables have been stored on the request.
type Factory func(ctx context.Context, req *Request) (Resource, error)

// Singleton returns a factory that always hands out r.
func Singleton(r Resource) Factory {
	return func(context.Context, *Request) (Resource, error) {
		return r, nil
	}
}

// RouterResolver resolves targets through a route table.
type RouterResolver struct {
	router *routing.Router[Factory]
}

// NewRouterResolver returns a resolver backed by router.
func NewRouterResolver(router *routing.Router[Factory]) *RouterResolver {
	return &RouterResolver{router: router}
}

// FindTarget matches the remaining request path. On a match the template
// variables are merged into req.Variables and the matched prefix moves from
// req.Path to req.BasePath.
func (r *RouterResolver) FindTarget(ctx context.Context, req *Request) (Resource, error) {
	m, ok := r.router.Next(req.Path)
	if !ok {
		return nil, nil
	}

	if req.Variables == nil {
		req.Variables = make(map[string]string, len(m.Variables))
	}
	for k, v := range m.Variables {
		req.Variables[k] = v
	}
	req.BasePath += req.Path[:m.MatchedLength]
	req.Path = m.Remaining

	return m.Route.Target()(ctx, req)
}
