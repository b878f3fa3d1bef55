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


package app_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"rivaas.dev/resource/dispatch"
	"rivaas.dev/resource/representation"
)

// notes is an in-memory collection served at /notes/{id}, in English and
// French.
type notes struct {
	mu      sync.Mutex
	text    map[string]string
	version map[string]int
}

func newNotes() *notes {
	return &notes{
		text:    map[string]string{"1": "first"},
		version: map[string]int{"1": 1},
	}
}

// factory hands out one note per call.
func (n *notes) factory(_ context.Context, req *dispatch.Request) (dispatch.Resource, error) {
	return &note{id: req.Variables["id"], store: n}, nil
}

type note struct {
	id    string
	store *notes
}

func (n *note) Capabilities() dispatch.Capabilities { return nil }

func (n *note) Variants(context.Context, *dispatch.Request) ([]*representation.Variant, error) {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()
	if _, ok := n.store.text[n.id]; !ok {
		return nil, nil
	}
	version := n.store.version[n.id]

	variants := make([]*representation.Variant, 0, 2)
	for _, lang := range []string{"en", "fr"} {
		mt := representation.TextPlain
		tag := representation.NewTag(fmt.Sprintf("v%d-%s", version, lang), false)
		variants = append(variants, &representation.Variant{
			MediaType:    &mt,
			CharacterSet: "utf-8",
			Languages:    []representation.Language{representation.MustParseLanguage(lang)},
			Tag:          &tag,
			Identifier:   fmt.Sprintf("/notes/%s.%s", n.id, lang),
		})
	}
	return variants, nil
}

func (n *note) Get(_ context.Context, req *dispatch.Request) (dispatch.Result, error) {
	n.store.mu.Lock()
	text := n.store.text[n.id]
	n.store.mu.Unlock()

	body := fmt.Sprintf("%s [%s]", text, req.Variant.Languages[0])
	return dispatch.Result{Entity: &dispatch.Entity{Body: strings.NewReader(body)}}, nil
}

func (n *note) Put(_ context.Context, req *dispatch.Request) (dispatch.Result, error) {
	data, err := io.ReadAll(req.Entity.Body)
	if err != nil {
		return dispatch.Result{}, err
	}

	n.store.mu.Lock()
	defer n.store.mu.Unlock()
	_, existed := n.store.text[n.id]
	n.store.text[n.id] = string(data)
	n.store.version[n.id]++
	if !existed {
		return dispatch.Result{Status: http.StatusCreated, Redirect: "/notes/" + n.id}, nil
	}
	return dispatch.Result{Status: http.StatusNoContent}, nil
}

func (n *note) Delete(context.Context, *dispatch.Request) (dispatch.Result, error) {
	n.store.mu.Lock()
	defer n.store.mu.Unlock()
	delete(n.store.text, n.id)
	delete(n.store.version, n.id)
	return dispatch.Result{Status: http.StatusNoContent}, nil
}
