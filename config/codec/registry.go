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

package codec

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownType is returned by [Lookup] for unregistered formats.
var ErrUnknownType = errors.New("codec: unknown type")

var (
	mu     sync.RWMutex
	codecs = map[Type]Codec{}
)

// Register makes c available under t, replacing any previous registration.
func Register(t Type, c Codec) {
	if c == nil {
		panic("codec: Register called with nil codec for " + string(t))
	}
	mu.Lock()
	codecs[t] = c
	mu.Unlock()
}

// Lookup returns the codec registered under t.
func Lookup(t Type) (Codec, error) {
	mu.RLock()
	c, ok := codecs[t]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return c, nil
}

// Types lists the registered formats in lexical order.
func Types() []Type {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Type, 0, len(codecs))
	for t := range codecs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
