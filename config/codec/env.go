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
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// TypeEnv reads KEY=value listings, one per line.
const TypeEnv Type = "env"

// EnvSeparator splits a variable name into nested keys. A single
// underscore stays part of the key, so SERVER__SHUTDOWN_TIMEOUT maps to
// server.shutdown_timeout.
const EnvSeparator = "__"

var errEnvEncode = errors.New("codec: env listings are read-only")

func init() { Register(TypeEnv, Env{}) }

// Env decodes environment listings into nested maps. Keys are lower-cased,
// values are kept as strings and blank or malformed lines are skipped.
type Env struct{}

func (Env) Encode(any) ([]byte, error) { return nil, errEnvEncode }

func (Env) Decode(data []byte, v any) error {
	ptr, ok := v.(*map[string]any)
	if !ok {
		return fmt.Errorf("codec: env decodes into *map[string]any, got %T", v)
	}

	out := make(map[string]any)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		name, value, found := strings.Cut(sc.Text(), "=")
		if !found {
			continue
		}
		path := splitEnvName(name)
		if len(path) == 0 {
			continue
		}

		node := out
		for _, key := range path[:len(path)-1] {
			child, isMap := node[key].(map[string]any)
			if !isMap {
				child = make(map[string]any)
				node[key] = child
			}
			node = child
		}
		node[path[len(path)-1]] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return err
	}

	*ptr = out
	return nil
}

func splitEnvName(name string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	var path []string
	for _, part := range strings.Split(name, EnvSeparator) {
		part = strings.Trim(part, "_")
		if part != "" {
			path = append(path, part)
		}
	}
	return path
}
