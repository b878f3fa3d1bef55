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

package source

import (
	"context"
	"os"
	"strings"

	"rivaas.dev/resource/config/codec"
)

// Env loads the process environment variables that carry a prefix. The
// prefix is stripped and the rest of the name is split on
// [codec.EnvSeparator]:
//
//	RESOURCE_ROUTING__REQUIRED_SCORE=0.6 -> routing.required_score
type Env struct {
	prefix  string
	environ func() []string
}

// NewEnv returns a source reading os.Environ.
func NewEnv(prefix string) *Env {
	return &Env{prefix: prefix, environ: os.Environ}
}

// NewEnvFrom reads from a fixed KEY=value list instead of the process.
func NewEnvFrom(prefix string, environ []string) *Env {
	return &Env{prefix: prefix, environ: func() []string { return environ }}
}

func (e *Env) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, kv := range e.environ() {
		rest, ok := strings.CutPrefix(kv, e.prefix)
		if !ok {
			continue
		}
		b.WriteString(rest)
		b.WriteByte('\n')
	}

	values := map[string]any{}
	if err := (codec.Env{}).Decode([]byte(b.String()), &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (e *Env) String() string { return "env:" + e.prefix }
