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
	"fmt"
	"os"

	"rivaas.dev/resource/config/codec"
)

// File loads a document from disk, or from memory when built with
// [NewContent].
type File struct {
	path    string
	data    []byte
	decoder codec.Decoder
}

// NewFile reads path on every Load.
func NewFile(path string, decoder codec.Decoder) *File {
	return &File{path: path, decoder: decoder}
}

// NewContent decodes data on every Load.
func NewContent(data []byte, decoder codec.Decoder) *File {
	return &File{data: data, decoder: decoder}
}

// Load decodes the document. An empty document yields an empty map.
func (f *File) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := f.data
	if f.path != "" {
		var err error
		if data, err = os.ReadFile(f.path); err != nil {
			return nil, fmt.Errorf("read %s: %w", f.path, err)
		}
	}

	values := map[string]any{}
	if len(data) == 0 {
		return values, nil
	}
	if err := f.decoder.Decode(data, &values); err != nil {
		if f.path != "" {
			return nil, fmt.Errorf("decode %s: %w", f.path, err)
		}
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return values, nil
}

// String identifies the source in errors and logs.
func (f *File) String() string {
	if f.path != "" {
		return "file:" + f.path
	}
	return "content"
}
