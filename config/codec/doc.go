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

// Package codec turns settings documents into generic maps.
//
// A codec is registered under a [Type] and looked up by the config package
// when a source is built. YAML, TOML, JSON and environment variable
// listings are available out of the box:
//
//	dec, err := codec.Lookup(codec.TypeYAML)
//	if err != nil {
//	    return err
//	}
//	var m map[string]any
//	err = dec.Decode(data, &m)
//
// Additional formats can be plugged in with [Register].
package codec
