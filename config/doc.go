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

// Package config loads layered settings and binds them to a struct.
//
// Sources are merged in registration order, later sources overriding
// earlier ones. Keys are case-insensitive and addressed with dots:
//
//	var s Settings
//	cfg := config.MustNew(
//	    config.WithFile("resource.yaml"),
//	    config.WithEnv("RESOURCE_"),
//	    config.WithBinding(&s),
//	)
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//
// # Binding
//
// A bound struct is decoded with mapstructure using the "config" tag.
// Fields may carry a "default" tag applied before decoding and a
// "validate" tag checked with go-playground/validator once decoding
// succeeds. A struct implementing [Validator] is checked last.
//
// # Validation
//
// [WithJSONSchema] checks the merged map before binding and
// [WithValidator] runs arbitrary checks on it. Failures are reported as
// *[Error] naming the stage that rejected the settings.
//
// # Access
//
// Values can also be read without binding, through the typed getters or
// the generic [Get], [GetOr] and [GetE]:
//
//	timeout := config.GetOr(cfg, "server.shutdown_timeout", 10*time.Second)
package config
