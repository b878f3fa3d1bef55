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

package representation

import "errors"

var (
	// ErrEmptyMediaType indicates that a media type string was empty.
	ErrEmptyMediaType = errors.New("media type is empty")

	// ErrInvalidMediaType indicates that a media type is not of the form main/sub.
	ErrInvalidMediaType = errors.New("media type must be of the form main/sub")

	// ErrEmptyLanguage indicates that a language tag was empty.
	ErrEmptyLanguage = errors.New("language tag is empty")

	// ErrInvalidLanguage indicates that a language tag contains an empty sub-tag.
	ErrInvalidLanguage = errors.New("language tag contains an empty sub-tag")

	// ErrInvalidTag indicates that an entity tag is not a quoted string.
	ErrInvalidTag = errors.New("entity tag must be a quoted string")
)
