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

import "time"

// Variant describes one representation a resource can produce.
//
// A nil MediaType is compatible with every media type preference. An empty
// Languages slice means the variant is language neutral. A zero ModifiedAt
// means the modification date is unknown.
type Variant struct {
	MediaType    *MediaType
	Languages    []Language
	CharacterSet string
	Encodings    []string
	Tag          *Tag
	ModifiedAt   time.Time

	// Identifier is the URI under which this variant can be fetched
	// directly. It is used in multiple-choices and not-acceptable listings.
	Identifier string
}

// HasModifiedAt reports whether the modification date is known.
func (v *Variant) HasModifiedAt() bool {
	return v != nil && !v.ModifiedAt.IsZero()
}

// Clone returns a deep copy of the variant.
func (v *Variant) Clone() *Variant {
	if v == nil {
		return nil
	}
	c := *v
	if v.MediaType != nil {
		mt := *v.MediaType
		mt.Params = append([]Param(nil), v.MediaType.Params...)
		c.MediaType = &mt
	}
	if v.Languages != nil {
		c.Languages = make([]Language, len(v.Languages))
		for i, l := range v.Languages {
			c.Languages[i] = Language{Primary: l.Primary, SubTags: append([]string(nil), l.SubTags...)}
		}
	}
	c.Encodings = append([]string(nil), v.Encodings...)
	if v.Tag != nil {
		t := *v.Tag
		c.Tag = &t
	}
	return &c
}
