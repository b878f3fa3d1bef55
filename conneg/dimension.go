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

package conneg

import (
	"strings"

	"github.com/samber/lo"

	"rivaas.dev/resource/representation"
)

// Dimensions is a set of negotiation axes along which variants differ.
// It tells caches which request headers influenced the selection.
type Dimensions uint8

// Negotiation dimensions.
const (
	DimensionLanguage Dimensions = 1 << iota
	DimensionMediaType
	DimensionCharacterSet
	DimensionEncoding
)

type dimensionHeader struct {
	dim    Dimensions
	header string
}

var dimensionHeaders = []dimensionHeader{
	{DimensionMediaType, "Accept"},
	{DimensionCharacterSet, "Accept-Charset"},
	{DimensionEncoding, "Accept-Encoding"},
	{DimensionLanguage, "Accept-Language"},
}

// Has reports whether d contains every dimension in other.
func (d Dimensions) Has(other Dimensions) bool {
	return d&other == other
}

// Headers returns the request header names matching d, in a stable order,
// suitable for a Vary response header.
func (d Dimensions) Headers() []string {
	return lo.FilterMap(dimensionHeaders, func(h dimensionHeader, _ int) (string, bool) {
		return h.header, d.Has(h.dim)
	})
}

// String joins the header names with ", ".
func (d Dimensions) String() string {
	return strings.Join(d.Headers(), ", ")
}

// DimensionsOf returns the dimensions declared by at least one variant.
func DimensionsOf(variants []*representation.Variant) Dimensions {
	var d Dimensions
	for _, v := range variants {
		if v == nil {
			continue
		}
		if len(v.Languages) > 0 {
			d |= DimensionLanguage
		}
		if v.MediaType != nil {
			d |= DimensionMediaType
		}
		if v.CharacterSet != "" {
			d |= DimensionCharacterSet
		}
		if len(v.Encodings) > 0 {
			d |= DimensionEncoding
		}
	}
	return d
}

// Listing returns the identifiers of the variants that have one, in order.
// Dispatchers use it for multiple-choices and not-acceptable bodies.
func Listing(variants []*representation.Variant) []string {
	return lo.FilterMap(variants, func(v *representation.Variant, _ int) (string, bool) {
		if v == nil {
			return "", false
		}
		return v.Identifier, v.Identifier != ""
	})
}
