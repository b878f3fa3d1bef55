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

package httpbridge

import (
	"io"
	"net/http"
	"strings"

	"github.com/vfaronov/httpheader"

	"rivaas.dev/resource/dispatch"
	"rivaas.dev/resource/representation"
)

// WriteOutcome writes an outcome that needs no error formatting:
// dispatched calls, not-modified responses and variant listings. It
// reports false, without touching w, for any other outcome.
func WriteOutcome(w http.ResponseWriter, r *http.Request, o dispatch.Outcome) (bool, error) {
	switch {
	case o.Kind == dispatch.KindNotModified:
		writeCommonHeaders(w.Header(), o)
		writeValidators(w.Header(), o.Variant)
		writeNotModified(w)
		return true, nil
	case o.Kind == dispatch.KindDispatched,
		o.Kind == dispatch.KindMultipleChoices && o.Entity != nil,
		o.Kind == dispatch.KindNotAcceptable && o.Entity != nil:
		writeCommonHeaders(w.Header(), o)
		return true, writeEntity(w, r, o)
	default:
		return false, nil
	}
}

func writeCommonHeaders(h http.Header, o dispatch.Outcome) {
	if vary := o.Dimensions.Headers(); len(vary) > 0 {
		h.Set("Vary", strings.Join(vary, ", "))
	}
	if len(o.AllowedMethods) > 0 {
		httpheader.SetAllow(h, methodNames(o.AllowedMethods))
	}
	if o.Redirect != "" {
		h.Set("Location", o.Redirect)
	}
}

func writeEntity(w http.ResponseWriter, r *http.Request, o dispatch.Outcome) error {
	status := o.Status
	if status == 0 {
		status = http.StatusOK
	}

	meta := o.Variant
	if o.Entity != nil && o.Entity.Variant != nil {
		meta = o.Entity.Variant
	}
	writeMetadata(w.Header(), meta)
	if o.Kind == dispatch.KindDispatched {
		writeValidators(w.Header(), meta)
	}

	if !bodyAllowed(r.Method, status) || !o.Entity.Available() {
		w.WriteHeader(status)
		closeBody(o.Entity)
		return nil
	}

	w.WriteHeader(status)
	_, err := io.Copy(w, o.Entity.Body)
	closeBody(o.Entity)
	return err
}

func writeMetadata(h http.Header, v *representation.Variant) {
	if v == nil {
		return
	}
	if v.MediaType != nil {
		ct := v.MediaType.String()
		if _, ok := v.MediaType.Param("charset"); !ok && v.CharacterSet != "" {
			ct += "; charset=" + v.CharacterSet
		}
		h.Set("Content-Type", ct)
	}
	if len(v.Languages) > 0 {
		langs := make([]string, len(v.Languages))
		for i, l := range v.Languages {
			langs[i] = l.String()
		}
		h.Set("Content-Language", strings.Join(langs, ", "))
	}
	if len(v.Encodings) > 0 {
		h.Set("Content-Encoding", strings.Join(v.Encodings, ", "))
	}
}

func writeValidators(h http.Header, v *representation.Variant) {
	if v == nil {
		return
	}
	if v.Tag != nil && !v.Tag.IsAny() {
		h.Set("ETag", v.Tag.String())
	}
	if v.HasModifiedAt() {
		h.Set("Last-Modified", v.ModifiedAt.UTC().Format(http.TimeFormat))
	}
}

// writeNotModified drops representation metadata that must not be sent
// with a 304. Last-Modified is kept only when there is no ETag.
func writeNotModified(w http.ResponseWriter) {
	h := w.Header()
	for _, name := range []string{"Content-Type", "Content-Length", "Content-Language", "Content-Encoding"} {
		h.Del(name)
	}
	if h.Get("ETag") != "" {
		h.Del("Last-Modified")
	}
	w.WriteHeader(http.StatusNotModified)
}

func bodyAllowed(method string, status int) bool {
	if method == http.MethodHead {
		return false
	}
	return status != http.StatusNoContent && status != http.StatusNotModified && status >= http.StatusOK
}

func closeBody(e *dispatch.Entity) {
	if e == nil || e.Body == nil {
		return
	}
	if c, ok := e.Body.(io.Closer); ok {
		_ = c.Close()
	}
}
