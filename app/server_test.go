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


package app_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/resource/app"
	"rivaas.dev/resource/config"
	"rivaas.dev/resource/config/codec"
	"rivaas.dev/resource/logging"
)

var _ = Describe("App Integration", func() {
	var (
		a      *app.App
		ln     net.Listener
		ctx    context.Context
		cancel context.CancelFunc
		served chan error
		base   string
	)

	serve := func() {
		ch := make(chan error, 1)
		served = ch
		srv, c, l := a, ctx, ln
		go func() { ch <- srv.ServeListener(c, l) }()
	}

	get := func(path, language string) (int, string, http.Header) {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, base+path, nil)
		Expect(err).NotTo(HaveOccurred())
		if language != "" {
			req.Header.Set("Accept-Language", language)
		}
		resp, err := http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		return resp.StatusCode, string(body), resp.Header
	}

	BeforeEach(func() {
		var err error
		ln, err = net.Listen("tcp", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())
		base = "http://" + ln.Addr().String()
		ctx, cancel = context.WithCancel(context.Background())
	})

	AfterEach(func() {
		cancel()
	})

	Describe("Serving", func() {
		BeforeEach(func() {
			a = app.MustNew(
				app.WithLogger(logging.MustNew(logging.WithOutput(io.Discard))),
				app.WithShutdownTimeout(2*time.Second),
			)
			a.MustHandle("/notes/{id}", newNotes().factory)
			serve()
		})

		It("negotiates representations over a real listener", func() {
			status, body, header := get("/notes/1", "fr")
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(Equal("first [fr]"))
			Expect(header.Get("Content-Language")).To(Equal("fr"))
		})

		It("exposes dispatch metrics", func() {
			status, _, _ := get("/notes/1", "")
			Expect(status).To(Equal(http.StatusOK))

			status, body, _ := get("/metrics", "")
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(ContainSubstring("resource_dispatch_calls"))
		})

		It("shuts down gracefully when the context is cancelled", func() {
			status, _, _ := get("/notes/1", "")
			Expect(status).To(Equal(http.StatusOK))

			cancel()
			Eventually(served).WithTimeout(3 * time.Second).Should(Receive(BeNil()))
			Expect(a.Dispatcher().IsStarted()).To(BeFalse())
		})
	})

	Describe("Lifecycle hooks", func() {
		It("runs start, shutdown and stop hooks in order", func() {
			a = app.MustNew(
				app.WithLogger(logging.MustNew(logging.WithOutput(io.Discard))),
				app.WithoutMetrics(),
			)

			var (
				mu    sync.Mutex
				order []string
			)
			record := func(s string) {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, s)
			}

			Expect(a.OnStart(func(context.Context) error {
				record("start")
				return nil
			})).To(Succeed())
			Expect(a.OnShutdown(func(context.Context) { record("shutdown-1") })).To(Succeed())
			Expect(a.OnShutdown(func(context.Context) { record("shutdown-2") })).To(Succeed())
			Expect(a.OnStop(func() { panic("stop hook failure") })).To(Succeed())
			Expect(a.OnStop(func() { record("stop") })).To(Succeed())

			serve()
			Eventually(a.Dispatcher().IsStarted).Should(BeTrue())

			cancel()
			Eventually(served).WithTimeout(3 * time.Second).Should(Receive(BeNil()))

			mu.Lock()
			defer mu.Unlock()
			Expect(order).To(Equal([]string{"start", "shutdown-2", "shutdown-1", "stop"}))
		})
	})

	Describe("Settings", func() {
		It("builds an app from a configuration document", func() {
			s, err := app.LoadSettings(context.Background(), config.WithContent([]byte(strings.Join([]string{
				`negotiate_content = false`,
				`[logging]`,
				`level = "error"`,
				`[metrics]`,
				`provider = "none"`,
			}, "\n")), codec.TypeTOML))
			Expect(err).NotTo(HaveOccurred())

			a, err = app.FromSettings(s, app.WithLogger(logging.MustNew(logging.WithOutput(io.Discard))))
			Expect(err).NotTo(HaveOccurred())
			a.MustHandle("/notes/{id}", newNotes().factory)
			serve()

			// Two variants without negotiation: the client has to choose.
			status, body, header := get("/notes/1", "fr")
			Expect(status).To(Equal(http.StatusMultipleChoices))
			Expect(header.Get("Content-Type")).To(Equal("text/uri-list"))
			Expect(body).To(Equal("/notes/1.en\r\n/notes/1.fr\r\n"))

			status, _, _ = get("/metrics", "")
			Expect(status).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Startup failures", func() {
		It("returns the hook error and closes the listener", func() {
			a = app.MustNew(
				app.WithLogger(logging.MustNew(logging.WithOutput(io.Discard))),
				app.WithoutMetrics(),
			)
			Expect(a.OnStart(func(context.Context) error { return context.DeadlineExceeded })).To(Succeed())

			err := a.ServeListener(ctx, ln)
			Expect(err).To(MatchError(context.DeadlineExceeded))

			_, err = net.DialTimeout("tcp", ln.Addr().String(), time.Second)
			Expect(err).To(HaveOccurred())
		})
	})
})
