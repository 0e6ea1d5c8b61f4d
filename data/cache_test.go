// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package data_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/purchasing-power/data"
)

var _ = Describe("ResponseCache", func() {
	var (
		cache *data.ResponseCache
		now   time.Time
	)

	BeforeEach(func() {
		var err error
		cache, err = data.NewResponseCache(2)
		Expect(err).To(BeNil())

		now = time.Date(2021, 1, 4, 12, 0, 0, 0, time.UTC)
		cache.SetClock(func() time.Time { return now })
	})

	It("should round trip a response body", func() {
		body := []byte(`{"chart":{"result":[]}}`)
		Expect(cache.Set("https://example.com/a", body)).To(Succeed())

		got, ok := cache.Get("https://example.com/a")
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(body))
	})

	It("should serve an empty response body", func() {
		Expect(cache.Set("https://example.com/empty", []byte{})).To(Succeed())

		got, ok := cache.Get("https://example.com/empty")
		Expect(ok).To(BeTrue())
		Expect(got).To(BeEmpty())
		Expect(cache.Len()).To(Equal(1))
	})

	It("should miss urls that were never stored", func() {
		_, ok := cache.Get("https://example.com/missing")
		Expect(ok).To(BeFalse())
	})

	It("should expire entries when the day changes", func() {
		Expect(cache.Set("https://example.com/a", []byte("hello"))).To(Succeed())

		now = now.Add(11 * time.Hour)
		_, ok := cache.Get("https://example.com/a")
		Expect(ok).To(BeTrue())

		now = now.Add(2 * time.Hour)
		_, ok = cache.Get("https://example.com/a")
		Expect(ok).To(BeFalse())
	})

	It("should evict the least recently used entry", func() {
		Expect(cache.Set("https://example.com/a", []byte("a"))).To(Succeed())
		Expect(cache.Set("https://example.com/b", []byte("b"))).To(Succeed())
		Expect(cache.Set("https://example.com/c", []byte("c"))).To(Succeed())

		Expect(cache.Len()).To(Equal(2))
		_, ok := cache.Get("https://example.com/a")
		Expect(ok).To(BeFalse())
	})

	It("should reject a non-positive size", func() {
		_, err := data.NewResponseCache(0)
		Expect(err).NotTo(BeNil())
	})
})
