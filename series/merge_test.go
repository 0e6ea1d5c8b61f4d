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

package series_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/purchasing-power/series"
)

var _ = Describe("Merger", func() {
	It("prefers the preferred source on overlapping dates", func() {
		preferred := series.Series{d("2021-01-01", 10)}
		fallback := series.Series{d("2021-01-01", 99), d("2021-01-02", 20)}

		res, err := series.Merge(preferred, fallback)
		Expect(err).To(BeNil())
		Expect(res).To(Equal(series.Series{d("2021-01-01", 10), d("2021-01-02", 20)}))
	})

	It("contains the union of dates in order", func() {
		preferred := series.Series{d("2021-01-02", 2), d("2021-01-04", 4), d("2021-01-06", 6)}
		fallback := series.Series{d("2020-12-31", 0.5), d("2021-01-03", 3), d("2021-01-04", 40), d("2021-01-07", 7)}

		res, err := series.Merge(preferred, fallback)
		Expect(err).To(BeNil())
		Expect(res).To(HaveLen(6))
		Expect(res.Validate()).To(Succeed())

		datum, ok := res.Get(d("2021-01-04", 0).Date)
		Expect(ok).To(BeTrue())
		Expect(datum.Price).To(Equal(4.0))
	})

	It("keeps the secondary price of the preferred datum", func() {
		res, err := series.Merge(series.Series{dd("2021-01-01", 10, 13)}, series.Series{dd("2021-01-01", 11, 15)})
		Expect(err).To(BeNil())
		Expect(*res[0].Secondary).To(Equal(13.0))
	})

	It("handles empty inputs", func() {
		s := series.Series{d("2021-01-01", 1)}

		res, err := series.Merge(series.Series{}, s)
		Expect(err).To(BeNil())
		Expect(res).To(Equal(s))

		res, err = series.Merge(s, nil)
		Expect(err).To(BeNil())
		Expect(res).To(Equal(s))
	})

	It("does not modify its inputs", func() {
		preferred := series.Series{d("2021-01-01", 10)}
		fallback := series.Series{d("2021-01-01", 99)}
		_, err := series.Merge(preferred, fallback)
		Expect(err).To(BeNil())
		Expect(fallback[0].Price).To(Equal(99.0))
	})

	It("refuses unsorted input", func() {
		_, err := series.Merge(series.Series{d("2021-01-02", 1), d("2021-01-01", 1)}, nil)
		Expect(err).To(MatchError(series.ErrUnsorted))

		_, err = series.Merge(nil, series.Series{d("2021-01-01", 1), d("2021-01-01", 1)})
		Expect(err).To(MatchError(series.ErrUnsorted))
	})
})
