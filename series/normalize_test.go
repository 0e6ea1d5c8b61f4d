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
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/purchasing-power/date"
	"github.com/penny-vault/purchasing-power/series"
)

var _ = Describe("Normalizer", func() {
	Context("when rescaling", func() {
		It("is a no-op for a factor of one", func() {
			s := series.Series{d("2021-01-01", 650.25), dd("2021-01-02", 651.5, 880.0)}
			res, err := series.Rescale(s, 1.0)
			Expect(err).To(BeNil())
			Expect(res).To(Equal(s))
		})

		It("converts cents to dollars", func() {
			s := series.Series{d("2021-01-01", 650), d("2021-01-02", 700)}
			res, err := series.Rescale(s, 0.01)
			Expect(err).To(BeNil())
			Expect(res[0].Price).To(BeNumerically("~", 6.5, 1e-12))
			Expect(res[1].Price).To(BeNumerically("~", 7.0, 1e-12))
			Expect(res[0].Secondary).To(BeNil())
		})

		It("does not modify its input", func() {
			s := series.Series{d("2021-01-01", 650)}
			_, err := series.Rescale(s, 0.01)
			Expect(err).To(BeNil())
			Expect(s[0].Price).To(Equal(650.0))
		})

		It("passes an empty series through", func() {
			res, err := series.Rescale(series.Series{}, 0.01)
			Expect(err).To(BeNil())
			Expect(res).To(BeEmpty())
		})

		DescribeTable("rejects invalid results",
			func(s series.Series, factor float64) {
				_, err := series.Rescale(s, factor)
				Expect(err).To(MatchError(series.ErrDataQuality))
			},
			Entry("negative price", series.Series{d("2021-01-01", -5)}, 1.0),
			Entry("NaN price", series.Series{d("2021-01-01", math.NaN())}, 1.0),
			Entry("infinite price", series.Series{d("2021-01-01", math.Inf(1))}, 1.0),
			Entry("overflow", series.Series{d("2021-01-01", math.MaxFloat64)}, 10.0),
			Entry("negative factor", series.Series{d("2021-01-01", 5)}, -1.0),
			Entry("NaN factor", series.Series{d("2021-01-01", 5)}, math.NaN()),
		)
	})

	Context("when converting to the secondary currency", func() {
		It("multiplies by the rate of the day", func() {
			s := series.Series{d("2021-01-01", 100), d("2021-01-02", 200)}
			rates := series.Rates{
				date.MustParse("2021-01-01"): 1.25,
				date.MustParse("2021-01-02"): 1.30,
			}
			res, err := series.Convert(s, rates, series.DefaultFallbackRate)
			Expect(err).To(BeNil())
			Expect(*res[0].Secondary).To(BeNumerically("~", 125.0, 1e-9))
			Expect(*res[1].Secondary).To(BeNumerically("~", 260.0, 1e-9))
			Expect(res[1].Price).To(Equal(200.0))
		})

		It("uses the fallback rate on days without a rate", func() {
			s := series.Series{d("2021-01-01", 100), d("2021-01-02", 200)}
			rates := series.Rates{date.MustParse("2021-01-01"): 1.25}
			res, err := series.Convert(s, rates, series.DefaultFallbackRate)
			Expect(err).To(BeNil())
			Expect(res).To(HaveLen(2))
			Expect(*res[1].Secondary).To(BeNumerically("~", 270.0, 1e-9))
		})

		It("uses the fallback rate when there is no rate table", func() {
			res, err := series.Convert(series.Series{d("2021-01-01", 100)}, nil, 1.35)
			Expect(err).To(BeNil())
			Expect(*res[0].Secondary).To(BeNumerically("~", 135.0, 1e-9))
		})

		It("rejects an invalid fallback rate", func() {
			_, err := series.Convert(series.Series{d("2021-01-01", 100)}, nil, 0)
			Expect(err).To(MatchError(series.ErrDataQuality))
		})

		It("skips invalid rates when building a table", func() {
			rates := series.RatesFromSeries(series.Series{d("2021-01-01", 1.3), d("2021-01-02", math.NaN())})
			Expect(rates).To(HaveLen(1))
		})
	})
})
