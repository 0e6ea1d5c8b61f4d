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

	"github.com/penny-vault/purchasing-power/date"
	"github.com/penny-vault/purchasing-power/series"
)

var _ = Describe("Aligner", func() {
	It("matches both sides of a gap to the nearest date", func() {
		a := series.Series{d("2021-01-01", 30000), d("2021-01-05", 32000)}
		b := series.Series{d("2021-01-03", 1800)}

		points, stats, err := series.Align(a, b, series.UnitsPerCurrency)
		Expect(err).To(BeNil())
		Expect(points).To(HaveLen(2))
		Expect(stats).To(Equal(series.AlignStats{Nearest: 2}))

		for _, p := range points {
			Expect(p.Match).To(Equal(series.NearestMatch))
			Expect(p.Matched).To(Equal(date.MustParse("2021-01-03")))
		}
		Expect(points[0].Value).To(BeNumerically("~", 30000.0/1800.0, 1e-9))
		Expect(points[1].Value).To(BeNumerically("~", 32000.0/1800.0, 1e-9))
	})

	It("prefers an exact match over a nearer neighbour", func() {
		a := series.Series{d("2021-01-02", 10)}
		b := series.Series{d("2021-01-01", 1), d("2021-01-02", 2), d("2021-01-03", 3)}

		points, stats, err := series.Align(a, b, series.UnitsPerCurrency)
		Expect(err).To(BeNil())
		Expect(stats.Exact).To(Equal(1))
		Expect(points[0].Match).To(Equal(series.ExactMatch))
		Expect(points[0].Value).To(Equal(5.0))
	})

	It("drops points farther than the window", func() {
		a := series.Series{d("2021-01-01", 10), d("2021-03-15", 10)}
		b := series.Series{d("2021-01-31", 2)}

		points, stats, err := series.Align(a, b, series.UnitsPerCurrency)
		Expect(err).To(BeNil())
		Expect(points).To(HaveLen(1))
		Expect(points[0].Date).To(Equal(date.MustParse("2021-01-01")))
		Expect(stats).To(Equal(series.AlignStats{Nearest: 1, Dropped: 1}))
	})

	It("accepts a gap of exactly thirty days", func() {
		a := series.Series{d("2021-01-01", 10)}
		b := series.Series{d("2021-01-31", 2)}
		points, _, err := series.Align(a, b, series.UnitsPerCurrency)
		Expect(err).To(BeNil())
		Expect(points).To(HaveLen(1))

		b = series.Series{d("2021-02-01", 2)}
		points, _, err = series.Align(a, b, series.UnitsPerCurrency)
		Expect(err).To(BeNil())
		Expect(points).To(BeEmpty())
	})

	It("breaks ties in favour of the earlier date", func() {
		a := series.Series{d("2021-01-03", 10)}
		b := series.Series{d("2021-01-01", 2), d("2021-01-05", 5)}

		points, _, err := series.Align(a, b, series.UnitsPerCurrency)
		Expect(err).To(BeNil())
		Expect(points[0].Matched).To(Equal(date.MustParse("2021-01-01")))
		Expect(points[0].Value).To(Equal(5.0))
	})

	It("uses the reciprocal in price-per-unit mode", func() {
		a := series.Series{d("2021-01-01", 40000)}
		b := series.Series{d("2021-01-01", 2000)}

		points, _, err := series.Align(a, b, series.PricePerUnit)
		Expect(err).To(BeNil())
		Expect(points[0].Value).To(BeNumerically("~", 0.05, 1e-12))
	})

	It("sets x to days since the unix epoch", func() {
		a := series.Series{d("2021-01-01", 1)}
		points, _, err := series.Align(a, a, series.UnitsPerCurrency)
		Expect(err).To(BeNil())
		Expect(points[0].X).To(Equal(18628.0))
	})

	It("keeps every emitted point within the window", func() {
		a := daily("2020-01-01", 400, func(i int) float64 { return float64(100 + i) })
		b := series.Series{}
		for on := date.MustParse("2020-01-01"); on.Before(date.MustParse("2021-03-01")); on = on.Add(45) {
			b = append(b, series.Datum{Date: on, Price: 10})
		}

		points, stats, err := series.Align(a, b, series.UnitsPerCurrency)
		Expect(err).To(BeNil())
		Expect(stats.Exact + stats.Nearest + stats.Dropped).To(Equal(len(a)))
		Expect(len(points)).To(Equal(stats.Exact + stats.Nearest))
		for _, p := range points {
			gap := p.Date.Sub(p.Matched)
			if gap < 0 {
				gap = -gap
			}
			Expect(gap).To(BeNumerically("<=", series.MaxNearestDays))
		}
	})

	It("returns nothing for an empty comparison series", func() {
		points, stats, err := series.Align(series.Series{d("2021-01-01", 1)}, series.Series{}, series.UnitsPerCurrency)
		Expect(err).To(BeNil())
		Expect(points).To(BeEmpty())
		Expect(stats.Dropped).To(Equal(1))
	})

	It("refuses unsorted input", func() {
		_, _, err := series.Align(series.Series{d("2021-01-02", 1), d("2021-01-01", 1)}, nil, series.UnitsPerCurrency)
		Expect(err).To(MatchError(series.ErrUnsorted))
	})

	DescribeTable("parsing ratio modes",
		func(input string, expected series.RatioMode) {
			mode, err := series.ParseRatioMode(input)
			Expect(err).To(BeNil())
			Expect(mode).To(Equal(expected))
		},
		Entry("default", "", series.UnitsPerCurrency),
		Entry("units", "units", series.UnitsPerCurrency),
		Entry("price", "price-per-unit", series.PricePerUnit),
	)
})
