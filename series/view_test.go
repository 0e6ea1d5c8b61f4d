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

	"github.com/penny-vault/purchasing-power/asset"
	"github.com/penny-vault/purchasing-power/series"
)

var _ = Describe("Views", func() {
	Context("single series values", func() {
		s := series.Series{dd("2021-01-01", 4, 5), d("2021-01-02", 8)}

		It("returns the price in price-per-unit mode", func() {
			points := series.Values(s, series.PricePerUnit, asset.Base)
			Expect(points).To(HaveLen(2))
			Expect(points[1].Value).To(Equal(8.0))
		})

		It("returns the reciprocal in units-per-currency mode", func() {
			points := series.Values(s, series.UnitsPerCurrency, asset.Base)
			Expect(points[0].Value).To(Equal(0.25))
		})

		It("skips days without a secondary price", func() {
			points := series.Values(s, series.PricePerUnit, asset.Secondary)
			Expect(points).To(HaveLen(1))
			Expect(points[0].Value).To(Equal(5.0))
		})
	})

	Context("percent change", func() {
		points := []series.Point{
			{X: 1, Value: 50},
			{X: 2, Value: 100},
			{X: 3, Value: 150},
			{X: 4, Value: 80},
		}

		It("rebases on the first point at or after the start", func() {
			res := series.PercentChange(points, 1.5)
			Expect(res).To(HaveLen(3))
			Expect(res[0].Value).To(Equal(0.0))
			Expect(res[1].Value).To(BeNumerically("~", 50.0, 1e-9))
			Expect(res[2].Value).To(BeNumerically("~", -20.0, 1e-9))
		})

		It("does not modify its input", func() {
			series.PercentChange(points, 0)
			Expect(points[0].Value).To(Equal(50.0))
		})

		It("is empty when the start is past the data", func() {
			Expect(series.PercentChange(points, 10)).To(BeEmpty())
		})
	})

	Context("bounds", func() {
		It("pads the range by ten percent and includes zero", func() {
			lo, hi := series.Bounds([]series.Point{{Value: 10}, {Value: 90}}, []series.Point{{Value: -10}})
			Expect(lo).To(BeNumerically("~", -20.0, 1e-9))
			Expect(hi).To(BeNumerically("~", 100.0, 1e-9))
		})

		It("uses a fixed padding when there is no spread", func() {
			lo, hi := series.Bounds()
			Expect(lo).To(Equal(-5.0))
			Expect(hi).To(Equal(5.0))
		})
	})
})
