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

package date_test

import (
	"time"

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/purchasing-power/date"
)

var _ = Describe("Date", func() {
	Context("when constructing dates", func() {
		It("normalizes overflowing days", func() {
			Expect(date.New(2021, time.January, 32)).To(Equal(date.New(2021, time.February, 1)))
		})

		It("parses lenient input", func() {
			d, err := date.Parse("2021-1-5")
			Expect(err).To(BeNil())
			Expect(d.String()).To(Equal("2021-01-05"))
		})

		It("rejects garbage", func() {
			_, err := date.Parse("yesterday")
			Expect(err).To(HaveOccurred())
		})

		It("uses the UTC calendar day of a timestamp", func() {
			// 2021-01-01T23:30:00-05:00 is already 2021-01-02 in UTC
			loc := time.FixedZone("EST", -5*60*60)
			Expect(date.FromTime(time.Date(2021, 1, 1, 23, 30, 0, 0, loc))).To(Equal(date.MustParse("2021-01-02")))
			Expect(date.FromUnix(1609459200)).To(Equal(date.MustParse("2021-01-01")))
		})
	})

	DescribeTable("day arithmetic",
		func(a, b string, expected int) {
			Expect(date.MustParse(a).Sub(date.MustParse(b))).To(Equal(expected))
		},
		Entry("same day", "2021-01-01", "2021-01-01", 0),
		Entry("forward", "2021-01-05", "2021-01-03", 2),
		Entry("backward", "2021-01-01", "2021-01-03", -2),
		Entry("across a leap day", "2020-03-01", "2020-02-28", 2),
		Entry("across years", "2022-01-01", "2021-01-01", 365),
	)

	It("counts days since the unix epoch", func() {
		Expect(date.MustParse("1970-01-01").DaysSinceEpoch()).To(Equal(int64(0)))
		Expect(date.MustParse("2021-01-01").DaysSinceEpoch()).To(Equal(int64(18628)))
	})

	It("orders dates", func() {
		a := date.MustParse("2021-01-01")
		b := date.MustParse("2021-02-01")
		Expect(a.Before(b)).To(BeTrue())
		Expect(b.After(a)).To(BeTrue())
		Expect(a.Compare(a)).To(Equal(0))
		Expect(a.Add(31)).To(Equal(b))
	})

	It("round trips through json", func() {
		d := date.MustParse("2021-07-04")
		b, err := json.Marshal(d)
		Expect(err).To(BeNil())
		Expect(string(b)).To(Equal(`"2021-07-04"`))

		var out date.Date
		Expect(json.Unmarshal(b, &out)).To(Succeed())
		Expect(out).To(Equal(d))
	})
})
