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

package asset_test

import (
	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/purchasing-power/asset"
)

var _ = Describe("Asset", func() {
	It("enumerates one cryptocurrency, fourteen commodities and the basket", func() {
		Expect(asset.All()).To(HaveLen(16))
		Expect(asset.Commodities()).To(HaveLen(14))
		Expect(asset.Commodities()).NotTo(ContainElement(asset.Bitcoin))
		Expect(asset.Commodities()).NotTo(ContainElement(asset.ConsumerBasket))
	})

	It("has a name, base name and unit for every asset", func() {
		for _, a := range asset.All() {
			Expect(a.Name()).NotTo(BeEmpty(), a.String())
			Expect(a.BaseName()).NotTo(BeEmpty(), a.String())
			Expect(a.Unit()).NotTo(BeEmpty(), a.String())
			Expect(a.Key()).NotTo(BeEmpty(), a.String())
		}
	})

	DescribeTable("parsing",
		func(input string, expected asset.Asset) {
			a, err := asset.Parse(input)
			Expect(err).To(BeNil())
			Expect(a).To(Equal(expected))
		},
		Entry("by key", "natural-gas", asset.NaturalGas),
		Entry("by identifier", "NaturalGas", asset.NaturalGas),
		Entry("by base name", "Live Cattle", asset.Beef),
		Entry("case insensitive", "GOLD", asset.Gold),
		Entry("basket", "consumer-basket", asset.ConsumerBasket),
	)

	It("rejects unknown assets", func() {
		_, err := asset.Parse("unobtainium")
		Expect(err).To(MatchError(asset.ErrUnknownAsset))
	})

	It("encodes as its key in json", func() {
		b, err := json.Marshal(struct {
			Asset asset.Asset `json:"asset"`
		}{asset.Gold})
		Expect(err).To(BeNil())
		Expect(string(b)).To(Equal(`{"asset":"gold"}`))
	})

	It("formats prices with the unit label", func() {
		Expect(asset.Gold.FormatPrice(1800, asset.Base)).To(Equal("$1,800.00 / oz"))
		Expect(asset.ConsumerBasket.FormatPrice(101.234, asset.Base)).To(Equal("101.23 pts"))
	})

	It("parses currencies", func() {
		c, err := asset.ParseCurrency("cad")
		Expect(err).To(BeNil())
		Expect(c).To(Equal(asset.Secondary))
		c, err = asset.ParseCurrency("")
		Expect(err).To(BeNil())
		Expect(c).To(Equal(asset.Base))
	})
})
