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

package series

import (
	"fmt"

	"github.com/penny-vault/purchasing-power/asset"
	"github.com/penny-vault/purchasing-power/date"
)

// IndexBase is the value of an index component priced exactly at its anchor
const IndexBase = 100.0

// floating point slack when comparing the accumulated weight against the gate
const weightTolerance = 1e-9

// Component is one weighted member of a composite index. Anchor and
// SecondaryAnchor are the reference prices, in the base and secondary
// currency, that map to IndexBase.
type Component struct {
	Asset           asset.Asset
	Weight          float64
	Anchor          float64
	SecondaryAnchor float64
}

// Index defines a weighted composite of component series. Components are
// accumulated in slice order so repeated builds produce identical output.
type Index struct {
	Asset      asset.Asset
	Components []Component
	// MinWeight is the fraction of weight that must be observed on a day
	// for the day to be emitted
	MinWeight float64
}

// ConsumerBasket approximates a household consumption basket. Weights sum to
// 0.80; the remainder is the untracked services share. Secondary anchors are
// the base anchors at a 1.30 exchange rate.
var ConsumerBasket = Index{
	Asset:     asset.ConsumerBasket,
	MinWeight: 0.5,
	Components: []Component{
		{Asset: asset.Oil, Weight: 0.15, Anchor: 75.0, SecondaryAnchor: 97.5},
		{Asset: asset.NaturalGas, Weight: 0.05, Anchor: 3.5, SecondaryAnchor: 4.55},
		{Asset: asset.Wheat, Weight: 0.08, Anchor: 6.5, SecondaryAnchor: 8.45},
		{Asset: asset.Corn, Weight: 0.05, Anchor: 5.0, SecondaryAnchor: 6.5},
		{Asset: asset.Beef, Weight: 0.10, Anchor: 1.4, SecondaryAnchor: 1.82},
		{Asset: asset.Coffee, Weight: 0.03, Anchor: 2.0, SecondaryAnchor: 2.6},
		{Asset: asset.Sugar, Weight: 0.02, Anchor: 0.21, SecondaryAnchor: 0.273},
		{Asset: asset.Cotton, Weight: 0.05, Anchor: 0.85, SecondaryAnchor: 1.105},
		{Asset: asset.Lumber, Weight: 0.07, Anchor: 450.0, SecondaryAnchor: 585.0},
		{Asset: asset.Gold, Weight: 0.05, Anchor: 1800.0, SecondaryAnchor: 2340.0},
		{Asset: asset.Silver, Weight: 0.02, Anchor: 25.0, SecondaryAnchor: 32.5},
		{Asset: asset.Copper, Weight: 0.03, Anchor: 4.3, SecondaryAnchor: 5.59},
		{Asset: asset.Soybeans, Weight: 0.05, Anchor: 12.5, SecondaryAnchor: 16.25},
		{Asset: asset.Rice, Weight: 0.05, Anchor: 17.0, SecondaryAnchor: 22.1},
	},
}

// Validate checks weights are in (0,1] and anchors are positive
func (idx Index) Validate() error {
	if len(idx.Components) == 0 {
		return fmt.Errorf("%w: no components", ErrInvalidIndex)
	}

	for _, c := range idx.Components {
		if !(c.Weight > 0 && c.Weight <= 1) {
			return fmt.Errorf("%w: %s weight %v outside (0,1]", ErrInvalidIndex, c.Asset, c.Weight)
		}
		if !validPrice(c.Anchor) || !validPrice(c.SecondaryAnchor) {
			return fmt.Errorf("%w: %s anchors must be positive", ErrInvalidIndex, c.Asset)
		}
	}

	return nil
}

// Build computes the composite series from the component series in m.
//
// For every date observed by any component, each component with a datum on
// that date contributes price / anchor * IndexBase scaled by its weight. The
// day is emitted only if the weight observed reaches MinWeight; the emitted
// value is the weighted mean, so a day on which every present component sits
// at its anchor is emitted as IndexBase.
//
// The secondary price is built the same way from secondary prices and
// secondary anchors. When the secondary weight misses the gate it falls back
// to price * rate for that day if rates has one, otherwise it is left unset.
//
// Components missing from m are skipped. If no day passes the gate an empty
// series is returned with ErrInsufficientData.
func (idx Index) Build(m Map, rates Rates) (Series, error) {
	if err := idx.Validate(); err != nil {
		return nil, err
	}

	type member struct {
		Component
		data Series
		pos  int
	}

	members := make([]*member, 0, len(idx.Components))
	for _, c := range idx.Components {
		s, ok := m[c.Asset]
		if !ok || len(s) == 0 {
			continue
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Asset, err)
		}
		members = append(members, &member{Component: c, data: s})
	}

	res := Series{}
	for {
		// next date is the smallest unconsumed date across all members
		var on date.Date
		found := false
		for _, mm := range members {
			if mm.pos < len(mm.data) && (!found || mm.data[mm.pos].Date.Before(on)) {
				on = mm.data[mm.pos].Date
				found = true
			}
		}
		if !found {
			break
		}

		var weightedSum, totalWeight float64
		var secWeightedSum, secTotalWeight float64
		for _, mm := range members {
			if mm.pos >= len(mm.data) || mm.data[mm.pos].Date != on {
				continue
			}

			d := mm.data[mm.pos]
			mm.pos++

			// accumulate price/anchor ratios; IndexBase is applied once
			// after renormalizing so a day at the anchors is exactly IndexBase
			weightedSum += d.Price / mm.Anchor * mm.Weight
			totalWeight += mm.Weight

			if sec, ok := d.SecondaryPrice(); ok {
				secWeightedSum += sec / mm.SecondaryAnchor * mm.Weight
				secTotalWeight += mm.Weight
			}
		}

		if totalWeight+weightTolerance < idx.MinWeight {
			continue
		}

		out := Datum{Date: on, Price: weightedSum / totalWeight * IndexBase}
		if secTotalWeight+weightTolerance >= idx.MinWeight {
			sec := secWeightedSum / secTotalWeight * IndexBase
			out.Secondary = &sec
		} else if rate, ok := rates.For(on); ok {
			sec := out.Price * rate
			out.Secondary = &sec
		}

		res = append(res, out)
	}

	if len(res) == 0 {
		return res, fmt.Errorf("%s: %w: no date reached weight %v", idx.Asset, ErrInsufficientData, idx.MinWeight)
	}

	return res, nil
}
