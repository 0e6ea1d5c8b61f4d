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
	"github.com/penny-vault/purchasing-power/asset"
)

// boundsPadding is the fraction of the value range added above and below
const boundsPadding = 0.1

// flatPadding is used when every value is identical
const flatPadding = 5.0

// Values converts a single series into points expressed in currency c.
// PricePerUnit yields the price, UnitsPerCurrency its reciprocal. Days without
// a price in c are skipped.
func Values(s Series, mode RatioMode, c asset.Currency) []Point {
	points := make([]Point, 0, len(s))
	for _, d := range s {
		price, ok := d.PriceIn(c)
		if !ok {
			continue
		}

		value := price
		if mode == UnitsPerCurrency {
			value = 1 / price
		}

		points = append(points, Point{
			X:       float64(d.Date.DaysSinceEpoch()),
			Date:    d.Date,
			Matched: d.Date,
			Value:   value,
			Match:   ExactMatch,
		})
	}
	return points
}

// PercentChange rebases points to the percentage change from the first point
// whose X is at or after from. Points before that are discarded.
func PercentChange(points []Point, from float64) []Point {
	start := -1
	for idx, p := range points {
		if p.X >= from {
			start = idx
			break
		}
	}

	if start == -1 || points[start].Value == 0 {
		return []Point{}
	}

	base := points[start].Value
	res := make([]Point, 0, len(points)-start)
	for _, p := range points[start:] {
		p.Value = (p.Value/base - 1) * 100
		res = append(res, p)
	}
	return res
}

// Bounds returns a y-axis range covering zero and every value of every set,
// padded by 10% of the spread
func Bounds(sets ...[]Point) (lo, hi float64) {
	for _, points := range sets {
		for _, p := range points {
			if p.Value < lo {
				lo = p.Value
			}
			if p.Value > hi {
				hi = p.Value
			}
		}
	}

	if pad := (hi - lo) * boundsPadding; pad > 0 {
		return lo - pad, hi + pad
	}
	return lo - flatPadding, hi + flatPadding
}
