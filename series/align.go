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
	"sort"
	"strings"

	"github.com/penny-vault/purchasing-power/date"
)

// MaxNearestDays is the widest gap, in days, bridged by a nearest-date match
const MaxNearestDays = 30

// RatioMode selects how two prices are combined into a comparison value
type RatioMode int

const (
	// UnitsPerCurrency is A / B: units of B one unit of A buys
	UnitsPerCurrency RatioMode = iota
	// PricePerUnit is B / A: cost of one unit of B expressed in A
	PricePerUnit
)

// ParseRatioMode accepts "units-per-currency" / "units" and "price-per-unit" / "price"
func ParseRatioMode(s string) (RatioMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "units", "units-per-currency", "unitspercurrency":
		return UnitsPerCurrency, nil
	case "price", "price-per-unit", "priceperunit":
		return PricePerUnit, nil
	default:
		return UnitsPerCurrency, fmt.Errorf("unknown ratio mode %q", s)
	}
}

func (m RatioMode) String() string {
	if m == PricePerUnit {
		return "price-per-unit"
	}
	return "units-per-currency"
}

// Match records how an aligned point was paired
type Match int

const (
	ExactMatch Match = iota
	NearestMatch
)

func (m Match) String() string {
	if m == NearestMatch {
		return "nearest"
	}
	return "exact"
}

func (m Match) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Match) UnmarshalText(b []byte) error {
	switch string(b) {
	case "exact":
		*m = ExactMatch
	case "nearest":
		*m = NearestMatch
	default:
		return fmt.Errorf("unknown match %q", string(b))
	}
	return nil
}

// Point is one (x, value) comparison point. X is the number of days since the
// unix epoch of Date.
type Point struct {
	X       float64   `json:"x"`
	Date    date.Date `json:"date"`
	Matched date.Date `json:"matched"`
	Value   float64   `json:"value"`
	Match   Match     `json:"match"`
}

// AlignStats counts how the points of A were resolved
type AlignStats struct {
	Exact   int `json:"exact"`
	Nearest int `json:"nearest"`
	Dropped int `json:"dropped"`
}

// Align pairs every datum of a with a datum of b and computes the ratio
// selected by mode from their base prices. A date present in b is an exact
// match. Otherwise the closest date of b is used when it is at most
// MaxNearestDays away; when two dates of b are equally close the earlier one
// wins. Points of a with no date of b within range are dropped.
func Align(a, b Series, mode RatioMode) ([]Point, AlignStats, error) {
	var stats AlignStats

	if err := a.Validate(); err != nil {
		return nil, stats, fmt.Errorf("a: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, stats, fmt.Errorf("b: %w", err)
	}

	points := make([]Point, 0, len(a))
	for _, datum := range a {
		matched, match, ok := nearest(b, datum.Date)
		if !ok {
			stats.Dropped++
			continue
		}

		switch match {
		case ExactMatch:
			stats.Exact++
		case NearestMatch:
			stats.Nearest++
		}

		points = append(points, Point{
			X:       float64(datum.Date.DaysSinceEpoch()),
			Date:    datum.Date,
			Matched: matched.Date,
			Value:   ratio(datum.Price, matched.Price, mode),
			Match:   match,
		})
	}

	return points, stats, nil
}

// nearest finds the datum of s closest to on, within MaxNearestDays
func nearest(s Series, on date.Date) (Datum, Match, bool) {
	idx := sort.Search(len(s), func(i int) bool {
		return !s[i].Date.Before(on)
	})

	if idx < len(s) && s[idx].Date == on {
		return s[idx], ExactMatch, true
	}

	best := -1
	bestDist := 0
	// check the earlier neighbour first so it wins ties
	if idx > 0 {
		best = idx - 1
		bestDist = on.Sub(s[idx-1].Date)
	}
	if idx < len(s) {
		if dist := s[idx].Date.Sub(on); best == -1 || dist < bestDist {
			best = idx
			bestDist = dist
		}
	}

	if best == -1 || bestDist > MaxNearestDays {
		return Datum{}, NearestMatch, false
	}

	return s[best], NearestMatch, true
}

func ratio(a, b float64, mode RatioMode) float64 {
	if mode == PricePerUnit {
		return b / a
	}
	return a / b
}
