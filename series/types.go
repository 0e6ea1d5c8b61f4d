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
	"math"
	"sort"

	"github.com/penny-vault/purchasing-power/asset"
	"github.com/penny-vault/purchasing-power/date"
)

// Quote is a raw (date, close) observation as returned by a vendor, in vendor units
type Quote struct {
	Date  date.Date
	Close float64
}

// Datum is the price of one asset on one calendar day. Price is in the base
// currency; Secondary is nil until a secondary currency price is derived.
type Datum struct {
	Date      date.Date `json:"date"`
	Price     float64   `json:"price"`
	Secondary *float64  `json:"secondary,omitempty"`
}

// SecondaryPrice returns the secondary currency price if one is set
func (d Datum) SecondaryPrice() (float64, bool) {
	if d.Secondary == nil {
		return 0, false
	}
	return *d.Secondary, true
}

// PriceIn returns the price in the requested currency
func (d Datum) PriceIn(c asset.Currency) (float64, bool) {
	if c == asset.Secondary {
		return d.SecondaryPrice()
	}
	return d.Price, true
}

// Series is an ordered sequence of prices for one asset. Functions in this
// package never mutate a Series they are given; they return a new one.
type Series []Datum

// New builds a series from data that is already sorted with unique dates
func New(data ...Datum) (Series, error) {
	s := Series(data)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// FromQuotes converts raw vendor quotes into a series. Quotes are sorted by
// date and duplicate dates are resolved last-write-wins in input order.
// Quotes with a non-finite or non-positive close are dropped; the number of
// dropped quotes is returned so callers can report it.
func FromQuotes(quotes []Quote) (Series, int) {
	sorted := make([]Quote, len(quotes))
	copy(sorted, quotes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	dropped := 0
	res := make(Series, 0, len(sorted))
	for _, q := range sorted {
		if !validPrice(q.Close) {
			dropped++
			continue
		}

		d := Datum{Date: q.Date, Price: q.Close}
		if n := len(res); n > 0 && res[n-1].Date == q.Date {
			res[n-1] = d
			continue
		}
		res = append(res, d)
	}

	return res, dropped
}

// Validate checks that dates are strictly ascending
func (s Series) Validate() error {
	for idx := 1; idx < len(s); idx++ {
		if !s[idx-1].Date.Before(s[idx].Date) {
			return fmt.Errorf("%w: %s follows %s", ErrUnsorted, s[idx].Date, s[idx-1].Date)
		}
	}
	return nil
}

// Len returns the number of observations in the series
func (s Series) Len() int {
	return len(s)
}

// Start returns the first date in the series
func (s Series) Start() date.Date {
	if len(s) == 0 {
		return date.Date{}
	}
	return s[0].Date
}

// End returns the last date in the series
func (s Series) End() date.Date {
	if len(s) == 0 {
		return date.Date{}
	}
	return s[len(s)-1].Date
}

// Dates returns the date index of the series
func (s Series) Dates() []date.Date {
	dates := make([]date.Date, len(s))
	for idx, d := range s {
		dates[idx] = d.Date
	}
	return dates
}

// Get returns the datum on the requested date
func (s Series) Get(on date.Date) (Datum, bool) {
	idx := s.search(on)
	if idx < len(s) && s[idx].Date == on {
		return s[idx], true
	}
	return Datum{}, false
}

// Trim returns the subset of s with begin <= date <= end. Zero dates leave
// that side of the range open.
func (s Series) Trim(begin, end date.Date) Series {
	lo := 0
	if !begin.IsZero() {
		lo = s.search(begin)
	}

	hi := len(s)
	if !end.IsZero() {
		hi = sort.Search(len(s), func(i int) bool {
			return s[i].Date.After(end)
		})
	}

	if lo >= hi {
		return Series{}
	}
	return s[lo:hi:hi]
}

// search returns the index of the first datum on or after on
func (s Series) search(on date.Date) int {
	return sort.Search(len(s), func(i int) bool {
		return !s[i].Date.Before(on)
	})
}

// Map holds the series of every available asset for one refresh cycle
type Map map[asset.Asset]Series

// Get returns the series for a, or an empty series if it is unavailable
func (m Map) Get(a asset.Asset) Series {
	if s, ok := m[a]; ok {
		return s
	}
	return Series{}
}

// Assets returns the assets present in the map in enumeration order
func (m Map) Assets() []asset.Asset {
	res := make([]asset.Asset, 0, len(m))
	for a := range m {
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Rates is an exchange rate table keyed by date
type Rates map[date.Date]float64

// RatesFromSeries builds a rate table from the base price of s. Invalid rates
// are skipped.
func RatesFromSeries(s Series) Rates {
	rates := make(Rates, len(s))
	for _, d := range s {
		if validPrice(d.Price) {
			rates[d.Date] = d.Price
		}
	}
	return rates
}

// For returns the rate on the given date
func (r Rates) For(on date.Date) (float64, bool) {
	rate, ok := r[on]
	return rate, ok
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}
