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

package data

import (
	"context"

	"github.com/penny-vault/purchasing-power/date"
	"github.com/penny-vault/purchasing-power/series"
)

// Provider fetches daily closing prices, in vendor units, for a ticker
type Provider interface {
	Name() string
	Fetch(ctx context.Context, ticker string, begin, end date.Date) ([]series.Quote, error)
}

// ExchangeRateProvider fetches daily exchange rates for a currency pair
type ExchangeRateProvider interface {
	Name() string
	FetchExchangeRate(ctx context.Context, pair string, begin, end date.Date) ([]series.Quote, error)
}

// Source is a provider ticker for one asset. Scale converts the vendor quote
// to the base currency unit, e.g. 0.01 for contracts quoted in cents.
type Source struct {
	Provider Provider
	Ticker   string
	Scale    float64
}

// RateSource is where the exchange rate series is loaded from
type RateSource struct {
	Provider ExchangeRateProvider
	Pair     string
}

// inRange filters quotes to begin <= date <= end
func inRange(quotes []series.Quote, begin, end date.Date) []series.Quote {
	res := make([]series.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.Date.Before(begin) || q.Date.After(end) {
			continue
		}
		res = append(res, q)
	}
	return res
}
