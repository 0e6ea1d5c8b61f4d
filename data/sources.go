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
	"github.com/penny-vault/purchasing-power/asset"
)

// DefaultRatePair is the Yahoo ticker of the USD to CAD exchange rate
const DefaultRatePair = "CAD=X"

// contracts quoted in US cents
const centsScale = 0.01

// YahooTickers maps assets to their Yahoo Finance symbol
var YahooTickers = map[asset.Asset]string{
	asset.Bitcoin:    "BTC-USD",
	asset.Gold:       "GC=F",
	asset.Silver:     "SI=F",
	asset.Oil:        "CL=F",
	asset.NaturalGas: "NG=F",
	asset.Copper:     "HG=F",
	asset.Wheat:      "ZW=F",
	asset.Corn:       "ZC=F",
	asset.Soybeans:   "ZS=F",
	asset.Coffee:     "KC=F",
	asset.Sugar:      "SB=F",
	asset.Cotton:     "CT=F",
	asset.Beef:       "LE=F",
	asset.Rice:       "ZR=F",
	asset.Lumber:     "LBS=F",
}

var yahooScale = map[asset.Asset]float64{
	asset.Wheat:    centsScale,
	asset.Corn:     centsScale,
	asset.Soybeans: centsScale,
	asset.Coffee:   centsScale,
	asset.Sugar:    centsScale,
	asset.Cotton:   centsScale,
	asset.Beef:     centsScale,
	asset.Rice:     centsScale,
	asset.Copper:   centsScale,
}

// YahooScale returns the factor converting a Yahoo quote for a into dollars
func YahooScale(a asset.Asset) float64 {
	if scale, ok := yahooScale[a]; ok {
		return scale
	}
	return 1.0
}

// DefaultSources wires the vendor providers into per-asset fallback chains.
// Yahoo is the primary source of every asset; Bitcoin falls back to
// CoinGecko and is extended into the past with the CoinDesk BPI.
func DefaultSources(yahoo, coinGecko, coinDesk Provider) (chains map[asset.Asset][]Source, history map[asset.Asset]Source) {
	chains = make(map[asset.Asset][]Source, len(YahooTickers))
	for a, ticker := range YahooTickers {
		chains[a] = []Source{{Provider: yahoo, Ticker: ticker, Scale: YahooScale(a)}}
	}

	chains[asset.Bitcoin] = append(chains[asset.Bitcoin], Source{Provider: coinGecko, Ticker: "bitcoin", Scale: 1.0})

	history = map[asset.Asset]Source{
		asset.Bitcoin: {Provider: coinDesk, Ticker: "BTC", Scale: 1.0},
	}

	return chains, history
}
