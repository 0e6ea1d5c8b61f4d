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

package asset

import (
	"errors"
	"fmt"
	"strings"
)

// Asset is one tracked instrument, commodity, or the synthetic consumer basket
type Asset int

const (
	Bitcoin Asset = iota
	Gold
	Silver
	Oil
	NaturalGas
	Copper
	Wheat
	Corn
	Soybeans
	Coffee
	Sugar
	Cotton
	Beef
	Rice
	Lumber
	ConsumerBasket
)

var (
	ErrUnknownAsset = errors.New("unknown asset")
)

type info struct {
	key      string
	name     string
	baseName string
	unit     string
}

var assetInfo = [...]info{
	Bitcoin:        {"bitcoin", "Bitcoin (BTC)", "Bitcoin", "BTC"},
	Gold:           {"gold", "Gold (oz)", "Gold", "oz"},
	Silver:         {"silver", "Silver (oz)", "Silver", "oz"},
	Oil:            {"oil", "Crude Oil (barrel)", "Crude Oil", "barrel"},
	NaturalGas:     {"natural-gas", "Natural Gas (MMBtu)", "Natural Gas", "MMBtu"},
	Copper:         {"copper", "Copper (lb)", "Copper", "lb"},
	Wheat:          {"wheat", "Wheat (bushel)", "Wheat", "bushel"},
	Corn:           {"corn", "Corn (bushel)", "Corn", "bushel"},
	Soybeans:       {"soybeans", "Soybeans (bushel)", "Soybeans", "bushel"},
	Coffee:         {"coffee", "Coffee (lb)", "Coffee", "lb"},
	Sugar:          {"sugar", "Sugar (lb)", "Sugar", "lb"},
	Cotton:         {"cotton", "Cotton (lb)", "Cotton", "lb"},
	Beef:           {"beef", "Live Cattle (lb)", "Live Cattle", "lb"},
	Rice:           {"rice", "Rough Rice (cwt)", "Rough Rice", "cwt"},
	Lumber:         {"lumber", "Lumber (1000 board ft)", "Lumber", "1000 board ft"},
	ConsumerBasket: {"consumer-basket", "Consumer Basket (index)", "Consumer Basket", "index"},
}

// All returns every asset in declaration order
func All() []Asset {
	res := make([]Asset, 0, len(assetInfo))
	for a := Bitcoin; a <= ConsumerBasket; a++ {
		res = append(res, a)
	}
	return res
}

// Commodities returns the physical commodities
func Commodities() []Asset {
	res := make([]Asset, 0, len(assetInfo)-2)
	for a := Gold; a <= Lumber; a++ {
		res = append(res, a)
	}
	return res
}

// Parse finds the asset matching s. Matching is case-insensitive and accepts
// the asset key (e.g. natural-gas), the Go identifier (NaturalGas) or the base
// name (Natural Gas).
func Parse(s string) (Asset, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, a := range All() {
		nfo := assetInfo[a]
		if needle == nfo.key ||
			needle == strings.ToLower(a.String()) ||
			needle == strings.ToLower(nfo.baseName) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAsset, s)
}

// Valid reports whether a is a member of the enumeration
func (a Asset) Valid() bool {
	return a >= Bitcoin && a <= ConsumerBasket
}

// Key is the url-safe identifier of the asset
func (a Asset) Key() string {
	if !a.Valid() {
		return ""
	}
	return assetInfo[a].key
}

// Name is the display name including the unit
func (a Asset) Name() string {
	if !a.Valid() {
		return ""
	}
	return assetInfo[a].name
}

// BaseName is the display name without the unit
func (a Asset) BaseName() string {
	if !a.Valid() {
		return ""
	}
	return assetInfo[a].baseName
}

// Unit label used when formatting prices
func (a Asset) Unit() string {
	if !a.Valid() {
		return ""
	}
	return assetInfo[a].unit
}

func (a Asset) String() string {
	switch a {
	case Bitcoin:
		return "Bitcoin"
	case Gold:
		return "Gold"
	case Silver:
		return "Silver"
	case Oil:
		return "Oil"
	case NaturalGas:
		return "NaturalGas"
	case Copper:
		return "Copper"
	case Wheat:
		return "Wheat"
	case Corn:
		return "Corn"
	case Soybeans:
		return "Soybeans"
	case Coffee:
		return "Coffee"
	case Sugar:
		return "Sugar"
	case Cotton:
		return "Cotton"
	case Beef:
		return "Beef"
	case Rice:
		return "Rice"
	case Lumber:
		return "Lumber"
	case ConsumerBasket:
		return "ConsumerBasket"
	default:
		return fmt.Sprintf("Asset(%d)", int(a))
	}
}

// MarshalText encodes the asset by its key so it can be used as a JSON map key
func (a Asset) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAsset, int(a))
	}
	return []byte(a.Key()), nil
}

func (a *Asset) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
