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
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// Currency selects which price of a datum is used
type Currency int

const (
	// Base currency, every datum has a base price
	Base Currency = iota
	// Secondary currency, derived through an exchange rate
	Secondary
)

// ISO 4217 codes of the two currencies
const (
	BaseCurrencyCode      = money.USD
	SecondaryCurrencyCode = money.CAD
)

// ParseCurrency accepts either the ISO code or the words base/secondary
func ParseCurrency(s string) (Currency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "BASE", BaseCurrencyCode:
		return Base, nil
	case "SECONDARY", SecondaryCurrencyCode:
		return Secondary, nil
	default:
		return Base, fmt.Errorf("unknown currency %q", s)
	}
}

// Code returns the ISO 4217 code
func (c Currency) Code() string {
	if c == Secondary {
		return SecondaryCurrencyCode
	}
	return BaseCurrencyCode
}

func (c Currency) String() string {
	return c.Code()
}

// FormatPrice renders price in currency c followed by the unit of asset a,
// e.g. "$1,800.00 / oz". Index values are printed without a currency symbol.
func (a Asset) FormatPrice(price float64, c Currency) string {
	if a == ConsumerBasket {
		return fmt.Sprintf("%.2f pts", price)
	}
	m := money.NewFromFloat(price, c.Code())
	return fmt.Sprintf("%s / %s", m.Display(), a.Unit())
}
