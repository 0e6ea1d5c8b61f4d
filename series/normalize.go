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

import "fmt"

// DefaultFallbackRate is the secondary-per-base exchange rate used on days
// without an observed rate
const DefaultFallbackRate = 1.35

// Rescale multiplies every price in s by factor, e.g. 0.01 to convert
// cents-quoted contracts to dollars. A secondary price, if present, is scaled
// by the same factor.
func Rescale(s Series, factor float64) (Series, error) {
	if !validPrice(factor) {
		return nil, fmt.Errorf("%w: invalid scale factor %v", ErrDataQuality, factor)
	}

	if len(s) == 0 {
		return s, nil
	}

	res := make(Series, len(s))
	for idx, d := range s {
		price := d.Price * factor
		if !validPrice(price) {
			return nil, fmt.Errorf("%w: price %v on %s", ErrDataQuality, price, d.Date)
		}
		res[idx] = Datum{Date: d.Date, Price: price}

		if sec, ok := d.SecondaryPrice(); ok {
			sec *= factor
			if !validPrice(sec) {
				return nil, fmt.Errorf("%w: secondary price %v on %s", ErrDataQuality, sec, d.Date)
			}
			res[idx].Secondary = &sec
		}
	}

	return res, nil
}

// Convert derives the secondary currency price of every datum in s as
// price * rate. Days missing from rates use fallback.
func Convert(s Series, rates Rates, fallback float64) (Series, error) {
	if !validPrice(fallback) {
		return nil, fmt.Errorf("%w: invalid fallback rate %v", ErrDataQuality, fallback)
	}

	if len(s) == 0 {
		return s, nil
	}

	res := make(Series, len(s))
	for idx, d := range s {
		rate, ok := rates.For(d.Date)
		if !ok {
			rate = fallback
		}

		sec := d.Price * rate
		if !validPrice(sec) {
			return nil, fmt.Errorf("%w: secondary price %v on %s", ErrDataQuality, sec, d.Date)
		}
		res[idx] = Datum{Date: d.Date, Price: d.Price, Secondary: &sec}
	}

	return res, nil
}
