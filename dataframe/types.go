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

package dataframe

import (
	"errors"

	"github.com/penny-vault/purchasing-power/date"
)

// DataFrame stores a table of values organized by date. Vals is column
// major - e.g.,
//
//	Gold   Silver
//	1      4
//	2      5
//	3      6
//
// Vals[0][0] = 1
// Vals[0][1] = 2
//
// Missing observations are stored as math.NaN()
type DataFrame struct {
	Dates    []date.Date
	ColNames []string
	Vals     [][]float64
}

// Summary describes the observed values of one column; NaN entries are
// ignored
type Summary struct {
	Column string
	Count  int
	First  float64
	Last   float64
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Change float64
}

var (
	ErrDateIndexNotAligned = errors.New("date index does not align")
	ErrColumnExists        = errors.New("column already exists")
)
