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
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/penny-vault/purchasing-power/asset"
	"github.com/penny-vault/purchasing-power/date"
	"github.com/penny-vault/purchasing-power/series"
)

// FromMap outer joins every series in m into a single dataframe with one
// column per asset, named by the asset key. Prices are read in currency c;
// dates where an asset has no price are NaN.
func FromMap(m series.Map, c asset.Currency) *DataFrame {
	assets := m.Assets()

	seen := make(map[date.Date]struct{})
	for _, a := range assets {
		for _, d := range m[a] {
			seen[d.Date] = struct{}{}
		}
	}

	dates := make([]date.Date, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	rowIdx := make(map[date.Date]int, len(dates))
	for idx, d := range dates {
		rowIdx[d] = idx
	}

	df := &DataFrame{
		Dates:    dates,
		ColNames: make([]string, 0, len(assets)),
		Vals:     make([][]float64, 0, len(assets)),
	}

	for _, a := range assets {
		col := make([]float64, len(dates))
		for idx := range col {
			col[idx] = math.NaN()
		}

		for _, d := range m[a] {
			if price, ok := d.PriceIn(c); ok {
				col[rowIdx[d.Date]] = price
			}
		}

		df.ColNames = append(df.ColNames, a.Key())
		df.Vals = append(df.Vals, col)
	}

	return df
}

// ColIndex returns the index of the named column or -1 if it doesn't exist
func (df *DataFrame) ColIndex(colName string) int {
	for idx, val := range df.ColNames {
		if colName == val {
			return idx
		}
	}

	return -1
}

// ColCount returns the number of columns in the dataframe
func (df *DataFrame) ColCount() int {
	return len(df.ColNames)
}

// Len returns the number of rows in the dataframe
func (df *DataFrame) Len() int {
	return len(df.Dates)
}

// Start returns the first date of the dataframe
func (df *DataFrame) Start() date.Date {
	if len(df.Dates) == 0 {
		return date.Date{}
	}
	return df.Dates[0]
}

// End returns the last date of the dataframe
func (df *DataFrame) End() date.Date {
	if len(df.Dates) == 0 {
		return date.Date{}
	}
	return df.Dates[len(df.Dates)-1]
}

// Copy creates a deep copy of the dataframe
func (df *DataFrame) Copy() *DataFrame {
	df2 := &DataFrame{
		ColNames: make([]string, len(df.ColNames)),
		Dates:    make([]date.Date, len(df.Dates)),
		Vals:     make([][]float64, len(df.Vals)),
	}

	copy(df2.ColNames, df.ColNames)
	copy(df2.Dates, df.Dates)

	for idx := range df2.Vals {
		df2.Vals[idx] = make([]float64, len(df.Vals[idx]))
		copy(df2.Vals[idx], df.Vals[idx])
	}

	return df2
}

// Insert a new column at the end of the dataframe
func (df *DataFrame) Insert(name string, col []float64) error {
	if df.ColIndex(name) != -1 {
		return fmt.Errorf("%w: %s", ErrColumnExists, name)
	}
	if len(col) != len(df.Dates) {
		return fmt.Errorf("%w: column %s has %d rows, dataframe has %d", ErrDateIndexNotAligned, name, len(col), len(df.Dates))
	}

	df.ColNames = append(df.ColNames, name)
	df.Vals = append(df.Vals, col)
	return nil
}

// Drop removes rows where every column is NaN and returns a new dataframe
func (df *DataFrame) Drop() *DataFrame {
	res := &DataFrame{
		ColNames: df.ColNames,
		Dates:    make([]date.Date, 0, len(df.Dates)),
		Vals:     make([][]float64, len(df.Vals)),
	}

	for rowIdx, dt := range df.Dates {
		empty := true
		for _, col := range df.Vals {
			if !math.IsNaN(col[rowIdx]) {
				empty = false
				break
			}
		}

		if empty {
			continue
		}

		res.Dates = append(res.Dates, dt)
		for colIdx, col := range df.Vals {
			res.Vals[colIdx] = append(res.Vals[colIdx], col[rowIdx])
		}
	}

	return res
}

// Last returns a new dataframe with only the last n rows
func (df *DataFrame) Last(n int) *DataFrame {
	if n < 0 {
		n = 0
	}
	if n > df.Len() {
		n = df.Len()
	}

	start := df.Len() - n
	res := &DataFrame{
		ColNames: df.ColNames,
		Dates:    df.Dates[start:],
		Vals:     make([][]float64, len(df.Vals)),
	}

	for idx, col := range df.Vals {
		res.Vals[idx] = col[start:]
	}

	return res
}

// Trim the dataframe to the specified date range (inclusive). The returned
// dataframe shares storage with df.
func (df *DataFrame) Trim(begin, end date.Date) *DataFrame {
	df2 := &DataFrame{
		ColNames: df.ColNames,
		Dates:    []date.Date{},
		Vals:     make([][]float64, len(df.Vals)),
	}

	for idx := range df2.Vals {
		df2.Vals[idx] = []float64{}
	}

	// special case: requested range is invalid or data frame is empty
	if end.Before(begin) || df.Len() == 0 {
		return df2
	}

	beginIdx := sort.Search(len(df.Dates), func(i int) bool {
		return !df.Dates[i].Before(begin)
	})

	endIdx := sort.Search(len(df.Dates), func(i int) bool {
		return df.Dates[i].After(end)
	})

	if beginIdx >= endIdx {
		return df2
	}

	df2.Dates = df.Dates[beginIdx:endIdx]
	for colIdx, col := range df.Vals {
		df2.Vals[colIdx] = col[beginIdx:endIdx]
	}

	return df2
}

// Table renders the dataframe as an ASCII table
func (df *DataFrame) Table() string {
	if len(df.Dates) == 0 {
		return "<NO DATA>"
	}

	tableCols := append([]string{"Date"}, df.ColNames...)

	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader(tableCols)
	footer := make([]string, len(tableCols))
	footer[0] = "Num Rows"
	if len(footer) > 1 {
		footer[1] = fmt.Sprintf("%d", df.Len())
	}
	table.SetFooter(footer)
	table.SetBorder(false)

	for idx, dt := range df.Dates {
		row := make([]string, 0, len(df.Vals)+1)
		row = append(row, dt.String())

		for _, col := range df.Vals {
			if math.IsNaN(col[idx]) {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%.4f", col[idx]))
		}

		table.Append(row)
	}

	table.Render()
	return s.String()
}
