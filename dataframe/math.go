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
	"strings"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Describe summarizes every column of the dataframe
func (df *DataFrame) Describe() []Summary {
	res := make([]Summary, 0, len(df.ColNames))
	for idx, colName := range df.ColNames {
		res = append(res, summarize(colName, df.Vals[idx]))
	}
	return res
}

func summarize(colName string, col []float64) Summary {
	observed := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}

	summary := Summary{
		Column: colName,
		Count:  len(observed),
	}

	if len(observed) == 0 {
		summary.First = math.NaN()
		summary.Last = math.NaN()
		summary.Min = math.NaN()
		summary.Max = math.NaN()
		summary.Mean = math.NaN()
		summary.StdDev = math.NaN()
		summary.Change = math.NaN()
		return summary
	}

	summary.First = observed[0]
	summary.Last = observed[len(observed)-1]
	summary.Min = floats.Min(observed)
	summary.Max = floats.Max(observed)
	summary.Mean, summary.StdDev = stat.MeanStdDev(observed, nil)
	summary.Change = (summary.Last/summary.First - 1) * 100

	return summary
}

// PctChange computes the percentage change of each column relative to its
// first observed value and returns a new dataframe
func (df *DataFrame) PctChange() *DataFrame {
	df = df.Copy()
	for _, col := range df.Vals {
		base := math.NaN()
		for idx, v := range col {
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(base) {
				base = v
			}
			col[idx] = (v/base - 1) * 100
		}
	}
	return df
}

// SummaryTable renders summaries as an ASCII table
func SummaryTable(summaries []Summary) string {
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader([]string{"Column", "Count", "First", "Last", "Min", "Max", "Mean", "StdDev", "Change %"})
	table.SetBorder(false)

	for _, summary := range summaries {
		table.Append([]string{
			summary.Column,
			fmt.Sprintf("%d", summary.Count),
			fmt.Sprintf("%.4f", summary.First),
			fmt.Sprintf("%.4f", summary.Last),
			fmt.Sprintf("%.4f", summary.Min),
			fmt.Sprintf("%.4f", summary.Max),
			fmt.Sprintf("%.4f", summary.Mean),
			fmt.Sprintf("%.4f", summary.StdDev),
			fmt.Sprintf("%.2f", summary.Change),
		})
	}

	table.Render()
	return s.String()
}
