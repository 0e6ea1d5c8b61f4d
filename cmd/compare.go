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

package cmd

import (
	"context"
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/purchasing-power/asset"
	"github.com/penny-vault/purchasing-power/date"
	"github.com/penny-vault/purchasing-power/series"
)

var (
	compareMode    string
	compareSince   string
	comparePercent bool
	compareHeight  int
	compareWidth   int
)

func init() {
	compareCmd.Flags().StringVar(&compareMode, "mode", "units", "ratio to plot: units (A/B) or price (B/A)")
	compareCmd.Flags().StringVar(&compareSince, "since", "", "only plot points on or after this date")
	compareCmd.Flags().BoolVar(&comparePercent, "percent", false, "plot the percentage change since the first plotted point")
	compareCmd.Flags().IntVar(&compareHeight, "height", 20, "chart height in rows")
	compareCmd.Flags().IntVar(&compareWidth, "width", 100, "chart width in columns")

	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare <a> <b>",
	Short: "Chart how many units of asset B one unit of asset A buys",
	Long: `Align asset B to the dates of asset A, bridging gaps of up to 30 days
with the nearest date, and chart the ratio of their prices.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := asset.Parse(args[0])
		if err != nil {
			return err
		}

		b, err := asset.Parse(args[1])
		if err != nil {
			return err
		}

		mode, err := series.ParseRatioMode(compareMode)
		if err != nil {
			return err
		}

		var since date.Date
		if compareSince != "" {
			since, err = date.Parse(compareSince)
			if err != nil {
				return err
			}
		}

		snap, err := refresh(context.Background(), a, b)
		if err != nil {
			return err
		}

		points, stats, err := series.Align(snap.Series.Get(a), snap.Series.Get(b), mode)
		if err != nil {
			return err
		}

		log.Info().Int("Exact", stats.Exact).Int("Nearest", stats.Nearest).Int("Dropped", stats.Dropped).Msg("aligned series")

		from := float64(since.DaysSinceEpoch())
		if since.IsZero() && len(points) > 0 {
			from = points[0].X
		}

		if comparePercent {
			points = series.PercentChange(points, from)
		} else {
			start := len(points)
			for idx, p := range points {
				if p.X >= from {
					start = idx
					break
				}
			}
			points = points[start:]
		}

		if len(points) == 0 {
			return fmt.Errorf("no overlapping prices for %s and %s", a.BaseName(), b.BaseName())
		}

		values := make([]float64, len(points))
		for idx, p := range points {
			values[idx] = p.Value
		}

		caption := fmt.Sprintf("%s per %s", b.BaseName(), a.BaseName())
		if mode == series.PricePerUnit {
			caption = fmt.Sprintf("%s per %s", a.BaseName(), b.BaseName())
		}
		if comparePercent {
			caption += " (% change)"
		}
		caption += fmt.Sprintf(", %s to %s", points[0].Date, points[len(points)-1].Date)

		fmt.Println(asciigraph.Plot(values,
			asciigraph.Height(compareHeight),
			asciigraph.Width(compareWidth),
			asciigraph.Caption(caption),
		))

		last := points[len(points)-1]
		fmt.Printf("\n%s: %.6f\n", last.Date, last.Value)
		return nil
	},
}
