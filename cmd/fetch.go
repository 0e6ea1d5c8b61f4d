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
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/penny-vault/purchasing-power/asset"
	"github.com/penny-vault/purchasing-power/data"
	"github.com/penny-vault/purchasing-power/dataframe"
)

var (
	fetchDescribe bool
	fetchLast     int
	fetchCurrency string
)

func init() {
	fetchCmd.Flags().BoolVar(&fetchDescribe, "describe", false, "print summary statistics for every asset")
	fetchCmd.Flags().IntVar(&fetchLast, "last", 0, "print the last N days of prices for every asset")
	fetchCmd.Flags().StringVar(&fetchCurrency, "currency", "usd", "currency of the printed prices: usd or cad")

	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [asset...]",
	Short: "Load prices and print a summary of every asset",
	Long: `Run a single refresh cycle against the price vendors and print the
date range and latest price of every asset that could be loaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		currency, err := asset.ParseCurrency(fetchCurrency)
		if err != nil {
			return err
		}

		requested := make([]asset.Asset, 0, len(args))
		for _, arg := range args {
			a, err := asset.Parse(arg)
			if err != nil {
				return err
			}
			requested = append(requested, a)
		}

		snap, err := refresh(context.Background(), requested...)
		if err != nil {
			return err
		}

		log.Info().Str("CycleID", snap.CycleID.String()).Int("NumAssets", len(snap.Series)).Msg("refresh finished")

		fmt.Println(snapshotTable(snap, currency))

		df := dataframe.FromMap(snap.Series, currency)
		if fetchDescribe {
			fmt.Println(dataframe.SummaryTable(df.Describe()))
		}

		if fetchLast > 0 {
			fmt.Println(df.Last(fetchLast).Table())
		}

		return nil
	},
}

func snapshotTable(snap *data.Snapshot, currency asset.Currency) string {
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader([]string{"Asset", "Start", "End", "Days", "Latest"})
	table.SetBorder(false)

	for _, a := range asset.All() {
		prices := snap.Series.Get(a)
		if len(prices) == 0 {
			table.Append([]string{a.Name(), "-", "-", "0", "unavailable"})
			continue
		}

		latest := "-"
		if price, ok := prices[len(prices)-1].PriceIn(currency); ok {
			latest = a.FormatPrice(price, currency)
		}

		table.Append([]string{a.Name(), prices.Start().String(), prices.End().String(), fmt.Sprintf("%d", prices.Len()), latest})
	}

	table.Render()
	return s.String()
}
