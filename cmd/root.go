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
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/purchasing-power/common"
)

var logFile *os.File

func init() {
	// Logging configuration
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	rootCmd.PersistentFlags().String("log-output", "stderr", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	rootCmd.PersistentFlags().Bool("log-pretty", true, "Format logs for humans instead of as JSON")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))

	// Refresh window
	rootCmd.PersistentFlags().String("begin", "", "First date to load, formatted as YYYY-MM-DD")
	viper.BindPFlag("fetch.start", rootCmd.PersistentFlags().Lookup("begin"))

	rootCmd.PersistentFlags().String("end", "", "Last date to load, formatted as YYYY-MM-DD; defaults to today")
	viper.BindPFlag("fetch.end", rootCmd.PersistentFlags().Lookup("end"))

	rootCmd.PersistentFlags().Duration("delay", 0, "Pause between vendor requests")
	viper.BindPFlag("fetch.delay", rootCmd.PersistentFlags().Lookup("delay"))
}

var rootCmd = &cobra.Command{
	Use:     "ppower",
	Version: common.CurrentVersion.String(),
	Short:   "Compare the purchasing power of bitcoin, commodities and a consumer basket",
	Long: `Load daily prices for bitcoin, precious metals, energy, agricultural
commodities and a synthetic consumer basket in USD and CAD, then compare how
much of one asset another asset buys over time.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		fh, err := common.SetupLogging()
		if err != nil {
			return err
		}
		logFile = fh

		if f := viper.ConfigFileUsed(); f != "" {
			log.Debug().Str("ConfigFile", f).Msg("loaded configuration")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
