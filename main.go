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

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/penny-vault/purchasing-power/cmd"
	"github.com/penny-vault/purchasing-power/data"
)

func configureViper() {
	viper.SetConfigName("ppower")
	viper.SetConfigType("toml")
	viper.AddConfigPath("/etc/purchasing-power/")
	viper.AddConfigPath("$HOME/.config/purchasing-power")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("PP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("log.level", "warning")
	viper.SetDefault("log.output", "stderr")
	viper.SetDefault("log.pretty", true)
	viper.SetDefault("log.report_caller", false)
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.refresh", "0 */6 * * *")
	viper.SetDefault("server.cors_origins", "*")
	viper.SetDefault("otlp.endpoint", "")
	viper.SetDefault("otlp.http", false)
	data.SetDefaults()

	// a missing config file is fine; every setting has a default
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "fatal error config file: %s\n", err)
			os.Exit(1)
		}
	}
}

func main() {
	configureViper()
	cmd.Execute()
}
