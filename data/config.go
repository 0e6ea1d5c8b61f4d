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

package data

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/viper"

	"github.com/penny-vault/purchasing-power/date"
	"github.com/penny-vault/purchasing-power/series"
)

const (
	DefaultStart          = "1999-01-01"
	DefaultDelay          = 3 * time.Second
	DefaultRateLimitDelay = 10 * time.Second
	DefaultCacheSize      = 256
)

// Config holds the settings of a refresh cycle
type Config struct {
	Begin           date.Date
	End             date.Date
	Delay           time.Duration
	RateLimitDelay  time.Duration
	Timeout         time.Duration
	FallbackRate    float64
	RatePair        string
	CacheSize       int
	CoinGeckoAPIKey string
}

// SetDefaults registers the default value of every data setting with viper
func SetDefaults() {
	viper.SetDefault("fetch.start", DefaultStart)
	viper.SetDefault("fetch.end", "")
	viper.SetDefault("fetch.delay", DefaultDelay)
	viper.SetDefault("fetch.rate_limit_delay", DefaultRateLimitDelay)
	viper.SetDefault("fetch.timeout", DefaultTimeout)
	viper.SetDefault("fx.fallback_rate", series.DefaultFallbackRate)
	viper.SetDefault("fx.pair", DefaultRatePair)
	viper.SetDefault("cache.local_size", DefaultCacheSize)
	viper.SetDefault("coingecko.api_key", "")
}

// ConfigFromViper reads the data settings from viper. An empty fetch.end
// means today.
func ConfigFromViper() (Config, error) {
	begin, err := date.Parse(viper.GetString("fetch.start"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid fetch.start: %w", err)
	}

	end := date.Today()
	if s := viper.GetString("fetch.end"); s != "" {
		end, err = date.Parse(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid fetch.end: %w", err)
		}
	}

	if end.Before(begin) {
		return Config{}, ErrBeginAfterEnd
	}

	cfg := Config{
		Begin:           begin,
		End:             end,
		Delay:           viper.GetDuration("fetch.delay"),
		RateLimitDelay:  viper.GetDuration("fetch.rate_limit_delay"),
		Timeout:         viper.GetDuration("fetch.timeout"),
		FallbackRate:    viper.GetFloat64("fx.fallback_rate"),
		RatePair:        viper.GetString("fx.pair"),
		CacheSize:       viper.GetInt("cache.local_size"),
		CoinGeckoAPIKey: viper.GetString("coingecko.api_key"),
	}

	if !(cfg.FallbackRate > 0) || math.IsInf(cfg.FallbackRate, 0) {
		return Config{}, fmt.Errorf("invalid fx.fallback_rate %v: must be positive and finite", cfg.FallbackRate)
	}

	if cfg.RatePair == "" {
		cfg.RatePair = DefaultRatePair
	}

	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}

	return cfg, nil
}

// NewManager wires the vendor providers, a shared response cache and the
// consumer basket into a Manager
func NewManager(cfg Config) (*Manager, error) {
	cache, err := NewResponseCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	client := NewHTTPClient(cfg.Timeout)
	yahoo := NewYahoo(client, cache)
	sources, history := DefaultSources(yahoo, NewCoinGecko(client, cache, cfg.CoinGeckoAPIKey), NewCoinDesk(client, cache))

	return &Manager{
		Begin:          cfg.Begin,
		End:            cfg.End,
		Sources:        sources,
		History:        history,
		Rates:          RateSource{Provider: yahoo, Pair: cfg.RatePair},
		FallbackRate:   cfg.FallbackRate,
		Index:          series.ConsumerBasket,
		Delay:          cfg.Delay,
		RateLimitDelay: cfg.RateLimitDelay,
	}, nil
}
