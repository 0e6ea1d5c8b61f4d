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
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/penny-vault/purchasing-power/date"
	"github.com/penny-vault/purchasing-power/observability/opentelemetry"
	"github.com/penny-vault/purchasing-power/series"
)

var coinGeckoAPI = "https://api.coingecko.com"

// the public market chart endpoint only serves daily data for the last year
const coinGeckoMaxDays = 365

// CoinGecko reads daily coin prices in USD from the market chart endpoint.
// Tickers are CoinGecko coin ids, e.g. bitcoin.
type CoinGecko struct {
	req requester
}

type coinGeckoMarketChart struct {
	Prices [][]float64 `json:"prices"`
}

// NewCoinGecko creates a new CoinGecko provider; apiKey may be empty
func NewCoinGecko(client *http.Client, cache *ResponseCache, apiKey string) *CoinGecko {
	req := newRequester(client, cache)
	if apiKey != "" {
		req.headers["x-cg-demo-api-key"] = apiKey
	}
	return &CoinGecko{req: req}
}

func (cg *CoinGecko) Name() string {
	return "coingecko"
}

// Fetch returns daily prices between begin and end. At most the last 365
// days are available.
func (cg *CoinGecko) Fetch(ctx context.Context, ticker string, begin, end date.Date) ([]series.Quote, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "coingecko.Fetch")
	defer span.End()

	if end.Before(begin) {
		return nil, ErrBeginAfterEnd
	}

	subLog := log.With().Str("Provider", cg.Name()).Str("Ticker", ticker).Str("Begin", begin.String()).Str("End", end.String()).Logger()

	days := end.Sub(begin) + 1
	if days > coinGeckoMaxDays {
		days = coinGeckoMaxDays
	}

	chartURL := fmt.Sprintf("%s/api/v3/coins/%s/market_chart?vs_currency=usd&days=%d&interval=daily", coinGeckoAPI, url.PathEscape(ticker), days)
	span.SetAttributes(
		attribute.String("Url", chartURL),
		attribute.String("Ticker", ticker),
	)

	var resp coinGeckoMarketChart
	if err := cg.req.getJSON(ctx, span, chartURL, &resp); err != nil {
		subLog.Warn().Err(err).Msg("coingecko request failed")
		return nil, err
	}

	quotes := make([]series.Quote, 0, len(resp.Prices))
	for _, pair := range resp.Prices {
		if len(pair) != 2 {
			subLog.Warn().Floats64("Pair", pair).Msg("skipping malformed price")
			continue
		}
		quotes = append(quotes, series.Quote{
			Date:  date.FromUnix(int64(pair[0]) / 1000),
			Close: pair[1],
		})
	}

	quotes = inRange(quotes, begin, end)
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	subLog.Debug().Int("NumQuotes", len(quotes)).Msg("loaded coingecko prices")
	return quotes, nil
}
