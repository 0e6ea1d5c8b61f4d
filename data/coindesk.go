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
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/penny-vault/purchasing-power/date"
	"github.com/penny-vault/purchasing-power/observability/opentelemetry"
	"github.com/penny-vault/purchasing-power/series"
)

var coinDeskAPI = "https://api.coindesk.com"

// CoinDesk reads the Bitcoin Price Index historical close. The index only
// covers BTC so the only accepted ticker is BTC.
type CoinDesk struct {
	req requester
}

type coinDeskHistorical struct {
	BPI map[string]float64 `json:"bpi"`
}

// NewCoinDesk creates a new CoinDesk BPI provider
func NewCoinDesk(client *http.Client, cache *ResponseCache) *CoinDesk {
	return &CoinDesk{
		req: newRequester(client, cache),
	}
}

func (cd *CoinDesk) Name() string {
	return "coindesk"
}

// Fetch returns the daily BPI close between begin and end. Entries with an
// unparseable date are skipped.
func (cd *CoinDesk) Fetch(ctx context.Context, ticker string, begin, end date.Date) ([]series.Quote, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "coindesk.Fetch")
	defer span.End()

	if !strings.EqualFold(ticker, "BTC") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTicker, ticker)
	}

	if end.Before(begin) {
		return nil, ErrBeginAfterEnd
	}

	subLog := log.With().Str("Provider", cd.Name()).Str("Begin", begin.String()).Str("End", end.String()).Logger()

	bpiURL := fmt.Sprintf("%s/v1/bpi/historical/close.json?start=%s&end=%s", coinDeskAPI, begin, end)
	span.SetAttributes(attribute.String("Url", bpiURL))

	var resp coinDeskHistorical
	if err := cd.req.getJSON(ctx, span, bpiURL, &resp); err != nil {
		subLog.Warn().Err(err).Msg("coindesk request failed")
		return nil, err
	}

	quotes := make([]series.Quote, 0, len(resp.BPI))
	for k, v := range resp.BPI {
		on, err := date.Parse(k)
		if err != nil {
			subLog.Warn().Err(fmt.Errorf("%w: %w", ErrInvalidTimestamp, err)).Str("Date", k).Msg("skipping bpi entry")
			continue
		}
		quotes = append(quotes, series.Quote{Date: on, Close: v})
	}

	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].Date.Before(quotes[j].Date)
	})

	quotes = inRange(quotes, begin, end)
	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	subLog.Debug().Int("NumQuotes", len(quotes)).Msg("loaded coindesk bpi")
	return quotes, nil
}
