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
	"go.opentelemetry.io/otel/codes"

	"github.com/penny-vault/purchasing-power/date"
	"github.com/penny-vault/purchasing-power/observability/opentelemetry"
	"github.com/penny-vault/purchasing-power/series"
)

var yahooAPI = "https://query1.finance.yahoo.com"

// Yahoo reads daily closes from the Yahoo Finance chart endpoint
type Yahoo struct {
	req requester
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// NewYahoo creates a new Yahoo Finance provider
func NewYahoo(client *http.Client, cache *ResponseCache) *Yahoo {
	return &Yahoo{
		req: newRequester(client, cache),
	}
}

func (y *Yahoo) Name() string {
	return "yahoo"
}

// Fetch returns the daily closes of ticker between begin and end inclusive.
// Days with a null close are skipped.
func (y *Yahoo) Fetch(ctx context.Context, ticker string, begin, end date.Date) ([]series.Quote, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "yahoo.Fetch")
	defer span.End()

	if end.Before(begin) {
		return nil, ErrBeginAfterEnd
	}

	subLog := log.With().Str("Provider", y.Name()).Str("Ticker", ticker).Str("Begin", begin.String()).Str("End", end.String()).Logger()

	period1 := begin.Time().Unix()
	period2 := end.Add(1).Time().Unix()
	chartURL := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d", yahooAPI, url.PathEscape(ticker), period1, period2)

	span.SetAttributes(
		attribute.String("Url", chartURL),
		attribute.String("Ticker", ticker),
	)

	var resp yahooChartResponse
	if err := y.req.getJSON(ctx, span, chartURL, &resp); err != nil {
		subLog.Warn().Err(err).Msg("yahoo request failed")
		return nil, err
	}

	if resp.Chart.Error != nil {
		msg := "yahoo returned an error"
		span.SetStatus(codes.Error, msg)
		subLog.Warn().Str("Code", resp.Chart.Error.Code).Str("Description", resp.Chart.Error.Description).Msg(msg)
		return nil, fmt.Errorf("%w: %s: %s", ErrNoData, resp.Chart.Error.Code, resp.Chart.Error.Description)
	}

	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, ticker)
	}

	result := resp.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	n := len(result.Timestamp)
	if len(closes) < n {
		n = len(closes)
	}

	quotes := make([]series.Quote, 0, n)
	for idx := 0; idx < n; idx++ {
		if closes[idx] == nil {
			continue
		}
		quotes = append(quotes, series.Quote{
			Date:  date.FromUnix(result.Timestamp[idx]),
			Close: *closes[idx],
		})
	}

	quotes = inRange(quotes, begin, end)
	subLog.Debug().Int("NumQuotes", len(quotes)).Msg("loaded yahoo quotes")

	return quotes, nil
}

// FetchExchangeRate loads a currency pair such as CAD=X, which Yahoo quotes
// like any other ticker
func (y *Yahoo) FetchExchangeRate(ctx context.Context, pair string, begin, end date.Date) ([]series.Quote, error) {
	return y.Fetch(ctx, pair, begin, end)
}
