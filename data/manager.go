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
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/penny-vault/purchasing-power/asset"
	"github.com/penny-vault/purchasing-power/date"
	"github.com/penny-vault/purchasing-power/observability/opentelemetry"
	"github.com/penny-vault/purchasing-power/series"
)

// Manager loads every asset from its sources and assembles the series map of
// one refresh cycle
type Manager struct {
	Begin date.Date
	End   date.Date

	// Sources lists, per asset, the sources to try in order; the first one
	// returning data wins
	Sources map[asset.Asset][]Source

	// History holds long-history sources whose data fills dates the winning
	// source does not cover
	History map[asset.Asset]Source

	Rates        RateSource
	FallbackRate float64
	Index        series.Index

	// Delay is the pause between consecutive vendor requests
	Delay time.Duration

	// RateLimitDelay is the pause before the single retry of a rate limited
	// request
	RateLimitDelay time.Duration
}

// Snapshot is the result of one refresh cycle
type Snapshot struct {
	CycleID   uuid.UUID
	Refreshed time.Time
	Series    series.Map
}

// cycle carries the per-refresh state
type cycle struct {
	manager  *Manager
	log      zerolog.Logger
	requests int
}

// Refresh fetches every configured asset and builds the composite index. A
// failing asset is logged and left out of the result; only cancellation of
// ctx aborts the refresh.
func (manager *Manager) Refresh(ctx context.Context) (*Snapshot, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "manager.Refresh")
	defer span.End()

	if manager.End.Before(manager.Begin) {
		return nil, ErrBeginAfterEnd
	}

	cycleID := uuid.New()
	span.SetAttributes(attribute.String("CycleID", cycleID.String()))

	c := &cycle{
		manager: manager,
		log:     log.With().Str("CycleID", cycleID.String()).Str("Begin", manager.Begin.String()).Str("End", manager.End.String()).Logger(),
	}

	c.log.Info().Msg("starting refresh")

	rates, err := c.loadRates(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Warn().Err(err).Float64("FallbackRate", manager.FallbackRate).Msg("exchange rate unavailable; using fallback rate for every day")
		rates = series.Rates{}
	}

	res := make(series.Map)
	for _, a := range asset.All() {
		if a == manager.Index.Asset && len(manager.Index.Components) > 0 {
			continue
		}

		if _, ok := manager.Sources[a]; !ok {
			if _, ok := manager.History[a]; !ok {
				continue
			}
		}

		s, err := c.loadAsset(ctx, a)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.log.Warn().Err(err).Str("Asset", a.String()).Msg("asset unavailable")
			continue
		}

		s, err = series.Convert(s, rates, manager.FallbackRate)
		if err != nil {
			c.log.Warn().Err(err).Str("Asset", a.String()).Msg("could not derive secondary currency price")
			continue
		}

		res[a] = s
	}

	if len(manager.Index.Components) > 0 {
		basket, err := manager.Index.Build(res, rates)
		switch {
		case errors.Is(err, series.ErrInsufficientData):
			c.log.Warn().Err(err).Str("Asset", manager.Index.Asset.String()).Msg("composite index omitted")
		case err != nil:
			c.log.Error().Err(err).Str("Asset", manager.Index.Asset.String()).Msg("could not build composite index")
		default:
			res[manager.Index.Asset] = basket
		}
	}

	span.SetAttributes(attribute.Int("NumAssets", len(res)))
	c.log.Info().Int("NumAssets", len(res)).Int("NumRequests", c.requests).Msg("refresh complete")

	return &Snapshot{
		CycleID:   cycleID,
		Refreshed: time.Now(),
		Series:    res,
	}, nil
}

func (c *cycle) loadRates(ctx context.Context) (series.Rates, error) {
	src := c.manager.Rates
	if src.Provider == nil {
		return nil, fmt.Errorf("%w: exchange rate", ErrNoSources)
	}

	quotes, err := c.fetch(ctx, src.Provider.Name(), src.Pair, func(ctx context.Context) ([]series.Quote, error) {
		return src.Provider.FetchExchangeRate(ctx, src.Pair, c.manager.Begin, c.manager.End)
	})
	if err != nil {
		return nil, err
	}

	s, dropped := series.FromQuotes(quotes)
	if dropped > 0 {
		c.log.Warn().Int("NumDropped", dropped).Str("Pair", src.Pair).Msg("dropped invalid exchange rates")
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, src.Pair)
	}

	return series.RatesFromSeries(s), nil
}

// loadAsset walks the fallback chain of a and merges the history source
// beneath the winner
func (c *cycle) loadAsset(ctx context.Context, a asset.Asset) (series.Series, error) {
	var primary series.Series
	var lastErr error

	for _, src := range c.manager.Sources[a] {
		s, err := c.load(ctx, a, src)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.log.Warn().Err(err).Str("Asset", a.String()).Str("Provider", src.Provider.Name()).Str("Ticker", src.Ticker).Msg("source failed; trying next")
			lastErr = err
			continue
		}
		primary = s
		break
	}

	if hist, ok := c.manager.History[a]; ok {
		h, err := c.load(ctx, a, hist)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			c.log.Warn().Err(err).Str("Asset", a.String()).Str("Provider", hist.Provider.Name()).Msg("history source failed")
			if lastErr == nil {
				lastErr = err
			}
		default:
			merged, err := series.Merge(primary, h)
			if err != nil {
				return nil, err
			}
			primary = merged
		}
	}

	if len(primary) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, fmt.Errorf("%w: %s", ErrNoSources, a)
	}

	return primary, nil
}

// load fetches one source and converts it to base currency units
func (c *cycle) load(ctx context.Context, a asset.Asset, src Source) (series.Series, error) {
	quotes, err := c.fetch(ctx, src.Provider.Name(), src.Ticker, func(ctx context.Context) ([]series.Quote, error) {
		return src.Provider.Fetch(ctx, src.Ticker, c.manager.Begin, c.manager.End)
	})
	if err != nil {
		return nil, err
	}

	s, dropped := series.FromQuotes(quotes)
	if dropped > 0 {
		c.log.Warn().Int("NumDropped", dropped).Str("Asset", a.String()).Str("Ticker", src.Ticker).Msg("dropped invalid quotes")
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, src.Ticker)
	}

	scale := src.Scale
	if scale == 0 {
		scale = 1.0
	}
	return series.Rescale(s, scale)
}

// fetch runs fn after the inter-request delay and retries it once, after
// RateLimitDelay, if the vendor rate limited the request
func (c *cycle) fetch(ctx context.Context, provider, ticker string, fn func(context.Context) ([]series.Quote, error)) ([]series.Quote, error) {
	if c.requests > 0 {
		if err := sleep(ctx, c.manager.Delay); err != nil {
			return nil, err
		}
	}
	c.requests++

	quotes, err := fn(ctx)
	if errors.Is(err, ErrRateLimited) {
		c.log.Warn().Str("Provider", provider).Str("Ticker", ticker).Dur("RetryIn", c.manager.RateLimitDelay).Msg("rate limited; retrying once")
		if err := sleep(ctx, c.manager.RateLimitDelay); err != nil {
			return nil, err
		}
		c.requests++
		quotes, err = fn(ctx)
	}

	return quotes, err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
