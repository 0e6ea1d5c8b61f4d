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

package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/penny-vault/purchasing-power/asset"
	"github.com/penny-vault/purchasing-power/date"
	"github.com/penny-vault/purchasing-power/series"
)

type SeriesResponse struct {
	Asset    string         `json:"asset"`
	Name     string         `json:"name"`
	Unit     string         `json:"unit"`
	Currency string         `json:"currency"`
	Mode     string         `json:"mode"`
	Latest   string         `json:"latest,omitempty"`
	Points   []series.Point `json:"points"`
}

type CompareResponse struct {
	A       string            `json:"a"`
	B       string            `json:"b"`
	Mode    string            `json:"mode"`
	Percent bool              `json:"percent"`
	Stats   series.AlignStats `json:"stats"`
	Low     float64           `json:"low"`
	High    float64           `json:"high"`
	Points  []series.Point    `json:"points"`
}

// GetSeries returns the price history of one asset. Query parameters:
// currency (usd or cad), mode (price or units), begin and end.
func (h *Handler) GetSeries(c *fiber.Ctx) error {
	if err := h.ready(); err != nil {
		return err
	}

	a, err := parseAsset(c, "asset")
	if err != nil {
		return err
	}

	currency, err := asset.ParseCurrency(c.Query("currency"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	mode, err := series.ParseRatioMode(c.Query("mode", "price"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	begin, end, err := parseRange(c)
	if err != nil {
		return err
	}

	s := h.store.Series(a).Trim(begin, end)
	resp := SeriesResponse{
		Asset:    a.Key(),
		Name:     a.Name(),
		Unit:     a.Unit(),
		Currency: currency.Code(),
		Mode:     mode.String(),
		Points:   series.Values(s, mode, currency),
	}

	if len(s) > 0 {
		if price, ok := s[len(s)-1].PriceIn(currency); ok {
			resp.Latest = a.FormatPrice(price, currency)
		}
	}

	return c.JSON(resp)
}

// Compare aligns asset b to the dates of asset a. Query parameters: mode
// (units or price), since, and percent to rebase values to the percentage
// change since the first point on or after since.
func (h *Handler) Compare(c *fiber.Ctx) error {
	if err := h.ready(); err != nil {
		return err
	}

	a, err := parseAsset(c, "a")
	if err != nil {
		return err
	}

	b, err := parseAsset(c, "b")
	if err != nil {
		return err
	}

	mode, err := series.ParseRatioMode(c.Query("mode"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	percent := false
	if p := c.Query("percent"); p != "" {
		percent, err = strconv.ParseBool(p)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "percent must be a boolean")
		}
	}

	var since date.Date
	if s := c.Query("since"); s != "" {
		since, err = date.Parse(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "since must be a date formatted as YYYY-MM-DD")
		}
	}

	points, stats, err := h.store.Aligned(a, b, mode)
	if err != nil {
		log.Error().Err(err).Str("A", a.Key()).Str("B", b.Key()).Msg("could not align series")
		return fiber.ErrInternalServerError
	}

	from := float64(since.DaysSinceEpoch())
	switch {
	case percent && since.IsZero():
		if len(points) > 0 {
			from = points[0].X
		}
		points = series.PercentChange(points, from)
	case percent:
		points = series.PercentChange(points, from)
	case !since.IsZero():
		points = sinceX(points, from)
	}

	lo, hi := series.Bounds(points)
	return c.JSON(CompareResponse{
		A:       a.Key(),
		B:       b.Key(),
		Mode:    mode.String(),
		Percent: percent,
		Stats:   stats,
		Low:     lo,
		High:    hi,
		Points:  points,
	})
}

func sinceX(points []series.Point, from float64) []series.Point {
	for idx, p := range points {
		if p.X >= from {
			return points[idx:]
		}
	}
	return []series.Point{}
}

func parseRange(c *fiber.Ctx) (begin, end date.Date, err error) {
	if s := c.Query("begin"); s != "" {
		if begin, err = date.Parse(s); err != nil {
			return begin, end, fiber.NewError(fiber.StatusBadRequest, "begin must be a date formatted as YYYY-MM-DD")
		}
	}

	if s := c.Query("end"); s != "" {
		if end, err = date.Parse(s); err != nil {
			return begin, end, fiber.NewError(fiber.StatusBadRequest, "end must be a date formatted as YYYY-MM-DD")
		}
	}

	if !begin.IsZero() && !end.IsZero() && end.Before(begin) {
		return begin, end, fiber.NewError(fiber.StatusBadRequest, "end must not be before begin")
	}

	return begin, end, nil
}
