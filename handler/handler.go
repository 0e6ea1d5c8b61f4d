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
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/penny-vault/purchasing-power/asset"
	"github.com/penny-vault/purchasing-power/common"
	"github.com/penny-vault/purchasing-power/data"
)

// Handler serves the most recent refresh snapshot held by a data.Store
type Handler struct {
	store *data.Store
}

type HealthResponse struct {
	Status    string `json:"status"`
	CycleID   string `json:"cycleId,omitempty"`
	Refreshed string `json:"refreshed,omitempty"`
	NumAssets int    `json:"numAssets"`

	Build common.BuildInfo `json:"build"`
}

type AssetResponse struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	BaseName  string `json:"baseName"`
	Unit      string `json:"unit"`
	Available bool   `json:"available"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	NumPoints int    `json:"numPoints"`
	Latest    string `json:"latest,omitempty"`
}

func New(store *data.Store) *Handler {
	return &Handler{store: store}
}

// Healthz reports whether a snapshot is available
func (h *Handler) Healthz(c *fiber.Ctx) error {
	snap, ok := h.store.Snapshot()
	if !ok {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status: "pending",
			Build:  common.ReadBuildInfo(),
		})
	}

	return c.JSON(HealthResponse{
		Status:    "ok",
		CycleID:   snap.CycleID.String(),
		Refreshed: snap.Refreshed.UTC().Format(time.RFC3339),
		NumAssets: len(snap.Series),
		Build:     common.ReadBuildInfo(),
	})
}

// ListAssets describes every known asset and the data loaded for it
func (h *Handler) ListAssets(c *fiber.Ctx) error {
	if _, ok := h.store.Snapshot(); !ok {
		return fiber.NewError(fiber.StatusServiceUnavailable, "data not loaded yet")
	}

	res := make([]AssetResponse, 0, len(asset.All()))
	for _, a := range asset.All() {
		s := h.store.Series(a)
		info := AssetResponse{
			Key:       a.Key(),
			Name:      a.Name(),
			BaseName:  a.BaseName(),
			Unit:      a.Unit(),
			Available: len(s) > 0,
			NumPoints: len(s),
		}

		if len(s) > 0 {
			info.Start = s.Start().String()
			info.End = s.End().String()
			info.Latest = a.FormatPrice(s[len(s)-1].Price, asset.Base)
		}

		res = append(res, info)
	}

	return c.JSON(res)
}

func (h *Handler) ready() error {
	if _, ok := h.store.Snapshot(); !ok {
		return fiber.NewError(fiber.StatusServiceUnavailable, "data not loaded yet")
	}
	return nil
}

func parseAsset(c *fiber.Ctx, param string) (asset.Asset, error) {
	a, err := asset.Parse(c.Params(param))
	if err != nil {
		return a, fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return a, nil
}
