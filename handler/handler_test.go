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

package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/purchasing-power/asset"
	"github.com/penny-vault/purchasing-power/common"
	"github.com/penny-vault/purchasing-power/data"
	"github.com/penny-vault/purchasing-power/date"
	"github.com/penny-vault/purchasing-power/handler"
	"github.com/penny-vault/purchasing-power/router"
	"github.com/penny-vault/purchasing-power/series"
)

func get(app *fiber.App, url string, target interface{}) int {
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	Expect(err).To(BeNil())
	defer resp.Body.Close()

	if target != nil {
		body, err := io.ReadAll(resp.Body)
		Expect(err).To(BeNil())
		Expect(json.Unmarshal(body, target)).To(Succeed())
	}

	return resp.StatusCode
}

func priced(on date.Date, price, secondary float64) series.Datum {
	return series.Datum{Date: on, Price: price, Secondary: &secondary}
}

var _ = Describe("Handler", func() {
	var (
		app   *fiber.App
		store *data.Store
	)

	BeforeEach(func() {
		store = data.NewStore()
		app = fiber.New(fiber.Config{
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		})
		router.SetupRoutes(app, handler.New(store))
	})

	Context("before the first refresh", func() {
		It("should report pending health", func() {
			var health handler.HealthResponse
			Expect(get(app, "/api/v1/healthz", &health)).To(Equal(http.StatusServiceUnavailable))
			Expect(health.Status).To(Equal("pending"))
		})

		It("should refuse data requests", func() {
			Expect(get(app, "/api/v1/assets", nil)).To(Equal(http.StatusServiceUnavailable))
			Expect(get(app, "/api/v1/series/gold", nil)).To(Equal(http.StatusServiceUnavailable))
			Expect(get(app, "/api/v1/compare/gold/silver", nil)).To(Equal(http.StatusServiceUnavailable))
		})
	})

	Context("with a snapshot", func() {
		var cycleID uuid.UUID

		BeforeEach(func() {
			cycleID = uuid.New()
			store.Replace(&data.Snapshot{
				CycleID:   cycleID,
				Refreshed: time.Date(2021, 1, 5, 6, 0, 0, 0, time.UTC),
				Series: series.Map{
					asset.Gold: series.Series{
						priced(date.New(2021, 1, 1), 1800, 2340),
						priced(date.New(2021, 1, 2), 1900, 2470),
						priced(date.New(2021, 1, 3), 2000, 2600),
					},
					asset.Silver: series.Series{
						priced(date.New(2021, 1, 1), 20, 26),
						priced(date.New(2021, 1, 3), 25, 32.5),
					},
				},
			})
		})

		It("should report healthy", func() {
			var health handler.HealthResponse
			Expect(get(app, "/api/v1/healthz", &health)).To(Equal(http.StatusOK))
			Expect(health.Status).To(Equal("ok"))
			Expect(health.CycleID).To(Equal(cycleID.String()))
			Expect(health.Refreshed).To(Equal("2021-01-05T06:00:00Z"))
			Expect(health.NumAssets).To(Equal(2))
			Expect(health.Build.Version).To(Equal("v" + common.CurrentVersion.String()))
		})

		It("should list every asset", func() {
			var assets []handler.AssetResponse
			Expect(get(app, "/api/v1/assets", &assets)).To(Equal(http.StatusOK))
			Expect(assets).To(HaveLen(len(asset.All())))

			for _, info := range assets {
				switch info.Key {
				case "gold":
					Expect(info.Available).To(BeTrue())
					Expect(info.NumPoints).To(Equal(3))
					Expect(info.Start).To(Equal("2021-01-01"))
					Expect(info.End).To(Equal("2021-01-03"))
					Expect(info.Latest).To(Equal("$2,000.00 / oz"))
				case "bitcoin":
					Expect(info.Available).To(BeFalse())
					Expect(info.NumPoints).To(Equal(0))
				}
			}
		})

		It("should return a price series", func() {
			var resp handler.SeriesResponse
			Expect(get(app, "/api/v1/series/gold", &resp)).To(Equal(http.StatusOK))
			Expect(resp.Asset).To(Equal("gold"))
			Expect(resp.Currency).To(Equal("USD"))
			Expect(resp.Mode).To(Equal("price-per-unit"))
			Expect(resp.Points).To(HaveLen(3))
			Expect(resp.Points[0].Value).To(Equal(1800.0))
			Expect(resp.Points[0].Date).To(Equal(date.New(2021, 1, 1)))
		})

		It("should return the secondary currency", func() {
			var resp handler.SeriesResponse
			Expect(get(app, "/api/v1/series/gold?currency=cad", &resp)).To(Equal(http.StatusOK))
			Expect(resp.Currency).To(Equal("CAD"))
			Expect(resp.Points[0].Value).To(Equal(2340.0))
		})

		It("should trim to the requested range", func() {
			var resp handler.SeriesResponse
			Expect(get(app, "/api/v1/series/gold?begin=2021-01-02&end=2021-01-02", &resp)).To(Equal(http.StatusOK))
			Expect(resp.Points).To(HaveLen(1))
			Expect(resp.Points[0].Value).To(Equal(1900.0))
		})

		It("should return an empty series for an unavailable asset", func() {
			var resp handler.SeriesResponse
			Expect(get(app, "/api/v1/series/bitcoin", &resp)).To(Equal(http.StatusOK))
			Expect(resp.Points).To(BeEmpty())
		})

		It("should reject unknown assets and bad parameters", func() {
			Expect(get(app, "/api/v1/series/unobtainium", nil)).To(Equal(http.StatusNotFound))
			Expect(get(app, "/api/v1/series/gold?currency=eur", nil)).To(Equal(http.StatusBadRequest))
			Expect(get(app, "/api/v1/series/gold?begin=yesterday", nil)).To(Equal(http.StatusBadRequest))
			Expect(get(app, "/api/v1/series/gold?begin=2021-02-01&end=2021-01-01", nil)).To(Equal(http.StatusBadRequest))
			Expect(get(app, "/api/v1/compare/gold/unobtainium", nil)).To(Equal(http.StatusNotFound))
			Expect(get(app, "/api/v1/compare/gold/silver?mode=sideways", nil)).To(Equal(http.StatusBadRequest))
			Expect(get(app, "/api/v1/compare/gold/silver?percent=maybe", nil)).To(Equal(http.StatusBadRequest))
		})

		It("should compare two assets", func() {
			var resp handler.CompareResponse
			Expect(get(app, "/api/v1/compare/gold/silver", &resp)).To(Equal(http.StatusOK))
			Expect(resp.Mode).To(Equal("units-per-currency"))
			Expect(resp.Points).To(HaveLen(3))
			Expect(resp.Points[0].Value).To(BeNumerically("~", 90.0, 1e-9))
			Expect(resp.Stats.Exact).To(Equal(2))
			Expect(resp.Stats.Nearest).To(Equal(1))
			Expect(resp.Low).To(BeNumerically("<", 0.0))
			Expect(resp.High).To(BeNumerically(">", 95.0))
		})

		It("should compare in price per unit mode", func() {
			var resp handler.CompareResponse
			Expect(get(app, "/api/v1/compare/gold/silver?mode=price", &resp)).To(Equal(http.StatusOK))
			Expect(resp.Points[0].Value).To(BeNumerically("~", 20.0/1800.0, 1e-12))
		})

		It("should rebase to the percentage change", func() {
			var resp handler.CompareResponse
			Expect(get(app, "/api/v1/compare/gold/silver?percent=true&since=2021-01-03", &resp)).To(Equal(http.StatusOK))
			Expect(resp.Percent).To(BeTrue())
			Expect(resp.Points).To(HaveLen(1))
			Expect(resp.Points[0].Value).To(BeNumerically("~", 0.0, 1e-12))
		})

		It("should rebase to the first point without a since date", func() {
			var resp handler.CompareResponse
			Expect(get(app, "/api/v1/compare/gold/silver?percent=1", &resp)).To(Equal(http.StatusOK))
			Expect(resp.Points).To(HaveLen(3))
			Expect(resp.Points[0].Value).To(BeNumerically("~", 0.0, 1e-12))
			Expect(resp.Points[2].Value).To(BeNumerically("~", (80.0/90.0-1)*100, 1e-9))
		})

		It("should drop points before since", func() {
			var resp handler.CompareResponse
			Expect(get(app, "/api/v1/compare/gold/silver?since=2021-01-02", &resp)).To(Equal(http.StatusOK))
			Expect(resp.Points).To(HaveLen(2))
			Expect(resp.Points[0].Date).To(Equal(date.New(2021, 1, 2)))
		})
	})
})
