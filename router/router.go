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

package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/penny-vault/purchasing-power/handler"
)

// SetupRoutes registers the API under /api/v1
func SetupRoutes(app *fiber.App, h *handler.Handler) {
	api := app.Group("/api/v1")
	api.Get("/healthz", h.Healthz)
	api.Get("/assets", h.ListAssets)
	api.Get("/series/:asset", h.GetSeries)
	api.Get("/compare/:a/:b", h.Compare)
}
