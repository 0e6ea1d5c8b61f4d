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

package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/penny-vault/purchasing-power/observability/opentelemetry"
)

// NewLogger creates a middleware that traces and logs every request
func NewLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, span := otel.Tracer(opentelemetry.Name).Start(c.UserContext(), c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(opentelemetry.SpanAttributesFromFiber(c)...),
		)
		defer span.End()
		c.SetUserContext(ctx)

		start := time.Now()

		// Handle request and run the error handler so the final status code
		// is logged
		if chainErr := c.Next(); chainErr != nil {
			span.RecordError(chainErr)
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		code := c.Response().StatusCode()
		span.SetAttributes(
			attribute.Int("StatusCode", code),
			attribute.String("Route", c.Route().Path),
		)

		var event *zerolog.Event
		msg := "processed HTTP request"
		switch {
		case code >= fiber.StatusOK && code < fiber.StatusMultipleChoices:
			event = log.Info()
		case code >= fiber.StatusMultipleChoices && code < fiber.StatusBadRequest:
			event = log.Info()
			msg = "forward HTTP request"
		case code >= fiber.StatusBadRequest && code < fiber.StatusInternalServerError:
			event = log.Warn()
			msg = "bad HTTP request"
		default:
			event = log.Error()
			msg = "internal server error"
			span.SetStatus(codes.Error, msg)
		}

		event.
			Int("StatusCode", code).
			Dur("Latency", time.Since(start).Round(time.Millisecond)).
			Str("IP", c.IP()).
			Str("Method", c.Method()).
			Str("Path", c.Path()).
			Str("Route", c.Route().Path).
			Str("URL", c.OriginalURL()).
			Str("UserAgent", c.Get(fiber.HeaderUserAgent)).
			Str("QueryStringParams", c.Request().URI().QueryArgs().String()).
			Int("NumBytesSent", len(c.Response().Body())).
			Msg(msg)

		return nil
	}
}
