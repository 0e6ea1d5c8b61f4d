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
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout bounds a single vendor request
const DefaultTimeout = 10 * time.Second

const userAgent = "Mozilla/5.0"

// NewHTTPClient returns the client shared by the vendor providers
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// requester performs GET requests on behalf of a provider, consulting the
// response cache first
type requester struct {
	client  *http.Client
	cache   *ResponseCache
	headers map[string]string
}

func newRequester(client *http.Client, cache *ResponseCache) requester {
	if client == nil {
		client = NewHTTPClient(DefaultTimeout)
	}
	return requester{
		client:  client,
		cache:   cache,
		headers: map[string]string{"User-Agent": userAgent},
	}
}

// getJSON fetches url and decodes the body into target. Errors are recorded
// on span.
func (r requester) getJSON(ctx context.Context, span trace.Span, url string, target interface{}) error {
	body, err := r.get(ctx, span, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not unmarshal json")
		return fmt.Errorf("%w: could not unmarshal json: %w", ErrNoData, err)
	}

	return nil
}

func (r requester) get(ctx context.Context, span trace.Span, url string) ([]byte, error) {
	if r.cache != nil {
		if body, ok := r.cache.Get(url); ok {
			span.SetAttributes(attribute.Bool("CacheHit", true))
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not build request")
		return nil, err
	}

	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "http request failed")
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("StatusCode", resp.StatusCode))

	if resp.StatusCode == http.StatusTooManyRequests {
		span.SetStatus(codes.Error, "rate limited")
		return nil, ErrRateLimited
	}

	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, "invalid response code")
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not read body")
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if r.cache != nil {
		if err := r.cache.Set(url, body); err != nil {
			span.RecordError(err)
		}
	}

	return body, nil
}
