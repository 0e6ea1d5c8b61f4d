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
	"encoding/hex"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/blake3"

	"github.com/penny-vault/purchasing-power/common"
	"github.com/penny-vault/purchasing-power/date"
)

// ResponseCache keeps compressed vendor responses in memory for the life of
// the process. Keys include the current day so an entry is never served after
// midnight UTC.
type ResponseCache struct {
	lru *lru.Cache
	now func() time.Time
}

// NewResponseCache creates a cache holding at most size responses
func NewResponseCache(size int) (*ResponseCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &ResponseCache{
		lru: cache,
		now: time.Now,
	}, nil
}

// Get returns the cached body for url
func (cache *ResponseCache) Get(url string) ([]byte, bool) {
	val, ok := cache.lru.Get(cache.key(url))
	if !ok {
		return nil, false
	}

	body, err := common.Decompress(val.([]byte))
	if err != nil {
		log.Warn().Err(err).Str("Url", url).Msg("could not decompress cached response")
		cache.lru.Remove(cache.key(url))
		return nil, false
	}

	return body, true
}

// Set stores the body for url
func (cache *ResponseCache) Set(url string, body []byte) error {
	compressed, err := common.Compress(body)
	if err != nil {
		return err
	}

	cache.lru.Add(cache.key(url), compressed)
	return nil
}

// Len returns the number of cached responses
func (cache *ResponseCache) Len() int {
	return cache.lru.Len()
}

func (cache *ResponseCache) key(url string) string {
	today := date.FromTime(cache.now())
	sum := blake3.Sum256([]byte(today.String() + " " + url))
	return hex.EncodeToString(sum[:])
}
