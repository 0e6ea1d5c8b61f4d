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
	"sync"

	"github.com/penny-vault/purchasing-power/asset"
	"github.com/penny-vault/purchasing-power/series"
)

// Store holds the most recent snapshot. Readers never observe a partially
// refreshed map: a refresh builds a new snapshot and swaps it in whole.
type Store struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{}
}

// Replace publishes a new snapshot
func (store *Store) Replace(snap *Snapshot) {
	if snap == nil {
		return
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.snapshot = snap
}

// Snapshot returns the current snapshot; ok is false until the first refresh
// completes
func (store *Store) Snapshot() (*Snapshot, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.snapshot, store.snapshot != nil
}

// Series returns the series of a, or an empty series if it is unavailable
func (store *Store) Series(a asset.Asset) series.Series {
	snap, ok := store.Snapshot()
	if !ok {
		return series.Series{}
	}
	return snap.Series.Get(a)
}

// Aligned pairs every observation of a with the nearest observation of b and
// returns the ratio of the two prices
func (store *Store) Aligned(a, b asset.Asset, mode series.RatioMode) ([]series.Point, series.AlignStats, error) {
	if !a.Valid() {
		return nil, series.AlignStats{}, asset.ErrUnknownAsset
	}
	if !b.Valid() {
		return nil, series.AlignStats{}, asset.ErrUnknownAsset
	}
	return series.Align(store.Series(a), store.Series(b), mode)
}
