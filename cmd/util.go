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

package cmd

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/penny-vault/purchasing-power/asset"
	"github.com/penny-vault/purchasing-power/data"
	"github.com/penny-vault/purchasing-power/series"
)

// newManager builds a data manager from the current configuration
func newManager() (*data.Manager, error) {
	cfg, err := data.ConfigFromViper()
	if err != nil {
		return nil, err
	}

	return data.NewManager(cfg)
}

// restrict limits manager to the assets needed to produce requested. The
// composite index pulls in its components.
func restrict(manager *data.Manager, requested ...asset.Asset) {
	needed := make(map[asset.Asset]bool, len(requested))
	basket := false
	for _, a := range requested {
		needed[a] = true
		if a == manager.Index.Asset {
			basket = true
		}
	}

	if basket {
		for _, c := range manager.Index.Components {
			needed[c.Asset] = true
		}
	} else {
		manager.Index = series.Index{}
	}

	for a := range manager.Sources {
		if !needed[a] {
			delete(manager.Sources, a)
		}
	}

	for a := range manager.History {
		if !needed[a] {
			delete(manager.History, a)
		}
	}
}

// refresh runs a single refresh cycle for the requested assets, or every
// asset if none are given
func refresh(ctx context.Context, requested ...asset.Asset) (*data.Snapshot, error) {
	manager, err := newManager()
	if err != nil {
		return nil, err
	}

	if len(requested) > 0 {
		restrict(manager, requested...)
	}

	log.Info().Str("Begin", manager.Begin.String()).Str("End", manager.End.String()).Int("NumAssets", len(manager.Sources)).Msg("loading prices")
	return manager.Refresh(ctx)
}
