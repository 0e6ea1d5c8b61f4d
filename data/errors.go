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

import "errors"

var (
	ErrTransport         = errors.New("transport failure")
	ErrRateLimited       = errors.New("rate limited by upstream")
	ErrUnexpectedStatus  = errors.New("HTTP request returned invalid status code")
	ErrNoData            = errors.New("no data returned")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrNoSources         = errors.New("no sources configured for asset")
	ErrBeginAfterEnd     = errors.New("invalid interval; begin after end date")
	ErrSnapshotNotReady  = errors.New("no data has been loaded yet")
	ErrUnsupportedTicker = errors.New("ticker not supported by provider")
)
