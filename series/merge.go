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

package series

import "fmt"

// Merge combines two series of the same asset. Every date present in either
// input appears once in the result; when both report a date the datum from
// preferred is used.
func Merge(preferred, fallback Series) (Series, error) {
	if err := preferred.Validate(); err != nil {
		return nil, fmt.Errorf("preferred: %w", err)
	}
	if err := fallback.Validate(); err != nil {
		return nil, fmt.Errorf("fallback: %w", err)
	}

	res := make(Series, 0, len(preferred)+len(fallback))
	ii, jj := 0, 0
	for ii < len(preferred) && jj < len(fallback) {
		p, f := preferred[ii], fallback[jj]
		switch p.Date.Compare(f.Date) {
		case -1:
			res = append(res, p)
			ii++
		case 1:
			res = append(res, f)
			jj++
		default:
			res = append(res, p)
			ii++
			jj++
		}
	}

	res = append(res, preferred[ii:]...)
	res = append(res, fallback[jj:]...)

	return res, nil
}
