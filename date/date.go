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

// Package date provides a calendar date with day granularity and no
// time-of-day or timezone component.
package date

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Format is the ISO-8601 layout used to print dates
const Format = "2006-01-02"

// lenient layout accepted by Parse, allows 2021-1-5
const readFormat = "2006-1-2"

const secondsPerDay = 24 * 60 * 60

// Date represents a single calendar day
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day. Out of
// range values roll over the same way time.Date does.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.Time().Date()
	return d
}

// FromTime returns the calendar day of t in UTC
func FromTime(t time.Time) Date {
	return New(t.UTC().Date())
}

// FromUnix returns the UTC calendar day of the unix timestamp sec
func FromUnix(sec int64) Date {
	return FromTime(time.Unix(sec, 0))
}

// Today returns the current UTC date
func Today() Date {
	return FromTime(time.Now())
}

// Parse a date in YYYY-MM-DD form
func Parse(str string) (Date, error) {
	t, err := time.Parse(readFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, Format, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Time returns midnight UTC of the day
func (d Date) Time() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

// IsZero reports whether d is the zero Date
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether the day d is before x
func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }

// After reports whether the day d is after x
func (d Date) After(x Date) bool { return d.Compare(x) > 0 }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after x
func (d Date) Compare(x Date) int {
	switch {
	case d.y != x.y:
		return cmpInt(d.y, x.y)
	case d.m != x.m:
		return cmpInt(int(d.m), int(x.m))
	default:
		return cmpInt(d.d, x.d)
	}
}

// Add returns the date n days after d (n may be negative)
func (d Date) Add(n int) Date {
	return New(d.y, d.m, d.d+n)
}

// DaysSinceEpoch returns the number of days between 1970-01-01 and d
func (d Date) DaysSinceEpoch() int64 {
	return d.Time().Unix() / secondsPerDay
}

// Sub returns the signed number of days from x to d
func (d Date) Sub(x Date) int {
	return int(d.DaysSinceEpoch() - x.DaysSinceEpoch())
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return d.Time().Format(Format)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := Parse(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
