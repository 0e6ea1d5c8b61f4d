// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Program is the name of the command line binary
const Program = "ppower"

// set with -ldflags by the magefile
var (
	commitHash string
	buildDate  string
)

// Version is a SemVer 2.0.0 version; Suffix is empty for releases
type Version struct {
	Major  int
	Minor  int
	Patch  int
	Suffix string
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Suffix == "" {
		return s
	}

	s += "-" + v.Suffix
	if commitHash != "" {
		s += "+" + strings.ToLower(commitHash)
	}
	return s
}

// Dependency is one module linked into the binary
type Dependency struct {
	Path    string `json:"path"`
	Version string `json:"version"`
}

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string       `json:"version"`
	Commit    string       `json:"commit,omitempty"`
	BuildDate string       `json:"buildDate,omitempty"`
	GoVersion string       `json:"goVersion"`
	Platform  string       `json:"platform"`
	Deps      []Dependency `json:"-"`
}

// ReadBuildInfo collects the version, the ldflags stamps and the module
// list of the running binary. Deps is empty in test binaries.
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   "v" + CurrentVersion.String(),
		Commit:    commitHash,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			info.Deps = append(info.Deps, Dependency{Path: dep.Path, Version: dep.Version})
		}
	}

	sort.Slice(info.Deps, func(i, j int) bool {
		return info.Deps[i].Path < info.Deps[j].Path
	})

	return info
}

// BuildVersionString is the output of "ppower version"
func BuildVersionString() string {
	info := ReadBuildInfo()

	date := info.BuildDate
	if date == "" {
		date = "unknown"
	}
	commit := info.Commit
	if commit == "" {
		commit = "unknown"
	}

	var s strings.Builder
	fmt.Fprintf(&s, "%s %s %s\n\n", Program, info.Version, info.Platform)
	fmt.Fprintf(&s, "Build Date: %s\nCommit: %s\nBuilt with: %s\n", date, commit, info.GoVersion)

	if len(info.Deps) > 0 {
		s.WriteString("\n")
		table := tablewriter.NewWriter(&s)
		table.SetHeader([]string{"Dependency", "Version"})
		table.SetBorder(false)
		for _, dep := range info.Deps {
			table.Append([]string{dep.Path, dep.Version})
		}
		table.Render()
	}

	return s.String()
}
