//go:build mage

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

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "ppower"
	modulePath = "github.com/penny-vault/purchasing-power"
)

// go executable, override with GOEXE
var goexe = "go"

func init() {
	if exe := os.Getenv("GOEXE"); exe != "" {
		goexe = exe
	}
}

var Default = Build

// Build the ppower binary with the commit hash and build date stamped into
// common
func Build() error {
	fmt.Println("Building...")
	ldflags := fmt.Sprintf("-X %[1]s/common.commitHash=$COMMIT_HASH -X %[1]s/common.buildDate=$BUILD_DATE", modulePath)

	args := []string{"build", "-o", binaryName, "-ldflags", ldflags}
	if runtime.GOOS == "windows" {
		args = append(args, "-buildmode", "exe")
	}
	return sh.RunWith(stampEnv(), goexe, append(args, ".")...)
}

// Clean removes the binary
func Clean() error {
	fmt.Println("Cleaning...")
	return sh.Rm(binaryName)
}

// Check runs the formatter check, vet and the race enabled tests
func Check() {
	mg.SerialDeps(Fmt, Vet, TestRace)
}

// Test runs every ginkgo suite
func Test() error {
	fmt.Println("Go Test")
	return goTest()
}

// TestRace runs every ginkgo suite with the race detector
func TestRace() error {
	fmt.Println("Go Test Race")
	return goTest("-race")
}

// Vet runs go vet
func Vet() error {
	fmt.Println("Go Vet")
	if err := sh.Run(goexe, "vet", "./..."); err != nil {
		return fmt.Errorf("error running go vet: %w", err)
	}
	return nil
}

// Fmt fails when a package directory holds files gofmt would rewrite
func Fmt() error {
	fmt.Println("Go Format")

	dirs, err := sh.Output(goexe, "list", "-f", "{{.Dir}}", "./...")
	if err != nil {
		return err
	}

	args := append([]string{"-l"}, strings.Fields(dirs)...)
	unformatted, err := sh.Output("gofmt", args...)
	if err != nil {
		return fmt.Errorf("error running gofmt: %w", err)
	}

	if unformatted != "" {
		fmt.Println("The following files are not gofmt'ed:")
		fmt.Println(unformatted)
		return fmt.Errorf("improperly formatted go files")
	}
	return nil
}

func goTest(flags ...string) error {
	args := append([]string{"test"}, flags...)
	args = append(args, "./...")

	if mg.Verbose() {
		return sh.RunV(goexe, args...)
	}

	out, err := sh.Output(goexe, args...)
	if err != nil {
		fmt.Fprintln(os.Stderr, out)
	}
	return err
}

func stampEnv() map[string]string {
	hash, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return map[string]string{
		"COMMIT_HASH": hash,
		"BUILD_DATE":  time.Now().UTC().Format("2006-01-02T15:04:05Z0700"),
	}
}
