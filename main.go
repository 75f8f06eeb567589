// Copyright 2025 The HWTO Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/hwto/hwto/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
