// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/divyadesam/geosync/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
