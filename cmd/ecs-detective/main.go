// SPDX-License-Identifier: Apache-2.0

// ecs-detective audits how consistently a codebase adopts the Elastic Common
// Schema field naming, classifying every field reference it finds as core,
// vendor, or custom.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
