// Copyright (C) 2025 The netpath authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command netpath enumerates simple paths in YAML-defined nets.
//
// Usage:
//
//	netpath paths A C --topology city.yaml
//	netpath paths A C --topology city.yaml --parallel --max-paths 10
//	netpath validate --topology city.yaml
//	netpath watch A C --topology city.yaml --metrics-addr :9464
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}
