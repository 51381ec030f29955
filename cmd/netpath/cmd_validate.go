// Copyright (C) 2025 The netpath authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"

	"github.com/netpath/netpath/internal/topology"
)

func runValidate(cmd *cobra.Command, args []string) error {
	n, err := topology.Load(topologyPath)
	if err != nil {
		return err
	}
	if err := n.Validate(); err != nil {
		return err
	}

	printHeading("topology OK: %s", topologyPath)
	printMuted("points:          %d", n.PointCount())
	printMuted("adjacency lists: %d entries", n.AdjacencyCount())

	logger.Info("topology validated",
		"file", topologyPath,
		"points", n.PointCount(),
		"adjacency", n.AdjacencyCount())
	return nil
}
