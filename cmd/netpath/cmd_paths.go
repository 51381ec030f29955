// Copyright (C) 2025 The netpath authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/netpath/netpath/internal/topology"
	"github.com/netpath/netpath/net"
)

func runPaths(cmd *cobra.Command, args []string) error {
	origin, destination := args[0], args[1]
	queryID := uuid.NewString()

	n, err := topology.Load(topologyPath)
	if err != nil {
		return err
	}

	logger.Debug("topology loaded",
		"query_id", queryID,
		"file", topologyPath,
		"points", n.PointCount())

	paths, err := findPaths(cmd.Context(), n, origin, destination)
	if err != nil {
		logger.Error("query failed", "query_id", queryID, "error", err)
		return err
	}

	rendered := make([]string, len(paths))
	for i, path := range paths {
		rendered[i] = path.String()
	}
	sort.Strings(rendered)

	printHeading("%d path(s) from %s to %s", len(paths), origin, destination)
	for _, route := range rendered {
		printRoute(route)
	}

	logger.Info("query complete",
		"query_id", queryID,
		"origin", origin,
		"destination", destination,
		"paths", len(paths))
	return nil
}

// findPaths runs the configured query variant against the net.
func findPaths(ctx context.Context, n *topology.Net, origin, destination string) ([]net.Path[topology.Waypoint, string], error) {
	start := time.Now()
	defer func() {
		logger.Debug("search finished", "duration", time.Since(start))
	}()

	from := topology.Waypoint{Key: origin}
	to := topology.Waypoint{Key: destination}

	var opts []net.QueryOption
	if maxPaths > 0 {
		opts = append(opts, net.WithMaxPaths(maxPaths))
	}

	if parallel {
		return n.FindPathsParallel(ctx, from, to, opts...)
	}
	return n.FindPaths(ctx, from, to, opts...)
}
