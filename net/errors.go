// Copyright (C) 2025 The netpath authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package net implements an embedded engine that enumerates every simple
// path (no repeated point) between two points of an undirected graph.
//
// The graph ("net") is generic over any point type carrying a stable,
// comparable identifier. Callers assemble Nodes (a point plus its
// adjacency list) into a Net, then query it with FindPaths.
//
// # Ownership Model
//
// The net stores point values but does NOT interpret them beyond their
// identifiers:
//   - Points MUST NOT change identifier after being added to a Node
//   - Paths returned by queries are owned by the caller
//
// # Thread Safety
//
// A Net is immutable after New returns and can be queried from any number
// of goroutines without synchronization. Paths are persistent values: a
// query never shares mutable state between recursion branches.
//
// # Lifecycle
//
//  1. Build Nodes with NodeBuilder
//  2. Assemble with New(nodes, opts...)
//  3. Optionally check integrity with Validate()
//  4. Query with FindPaths / FindPathsParallel
package net

import "errors"

// Sentinel errors for net construction and queries.
var (
	// ErrPointNotFound is returned by FindPaths when the origin or the
	// destination has no node in the net. Both endpoints are validated
	// before the search starts.
	ErrPointNotFound = errors.New("point not found in net")

	// ErrNoPathFound is returned when both endpoints exist but the
	// exhaustive search produced zero complete paths between them.
	ErrNoPathFound = errors.New("no path found between points")

	// ErrPathNotBuilt is returned when the seed path for a query could
	// not be constructed.
	ErrPathNotBuilt = errors.New("path cannot be built")

	// ErrPathWithoutOrigin is returned by PathBuilder.Build when no
	// origin point was supplied. A path is never empty.
	ErrPathWithoutOrigin = errors.New("path has no origin point")

	// ErrNodeWithoutPoint is returned by NodeBuilder.Build when no point
	// was supplied. A node represents exactly one vertex.
	ErrNodeWithoutPoint = errors.New("node has no point")

	// ErrDuplicatePoint is returned by New when two nodes share a point
	// identifier. A net holds at most one node per identifier.
	ErrDuplicatePoint = errors.New("duplicate point in net")
)
