// Copyright (C) 2025 The netpath authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package net

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Parallel query configuration constants.
const (
	// parallelFanoutMin is the minimum number of first-hop branches needed
	// to engage worker goroutines. A single branch runs sequentially.
	parallelFanoutMin = 2

	// maxParallelWorkers caps worker goroutines regardless of CPU count.
	// Branch exploration is memory-bound; more workers stop paying off.
	maxParallelWorkers = 8
)

// FindPathsParallel enumerates every simple path from origin to
// destination, exploring first-hop branches concurrently.
//
// Description:
//
//	Same contract, result set and result order as FindPaths. Each branch
//	leaving the origin extends its own immutable path value, so branches
//	share nothing but the read-only net and can run on separate
//	goroutines. Branch results are stitched back together in adjacency
//	order, keeping the output deterministic.
//
// Limitations:
//   - WithMaxPaths is applied after the branches are merged, so parallel
//     queries may explore more of the net than the sequential form
//     before truncating.
//   - Nets with a single first-hop branch fall back to sequential search.
//
// Thread Safety: safe for concurrent use.
func (n *Net[P, K]) FindPathsParallel(ctx context.Context, origin, destination P, opts ...QueryOption) ([]Path[P, K], error) {
	options := applyQueryOptions(opts)

	start := time.Now()
	ctx, span := startQuerySpan(ctx, "FindPathsParallel", origin.ID(), destination.ID())
	defer span.End()

	originNode, ok := n.GetNode(origin)
	if !ok {
		err := fmt.Errorf("%w: origin %v", ErrPointNotFound, origin.ID())
		return nil, failQuery(ctx, span, start, err)
	}
	if _, ok := n.GetNode(destination); !ok {
		err := fmt.Errorf("%w: destination %v", ErrPointNotFound, destination.ID())
		return nil, failQuery(ctx, span, start, err)
	}

	seed, err := NewPathBuilder[P, K]().Start(origin).Build()
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrPathNotBuilt, err)
		return nil, failQuery(ctx, span, start, err)
	}

	candidates := originNode.ConnectedPointsNotIn(seed)
	if len(candidates) < parallelFanoutMin {
		branch, err := n.extend(ctx, originNode, destination, seed, newPathBudget(options.MaxPaths))
		if err != nil {
			return nil, failQuery(ctx, span, start, err)
		}
		if len(branch) == 0 {
			return nil, failQuery(ctx, span, start, ErrNoPathFound)
		}
		finishQuerySpan(span, len(branch), false)
		recordQueryMetrics(ctx, time.Since(start), len(branch), false, true)
		return branch, nil
	}

	branches := make([][]Path[P, K], len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(min(maxParallelWorkers, runtime.NumCPU()))

	for i, next := range candidates {
		group.Go(func() error {
			node := n.mustNode(next)
			trying := seed.WithPoint(next)

			if trying.EndsWith(destination) {
				branches[i] = []Path[P, K]{trying}
				return nil
			}

			// Branch budgets are unbounded; the global cap is applied
			// after the merge to keep ordering identical to FindPaths.
			sub, err := n.extend(groupCtx, node, destination, trying, newPathBudget(0))
			if err != nil {
				return err
			}
			branches[i] = sub
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, failQuery(ctx, span, start, err)
	}

	var paths []Path[P, K]
	budget := newPathBudget(options.MaxPaths)
	for _, branch := range branches {
		for _, path := range branch {
			if budget.exhausted() {
				break
			}
			paths = append(paths, path)
			budget.consume(1)
		}
	}

	if len(paths) == 0 {
		return nil, failQuery(ctx, span, start, ErrNoPathFound)
	}

	finishQuerySpan(span, len(paths), false)
	recordQueryMetrics(ctx, time.Since(start), len(paths), false, true)
	return paths, nil
}
