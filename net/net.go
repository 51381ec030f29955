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
	"time"
)

// Options configures a Net at construction time.
type Options struct {
	// CacheCapacity is the number of query results kept in the LRU path
	// cache. Zero disables caching.
	CacheCapacity int
}

// Option is a functional option for configuring a Net.
type Option func(*Options)

// WithPathCache enables an LRU cache of completed query results.
//
// Cached results are shared between callers; this is safe because paths
// are immutable and the net never changes after New.
func WithPathCache(capacity int) Option {
	return func(o *Options) {
		o.CacheCapacity = capacity
	}
}

// QueryOptions configures a single FindPaths call.
type QueryOptions struct {
	// MaxPaths is the maximum number of complete paths to collect.
	// Zero (the default) collects every simple path, which preserves the
	// engine's completeness guarantee.
	MaxPaths int
}

// QueryOption is a functional option for a single query.
type QueryOption func(*QueryOptions)

// WithMaxPaths caps the number of paths a query collects.
//
// If n <= 0 the query is unbounded.
func WithMaxPaths(n int) QueryOption {
	return func(o *QueryOptions) {
		if n < 0 {
			n = 0
		}
		o.MaxPaths = n
	}
}

func applyQueryOptions(opts []QueryOption) QueryOptions {
	var options QueryOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// pathKey identifies a cached query result.
type pathKey[K comparable] struct {
	from     K
	to       K
	maxPaths int
}

// Net is an undirected graph of nodes and the query surface for simple
// path enumeration.
//
// A Net is assembled once by New and is read-only afterwards. All queries
// against the same Net may run concurrently.
type Net[P Point[K], K comparable] struct {
	nodes []Node[P, K]
	index map[K]int

	cache *LRUCache[pathKey[K], []Path[P, K]]
}

// New assembles a net from the given nodes.
//
// Description:
//
//	Indexes every node by its point identifier. The node slice is copied;
//	the caller may reuse it afterwards.
//
// Errors:
//
//	ErrDuplicatePoint - two nodes share a point identifier
func New[P Point[K], K comparable](nodes []Node[P, K], opts ...Option) (*Net[P, K], error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	n := &Net[P, K]{
		nodes: make([]Node[P, K], len(nodes)),
		index: make(map[K]int, len(nodes)),
	}
	copy(n.nodes, nodes)

	for i, node := range n.nodes {
		id := node.Point().ID()
		if _, exists := n.index[id]; exists {
			return nil, fmt.Errorf("%w: %v", ErrDuplicatePoint, id)
		}
		n.index[id] = i
	}

	if options.CacheCapacity > 0 {
		n.cache = NewLRUCache[pathKey[K], []Path[P, K]](options.CacheCapacity)
	}

	return n, nil
}

// PointCount returns the number of nodes in the net.
func (n *Net[P, K]) PointCount() int {
	return len(n.nodes)
}

// AdjacencyCount returns the total number of adjacency entries across all
// nodes. For a symmetric net this is twice the number of undirected edges.
func (n *Net[P, K]) AdjacencyCount() int {
	total := 0
	for _, node := range n.nodes {
		total += node.Degree()
	}
	return total
}

// GetNode retrieves the node representing the given point.
func (n *Net[P, K]) GetNode(p P) (Node[P, K], bool) {
	i, ok := n.index[p.ID()]
	if !ok {
		return Node[P, K]{}, false
	}
	return n.nodes[i], true
}

// CacheStats returns the path cache counters. ok is false when caching
// was not enabled at construction.
func (n *Net[P, K]) CacheStats() (stats CacheStats, ok bool) {
	if n.cache == nil {
		return CacheStats{}, false
	}
	return n.cache.Stats(), true
}

// Validate checks that every adjacency entry resolves to a node in the
// net.
//
// Description:
//
//	A neighbor listed on some node without a node of its own would make a
//	query panic mid-search (see mustNode). Run Validate once after
//	assembly to surface a malformed net as an ordinary error instead.
//	Edge symmetry is NOT checked: the engine traverses adjacency entries
//	exactly as listed, so an asymmetric net is legal but directional.
//
// Outputs:
//
//	error - Non-nil if an adjacency entry is dangling
func (n *Net[P, K]) Validate() error {
	for _, node := range n.nodes {
		for _, neighbor := range node.connected {
			if _, ok := n.index[neighbor.ID()]; !ok {
				return fmt.Errorf("node %v: adjacency entry %v has no node in the net",
					node.Point().ID(), neighbor.ID())
			}
		}
	}
	return nil
}

// FindPaths enumerates every simple path from origin to destination.
//
// Description:
//
//	Exhaustive depth-first backtracking. Each recursion branch extends its
//	own immutable path value, so no branch ever observes another's
//	progress. Result order follows adjacency order and is deterministic
//	for a given net.
//
// Inputs:
//
//	ctx - Cancels the search between recursion steps.
//	origin - Start point. Must be registered in the net.
//	destination - End point. Must be registered in the net.
//	opts - Query options (WithMaxPaths).
//
// Outputs:
//
//	[]Path - Every simple path found, in branch order.
//	error - Exactly one of the taxonomy below; never a partial success.
//
// Errors:
//
//	ErrPointNotFound - origin or destination has no node
//	ErrPathNotBuilt - the seed path could not be constructed
//	ErrNoPathFound - the search completed without finding any path
//	context errors - the search was cancelled
//
// A dangling adjacency entry discovered during the search panics: the
// neighbor came from the net's own data, so its absence means the net is
// malformed, not that the caller asked a bad question.
func (n *Net[P, K]) FindPaths(ctx context.Context, origin, destination P, opts ...QueryOption) ([]Path[P, K], error) {
	options := applyQueryOptions(opts)

	start := time.Now()
	ctx, span := startQuerySpan(ctx, "FindPaths", origin.ID(), destination.ID())
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

	key := pathKey[K]{from: origin.ID(), to: destination.ID(), maxPaths: options.MaxPaths}
	if n.cache != nil {
		if paths, ok := n.cache.Get(key); ok {
			finishQuerySpan(span, len(paths), true)
			recordQueryMetrics(ctx, time.Since(start), len(paths), true, true)
			return paths, nil
		}
	}

	seed, err := NewPathBuilder[P, K]().Start(origin).Build()
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrPathNotBuilt, err)
		return nil, failQuery(ctx, span, start, err)
	}

	budget := newPathBudget(options.MaxPaths)
	paths, err := n.extend(ctx, originNode, destination, seed, budget)
	if err != nil {
		return nil, failQuery(ctx, span, start, err)
	}
	if len(paths) == 0 {
		return nil, failQuery(ctx, span, start, ErrNoPathFound)
	}

	if n.cache != nil {
		n.cache.Set(key, paths)
	}

	finishQuerySpan(span, len(paths), false)
	recordQueryMetrics(ctx, time.Since(start), len(paths), false, true)
	return paths, nil
}

// extend explores every branch leaving from and returns the complete
// paths found beneath it, in adjacency order.
//
// walked is the path built so far; each neighbor gets its own extended
// copy. A nil result with nil error is a dead end.
func (n *Net[P, K]) extend(ctx context.Context, from Node[P, K], destination P, walked Path[P, K], budget *pathBudget) ([]Path[P, K], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := from.ConnectedPointsNotIn(walked)
	if len(candidates) == 0 {
		return nil, nil
	}

	var found []Path[P, K]
	for _, next := range candidates {
		if budget.exhausted() {
			break
		}

		node := n.mustNode(next)
		trying := walked.WithPoint(next)

		if trying.EndsWith(destination) {
			found = append(found, trying)
			budget.consume(1)
			continue
		}

		sub, err := n.extend(ctx, node, destination, trying, budget)
		if err != nil {
			return nil, err
		}
		found = append(found, sub...)
	}
	return found, nil
}

// mustNode resolves a point taken from the net's own adjacency data.
//
// The lookup cannot fail on a well-formed net, so failure here is an
// invariant violation and panics rather than returning an error the
// caller could be tempted to swallow.
func (n *Net[P, K]) mustNode(p P) Node[P, K] {
	node, ok := n.GetNode(p)
	if !ok {
		panic(fmt.Sprintf("net: adjacency references point %v with no node; net is malformed", p.ID()))
	}
	return node
}

// pathBudget tracks how many more complete paths a query may collect.
// A nil-bounded budget never exhausts.
type pathBudget struct {
	remaining int
	bounded   bool
}

func newPathBudget(maxPaths int) *pathBudget {
	return &pathBudget{remaining: maxPaths, bounded: maxPaths > 0}
}

func (b *pathBudget) exhausted() bool {
	return b.bounded && b.remaining <= 0
}

func (b *pathBudget) consume(n int) {
	if b.bounded {
		b.remaining -= n
	}
}
