// Copyright (C) 2025 The netpath authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package net

// Node is one vertex of a net: a point plus the points directly reachable
// from it.
//
// The adjacency list is ordered; that order determines the order of query
// results. An empty list is a valid isolated vertex. Nodes are created by
// NodeBuilder and never mutated after the owning Net is assembled.
type Node[P Point[K], K comparable] struct {
	point     P
	connected []P
}

// Point returns the vertex this node represents.
func (n Node[P, K]) Point() P {
	return n.point
}

// Is reports whether the node represents the given point, compared by
// identifier.
func (n Node[P, K]) Is(p P) bool {
	return samePoint(n.point, p)
}

// Degree returns the number of adjacency entries on the node.
func (n Node[P, K]) Degree() int {
	return len(n.connected)
}

// ConnectedPointsNotIn returns the node's neighbors that are not already
// present in path, preserving adjacency order.
//
// A nil result signals a dead end: every neighbor has been visited (or the
// node has none). This filter is the sole gate that keeps query paths free
// of repeated points.
func (n Node[P, K]) ConnectedPointsNotIn(path Path[P, K]) []P {
	var followable []P
	for _, p := range n.connected {
		if !path.Contains(p) {
			followable = append(followable, p)
		}
	}
	return followable
}

// NodeBuilder accumulates a point and its connections into a Node.
//
// Example:
//
//	node, err := net.NewNodeBuilder[City, string]().
//	    Point(madrid).
//	    ConnectedTo(paris, lisbon).
//	    Build()
type NodeBuilder[P Point[K], K comparable] struct {
	point     P
	hasPoint  bool
	connected []P
}

// NewNodeBuilder returns an empty builder.
func NewNodeBuilder[P Point[K], K comparable]() *NodeBuilder[P, K] {
	return &NodeBuilder[P, K]{}
}

// Point sets the vertex the node represents.
func (b *NodeBuilder[P, K]) Point(p P) *NodeBuilder[P, K] {
	b.point = p
	b.hasPoint = true
	return b
}

// ConnectedTo appends points to the node's adjacency list.
func (b *NodeBuilder[P, K]) ConnectedTo(points ...P) *NodeBuilder[P, K] {
	b.connected = append(b.connected, points...)
	return b
}

// Build produces the node.
//
// Returns ErrNodeWithoutPoint if Point was never called: a node must
// represent exactly one vertex.
func (b *NodeBuilder[P, K]) Build() (Node[P, K], error) {
	if !b.hasPoint {
		return Node[P, K]{}, ErrNodeWithoutPoint
	}
	connected := make([]P, len(b.connected))
	copy(connected, b.connected)
	return Node[P, K]{point: b.point, connected: connected}, nil
}
