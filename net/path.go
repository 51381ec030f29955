// Copyright (C) 2025 The netpath authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package net

import (
	"fmt"
	"strings"
)

// RenderSeparator joins point identifiers in a path's render form.
const RenderSeparator = "-"

// Path is an ordered, non-repeating sequence of points representing a walk
// through a net.
//
// Paths are persistent values: WithPoint returns a new Path with its own
// backing array and leaves the receiver untouched. Sibling recursion
// branches of a query can therefore extend the same prefix without ever
// observing each other's state.
//
// A Path always holds at least its origin point; build one with
// PathBuilder.
type Path[P Point[K], K comparable] struct {
	points []P
}

// WithPoint returns a new path equal to the receiver plus p appended at
// the end.
//
// Membership is NOT checked here; the query keeps paths simple by only
// extending into points that ConnectedPointsNotIn reported as unvisited.
func (path Path[P, K]) WithPoint(p P) Path[P, K] {
	points := make([]P, len(path.points)+1)
	copy(points, path.points)
	points[len(path.points)] = p
	return Path[P, K]{points: points}
}

// Contains reports whether p is already present in the path.
func (path Path[P, K]) Contains(p P) bool {
	for _, walked := range path.points {
		if samePoint(walked, p) {
			return true
		}
	}
	return false
}

// EndsWith reports whether the path's last point is p.
func (path Path[P, K]) EndsWith(p P) bool {
	if len(path.points) == 0 {
		return false
	}
	return samePoint(path.points[len(path.points)-1], p)
}

// Len returns the number of points in the path.
func (path Path[P, K]) Len() int {
	return len(path.points)
}

// Points returns a copy of the path's point sequence in walk order.
func (path Path[P, K]) Points() []P {
	points := make([]P, len(path.points))
	copy(points, path.points)
	return points
}

// String renders the path as its point identifiers joined by
// RenderSeparator, e.g. "A-B-C".
func (path Path[P, K]) String() string {
	ids := make([]string, len(path.points))
	for i, p := range path.points {
		ids[i] = fmt.Sprint(p.ID())
	}
	return strings.Join(ids, RenderSeparator)
}

// PathBuilder seeds a path with its origin point.
type PathBuilder[P Point[K], K comparable] struct {
	origin P
	seeded bool
}

// NewPathBuilder returns an empty builder.
func NewPathBuilder[P Point[K], K comparable]() *PathBuilder[P, K] {
	return &PathBuilder[P, K]{}
}

// Start sets the path's origin point.
func (b *PathBuilder[P, K]) Start(p P) *PathBuilder[P, K] {
	b.origin = p
	b.seeded = true
	return b
}

// Build produces the single-point initial path.
//
// Returns ErrPathWithoutOrigin if Start was never called.
func (b *PathBuilder[P, K]) Build() (Path[P, K], error) {
	if !b.seeded {
		return Path[P, K]{}, ErrPathWithoutOrigin
	}
	return Path[P, K]{points: []P{b.origin}}, nil
}
