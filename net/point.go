// Copyright (C) 2025 The netpath authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package net

// Point is the capability contract for graph vertices.
//
// Any value type exposing a stable, comparable identifier can participate
// in a net. Two Point values with equal identifiers are the same vertex
// everywhere in this package, regardless of any other field.
//
// The identifier must not change while the point is registered in a Net.
type Point[K comparable] interface {
	// ID returns the point's identifier.
	ID() K
}

// samePoint reports whether two points denote the same vertex.
func samePoint[P Point[K], K comparable](a, b P) bool {
	return a.ID() == b.ID()
}
