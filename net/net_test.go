// Copyright (C) 2025 The netpath authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package net

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
)

// simplePoint is the minimal Point implementation used across the package
// tests: the identifier is the point itself.
type simplePoint string

func (p simplePoint) ID() string { return string(p) }

// buildNet assembles a net from an ordered adjacency table. Each entry is
// "id:neighbor,neighbor,...", e.g. "B:A,C".
func buildNet(t *testing.T, adjacency ...string) *Net[simplePoint, string] {
	t.Helper()
	nodes := buildNodes(t, adjacency...)
	n, err := New(nodes)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	return n
}

func buildNodes(t *testing.T, adjacency ...string) []Node[simplePoint, string] {
	t.Helper()
	var nodes []Node[simplePoint, string]
	for _, entry := range adjacency {
		id, rest, _ := strings.Cut(entry, ":")
		builder := NewNodeBuilder[simplePoint, string]().Point(simplePoint(id))
		if rest != "" {
			for _, neighbor := range strings.Split(rest, ",") {
				builder.ConnectedTo(simplePoint(neighbor))
			}
		}
		node, err := builder.Build()
		if err != nil {
			t.Fatalf("Build() unexpected error for %q: %v", entry, err)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// renderSorted renders each path, sorts, and joins with " + " so result
// sets can be compared as a single string.
func renderSorted(paths []Path[simplePoint, string]) string {
	rendered := make([]string, len(paths))
	for i, path := range paths {
		rendered[i] = path.String()
	}
	sort.Strings(rendered)
	return strings.Join(rendered, " + ")
}

func TestNew(t *testing.T) {
	t.Run("indexes every node", func(t *testing.T) {
		n := buildNet(t, "A:B", "B:A")

		if n.PointCount() != 2 {
			t.Errorf("PointCount() = %d, expected 2", n.PointCount())
		}
		if n.AdjacencyCount() != 2 {
			t.Errorf("AdjacencyCount() = %d, expected 2", n.AdjacencyCount())
		}
		if _, ok := n.GetNode(simplePoint("A")); !ok {
			t.Error("GetNode(\"A\") not found")
		}
		if _, ok := n.GetNode(simplePoint("C")); ok {
			t.Error("GetNode(\"C\") found, expected absent")
		}
	})

	t.Run("rejects duplicate points", func(t *testing.T) {
		nodes := buildNodes(t, "A:B", "B:A", "A:")

		_, err := New(nodes)
		if !errors.Is(err, ErrDuplicatePoint) {
			t.Fatalf("New() error = %v, expected ErrDuplicatePoint", err)
		}
	})
}

func TestNet_Validate(t *testing.T) {
	t.Run("well-formed net", func(t *testing.T) {
		n := buildNet(t, "A:B", "B:A,C", "C:B")

		if err := n.Validate(); err != nil {
			t.Errorf("Validate() unexpected error: %v", err)
		}
	})

	t.Run("dangling adjacency", func(t *testing.T) {
		n := buildNet(t, "A:B,X", "B:A")

		if err := n.Validate(); err == nil {
			t.Error("Validate() = nil, expected dangling adjacency error")
		}
	})
}

// Given this net:
// A - B
func TestFindPaths_TwoConnectedPoints(t *testing.T) {
	n := buildNet(t, "A:B", "B:A")

	paths, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("B"))
	if err != nil {
		t.Fatalf("FindPaths() unexpected error: %v", err)
	}
	if got := renderSorted(paths); got != "A-B" {
		t.Errorf("paths = %q, expected %q", got, "A-B")
	}
}

// Given this net of non connected points:
// A  B
func TestFindPaths_DisconnectedPoints(t *testing.T) {
	n := buildNet(t, "A:", "B:")

	_, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("B"))
	if !errors.Is(err, ErrNoPathFound) {
		t.Fatalf("FindPaths() error = %v, expected ErrNoPathFound", err)
	}
}

// Given this net:
// A - B - C
func TestFindPaths_Chain(t *testing.T) {
	n := buildNet(t, "A:B", "B:A,C", "C:B")

	paths, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("C"))
	if err != nil {
		t.Fatalf("FindPaths() unexpected error: %v", err)
	}
	if got := renderSorted(paths); got != "A-B-C" {
		t.Errorf("paths = %q, expected %q", got, "A-B-C")
	}
}

// Given this net:
// A - B - C
//  \     /
//   \   /
//     D
func TestFindPaths_Diamond(t *testing.T) {
	n := buildNet(t, "A:B,D", "B:A,C", "C:B,D", "D:A,C")

	paths, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("C"))
	if err != nil {
		t.Fatalf("FindPaths() unexpected error: %v", err)
	}
	if got := renderSorted(paths); got != "A-B-C + A-D-C" {
		t.Errorf("paths = %q, expected %q", got, "A-B-C + A-D-C")
	}
}

// Given this net:
// A - B - C
//  \  |  /
//   \ | /
//     D
func TestFindPaths_DenseDiamond(t *testing.T) {
	n := denseDiamond(t)

	paths, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("C"))
	if err != nil {
		t.Fatalf("FindPaths() unexpected error: %v", err)
	}

	expected := "A-B-C + A-B-D-C + A-D-B-C + A-D-C"
	if got := renderSorted(paths); got != expected {
		t.Errorf("paths = %q, expected %q", got, expected)
	}
}

func TestFindPaths_UnknownEndpoints(t *testing.T) {
	n := buildNet(t, "A:B", "B:A")

	t.Run("unknown origin", func(t *testing.T) {
		_, err := n.FindPaths(context.Background(), simplePoint("X"), simplePoint("A"))
		if !errors.Is(err, ErrPointNotFound) {
			t.Fatalf("FindPaths() error = %v, expected ErrPointNotFound", err)
		}
	})

	t.Run("unknown destination", func(t *testing.T) {
		_, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("X"))
		if !errors.Is(err, ErrPointNotFound) {
			t.Fatalf("FindPaths() error = %v, expected ErrPointNotFound", err)
		}
	})
}

func TestFindPaths_ResultOrderIsAdjacencyOrder(t *testing.T) {
	n := denseDiamond(t)

	paths, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("C"))
	if err != nil {
		t.Fatalf("FindPaths() unexpected error: %v", err)
	}

	// Branch order: A's adjacency lists B before D, and within each branch
	// the sub-branches follow that node's adjacency order.
	expected := []string{"A-B-C", "A-B-D-C", "A-D-C", "A-D-B-C"}
	if len(paths) != len(expected) {
		t.Fatalf("len(paths) = %d, expected %d", len(paths), len(expected))
	}
	for i, want := range expected {
		if got := paths[i].String(); got != want {
			t.Errorf("paths[%d] = %q, expected %q", i, got, want)
		}
	}
}

func TestFindPaths_NoRevisitInvariant(t *testing.T) {
	n := denseDiamond(t)

	paths, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("C"))
	if err != nil {
		t.Fatalf("FindPaths() unexpected error: %v", err)
	}

	for _, path := range paths {
		seen := make(map[string]bool)
		for _, p := range path.Points() {
			if seen[p.ID()] {
				t.Errorf("path %q revisits point %q", path, p.ID())
			}
			seen[p.ID()] = true
		}
		if !path.EndsWith(simplePoint("C")) {
			t.Errorf("path %q does not end at destination", path)
		}
		if points := path.Points(); points[0].ID() != "A" {
			t.Errorf("path %q does not start at origin", path)
		}
	}
}

func TestFindPaths_Soundness(t *testing.T) {
	n := denseDiamond(t)

	paths, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("C"))
	if err != nil {
		t.Fatalf("FindPaths() unexpected error: %v", err)
	}

	// Every step must follow a listed adjacency entry.
	for _, path := range paths {
		points := path.Points()
		for i := 0; i < len(points)-1; i++ {
			node, ok := n.GetNode(points[i])
			if !ok {
				t.Fatalf("path %q steps through unknown point %q", path, points[i].ID())
			}
			connected := false
			for _, neighbor := range node.ConnectedPointsNotIn(Path[simplePoint, string]{}) {
				if neighbor.ID() == points[i+1].ID() {
					connected = true
					break
				}
			}
			if !connected {
				t.Errorf("path %q uses edge %s-%s absent from adjacency data",
					path, points[i].ID(), points[i+1].ID())
			}
		}
	}
}

func TestFindPaths_Determinism(t *testing.T) {
	n := denseDiamond(t)

	first, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("C"))
	if err != nil {
		t.Fatalf("FindPaths() unexpected error: %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("C"))
		if err != nil {
			t.Fatalf("FindPaths() unexpected error on run %d: %v", i, err)
		}
		if renderSorted(again) != renderSorted(first) {
			t.Fatalf("run %d returned %q, first run returned %q",
				i, renderSorted(again), renderSorted(first))
		}
	}
}

func TestFindPaths_MaxPaths(t *testing.T) {
	n := denseDiamond(t)

	paths, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("C"),
		WithMaxPaths(2))
	if err != nil {
		t.Fatalf("FindPaths() unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("len(paths) = %d, expected 2", len(paths))
	}
	// Truncation keeps branch order: both paths come from the B branch.
	if got := paths[0].String(); got != "A-B-C" {
		t.Errorf("paths[0] = %q, expected %q", got, "A-B-C")
	}
	if got := paths[1].String(); got != "A-B-D-C" {
		t.Errorf("paths[1] = %q, expected %q", got, "A-B-D-C")
	}
}

func TestFindPaths_Cancellation(t *testing.T) {
	n := denseDiamond(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := n.FindPaths(ctx, simplePoint("A"), simplePoint("C"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("FindPaths() error = %v, expected context.Canceled", err)
	}
}

func TestFindPaths_PathCache(t *testing.T) {
	nodes := buildNodes(t, "A:B,D", "B:A,C,D", "C:B,D", "D:A,C,B")
	n, err := New(nodes, WithPathCache(16))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	first, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("C"))
	if err != nil {
		t.Fatalf("FindPaths() unexpected error: %v", err)
	}
	second, err := n.FindPaths(context.Background(), simplePoint("A"), simplePoint("C"))
	if err != nil {
		t.Fatalf("FindPaths() unexpected error: %v", err)
	}

	if renderSorted(first) != renderSorted(second) {
		t.Errorf("cached result %q differs from computed %q",
			renderSorted(second), renderSorted(first))
	}

	stats, ok := n.CacheStats()
	if !ok {
		t.Fatal("CacheStats() ok = false, expected caching enabled")
	}
	if stats.Hits != 1 {
		t.Errorf("Hits = %d, expected 1", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, expected 1", stats.Misses)
	}
}

func TestFindPaths_MalformedNetPanics(t *testing.T) {
	// X is listed as B's neighbor but has no node of its own. The search
	// reaches it from the net's own adjacency data, which must panic.
	n := buildNet(t, "A:B", "B:A,X,C", "C:B")

	defer func() {
		if recover() == nil {
			t.Error("FindPaths() did not panic on dangling adjacency")
		}
	}()
	_, _ = n.FindPaths(context.Background(), simplePoint("A"), simplePoint("C"))
}

// denseDiamond connects every pair of points except A-C.
func denseDiamond(t *testing.T) *Net[simplePoint, string] {
	t.Helper()
	return buildNet(t, "A:B,D", "B:A,C,D", "C:B,D", "D:A,C,B")
}

func BenchmarkFindPaths_DenseDiamond(b *testing.B) {
	nodes := []Node[simplePoint, string]{}
	for _, entry := range []struct {
		id        string
		neighbors []string
	}{
		{"A", []string{"B", "D"}},
		{"B", []string{"A", "C", "D"}},
		{"C", []string{"B", "D"}},
		{"D", []string{"A", "C", "B"}},
	} {
		builder := NewNodeBuilder[simplePoint, string]().Point(simplePoint(entry.id))
		for _, neighbor := range entry.neighbors {
			builder.ConnectedTo(simplePoint(neighbor))
		}
		node, err := builder.Build()
		if err != nil {
			b.Fatal(err)
		}
		nodes = append(nodes, node)
	}
	n, err := New(nodes)
	if err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := n.FindPaths(ctx, simplePoint("A"), simplePoint("C")); err != nil {
			b.Fatal(err)
		}
	}
}
