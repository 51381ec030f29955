// Copyright (C) 2025 The netpath authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package topology assembles nets from YAML topology files.
//
// A topology file declares points and undirected edges:
//
//	version: 1
//	points:
//	  - id: A
//	    name: Alpha station
//	  - id: B
//	edges:
//	  - from: A
//	    to: B
//
// Every declared edge is mirrored in both directions before the net is
// assembled, so nets loaded here are always symmetric. The engine itself
// trusts adjacency as given; symmetry is this layer's concern.
package topology

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/netpath/netpath/net"
)

// Sentinel errors for topology loading.
var (
	// ErrUnknownEndpoint is returned when an edge references a point id
	// that is not declared in the points section.
	ErrUnknownEndpoint = errors.New("edge references undeclared point")

	// ErrDuplicatePointID is returned when two points share an id.
	ErrDuplicatePointID = errors.New("duplicate point id")

	// ErrSelfEdge is returned when an edge connects a point to itself;
	// a simple path can never use it.
	ErrSelfEdge = errors.New("edge connects point to itself")
)

// topologyValidate is the validator instance for topology schemas.
var topologyValidate = validator.New()

// Waypoint is the string-keyed point type used by file-defined nets.
type Waypoint struct {
	// Key is the point identifier, unique within a topology.
	Key string

	// Name is an optional human-readable label.
	Name string
}

// ID returns the waypoint's identifier.
func (w Waypoint) ID() string { return w.Key }

// File is the YAML schema of a topology file.
type File struct {
	Version int         `yaml:"version" validate:"gte=0,lte=1"`
	Points  []PointSpec `yaml:"points" validate:"required,min=1,dive"`
	Edges   []EdgeSpec  `yaml:"edges" validate:"dive"`
}

// PointSpec declares one point.
type PointSpec struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name"`
}

// EdgeSpec declares one undirected edge between two declared points.
type EdgeSpec struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required"`
}

// Net is a net over Waypoints, the concrete instantiation this package
// produces.
type Net = net.Net[Waypoint, string]

// Load reads, validates and assembles the topology file at path.
func Load(path string, opts ...net.Option) (*Net, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology file: %w", err)
	}
	return Parse(data, opts...)
}

// Parse validates and assembles a topology from raw YAML.
//
// Description:
//
//	Unmarshals the schema, checks it with go-playground/validator,
//	verifies edge endpoints refer to declared points, mirrors every edge
//	in both directions and de-duplicates adjacency entries, then builds
//	the net.
//
// Errors:
//
//	ErrDuplicatePointID - two points share an id
//	ErrUnknownEndpoint - an edge endpoint is not declared
//	ErrSelfEdge - an edge connects a point to itself
//	yaml/validator errors - malformed document or schema violation
func Parse(data []byte, opts ...net.Option) (*Net, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing topology: %w", err)
	}
	if err := topologyValidate.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid topology: %w", err)
	}

	waypoints := make(map[string]Waypoint, len(file.Points))
	order := make([]string, 0, len(file.Points))
	for _, spec := range file.Points {
		if _, exists := waypoints[spec.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePointID, spec.ID)
		}
		waypoints[spec.ID] = Waypoint{Key: spec.ID, Name: spec.Name}
		order = append(order, spec.ID)
	}

	// adjacency maps each point to its neighbors, in declaration order,
	// with both directions of every edge present exactly once.
	adjacency := make(map[string][]string, len(file.Points))
	seen := make(map[[2]string]bool, len(file.Edges)*2)
	addEntry := func(from, to string) {
		key := [2]string{from, to}
		if seen[key] {
			return
		}
		seen[key] = true
		adjacency[from] = append(adjacency[from], to)
	}

	for _, edge := range file.Edges {
		if edge.From == edge.To {
			return nil, fmt.Errorf("%w: %s", ErrSelfEdge, edge.From)
		}
		for _, id := range []string{edge.From, edge.To} {
			if _, ok := waypoints[id]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, id)
			}
		}
		addEntry(edge.From, edge.To)
		addEntry(edge.To, edge.From)
	}

	nodes := make([]net.Node[Waypoint, string], 0, len(order))
	for _, id := range order {
		builder := net.NewNodeBuilder[Waypoint, string]().Point(waypoints[id])
		for _, neighbor := range adjacency[id] {
			builder.ConnectedTo(waypoints[neighbor])
		}
		node, err := builder.Build()
		if err != nil {
			return nil, fmt.Errorf("building node %s: %w", id, err)
		}
		nodes = append(nodes, node)
	}

	assembled, err := net.New(nodes, opts...)
	if err != nil {
		return nil, fmt.Errorf("assembling net: %w", err)
	}
	return assembled, nil
}
