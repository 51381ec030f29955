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
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for query operations.
var (
	tracer = otel.Tracer("netpath.net")
	meter  = otel.Meter("netpath.net")
)

// Metrics for path queries.
var (
	queryLatency metric.Float64Histogram
	queryTotal   metric.Int64Counter
	pathsFound   metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		queryLatency, err = meter.Float64Histogram(
			"net_find_paths_duration_seconds",
			metric.WithDescription("Duration of path enumeration queries"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		queryTotal, err = meter.Int64Counter(
			"net_find_paths_total",
			metric.WithDescription("Total number of path enumeration queries"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		pathsFound, err = meter.Int64Histogram(
			"net_paths_found",
			metric.WithDescription("Number of simple paths found per successful query"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordQueryMetrics records metrics for one query. Metric failures never
// fail the query.
func recordQueryMetrics(ctx context.Context, duration time.Duration, found int, cacheHit, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.Bool("success", success),
		attribute.Bool("cache_hit", cacheHit),
	)

	queryLatency.Record(ctx, duration.Seconds(), attrs)
	queryTotal.Add(ctx, 1, attrs)

	if success {
		pathsFound.Record(ctx, int64(found))
	}
}

// startQuerySpan creates a span for a query operation.
func startQuerySpan(ctx context.Context, queryType string, originID, destinationID any) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Net."+queryType,
		trace.WithAttributes(
			attribute.String("net.query_type", queryType),
			attribute.String("net.origin", fmt.Sprint(originID)),
			attribute.String("net.destination", fmt.Sprint(destinationID)),
		),
	)
}

// finishQuerySpan sets the result attributes on a successful query span.
func finishQuerySpan(span trace.Span, found int, cacheHit bool) {
	span.SetAttributes(
		attribute.Int("net.paths_found", found),
		attribute.Bool("net.cache_hit", cacheHit),
	)
}

// failQuery records the failure on the span and the meters, then returns
// err unchanged so call sites can wrap and return in one expression.
func failQuery(ctx context.Context, span trace.Span, start time.Time, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	recordQueryMetrics(ctx, time.Since(start), 0, false, false)
	return err
}
