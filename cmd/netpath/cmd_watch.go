// Copyright (C) 2025 The netpath authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/netpath/netpath/internal/topology"
	"github.com/netpath/netpath/net"
)

// runWatch loads the topology, answers the query once, and then re-runs
// it every time the topology file is rewritten. Editors tend to emit a
// burst of Write/Create/Rename events per save, so reloads are debounced.
func runWatch(cmd *cobra.Command, args []string) error {
	origin, destination := args[0], args[1]

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if metricsAddr != "" {
		shutdown, err := serveMetrics(metricsAddr)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	var opts []net.Option
	if cacheSize > 0 {
		opts = append(opts, net.WithPathCache(cacheSize))
	}

	if err := answerQuery(ctx, origin, destination, opts); err != nil {
		// A broken topology should not kill the watch; the next save
		// may fix it.
		printError(err)
		logger.Warn("query failed, waiting for changes", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: most editors replace the file
	// on save, which drops an inode-level watch.
	dir := filepath.Dir(topologyPath)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	logger.Info("watching topology",
		"file", topologyPath,
		"debounce_ms", debounceMS)
	printMuted("watching %s (ctrl-c to stop)", topologyPath)

	debounce := time.Duration(debounceMS) * time.Millisecond
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(topologyPath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)

		case <-fire:
			timer = nil
			fire = nil
			logger.Info("topology changed, reloading", "file", topologyPath)
			if err := answerQuery(ctx, origin, destination, opts); err != nil {
				printError(err)
				logger.Warn("query failed, waiting for changes", "error", err)
			}
		}
	}
}

// answerQuery rebuilds the net from disk and prints the query result.
func answerQuery(ctx context.Context, origin, destination string, opts []net.Option) error {
	n, err := topology.Load(topologyPath, opts...)
	if err != nil {
		return err
	}

	paths, err := findPaths(ctx, n, origin, destination)
	if err != nil {
		return err
	}

	rendered := make([]string, len(paths))
	for i, path := range paths {
		rendered[i] = path.String()
	}
	sort.Strings(rendered)

	printHeading("[%s] %d path(s) from %s to %s",
		time.Now().Format("15:04:05"), len(paths), origin, destination)
	for _, route := range rendered {
		printRoute(route)
	}
	return nil
}
