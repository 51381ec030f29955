// Copyright (C) 2025 The netpath authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"

	"github.com/netpath/netpath/pkg/logging"
)

// --- Global Command Variables ---
var (
	topologyPath string
	logLevel     string
	logDir       string
	parallel     bool
	maxPaths     int
	cacheSize    int
	metricsAddr  string
	debounceMS   int

	logger = logging.Default()

	rootCmd = &cobra.Command{
		Use:   "netpath",
		Short: "Enumerate every simple path between two points of a net",
		Long: `netpath loads an undirected graph from a YAML topology file and
enumerates every simple path (no repeated point) between two points.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logging.Config{
				Level:   logging.ParseLevel(logLevel),
				LogDir:  logDir,
				Service: "netpath",
			})
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Close()
		},
	}

	pathsCmd = &cobra.Command{
		Use:   "paths <origin> <destination>",
		Short: "Find every simple path between two points",
		Args:  cobra.ExactArgs(2),
		RunE:  runPaths, // Defined in cmd_paths.go
	}

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Check a topology file and print net statistics",
		Args:  cobra.NoArgs,
		RunE:  runValidate, // Defined in cmd_validate.go
	}

	watchCmd = &cobra.Command{
		Use:   "watch <origin> <destination>",
		Short: "Re-run a query whenever the topology file changes",
		Args:  cobra.ExactArgs(2),
		RunE:  runWatch, // Defined in cmd_watch.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&topologyPath, "topology", "t", "topology.yaml",
		"path to the YAML topology file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"minimum log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "",
		"directory for JSON log files (disabled when empty)")

	pathsCmd.Flags().BoolVar(&parallel, "parallel", false,
		"explore first-hop branches concurrently")
	pathsCmd.Flags().IntVar(&maxPaths, "max-paths", 0,
		"stop after this many paths (0 = all)")

	watchCmd.Flags().BoolVar(&parallel, "parallel", false,
		"explore first-hop branches concurrently")
	watchCmd.Flags().IntVar(&maxPaths, "max-paths", 0,
		"stop after this many paths (0 = all)")
	watchCmd.Flags().IntVar(&cacheSize, "cache", 64,
		"query result cache capacity (0 disables caching)")
	watchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "",
		"expose Prometheus metrics on this address (e.g. :9464)")
	watchCmd.Flags().IntVar(&debounceMS, "debounce", 250,
		"milliseconds to wait after the last file event before reloading")

	rootCmd.AddCommand(pathsCmd, validateCmd, watchCmd)
}
