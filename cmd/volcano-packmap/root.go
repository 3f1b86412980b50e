// root.go: Command tree for the volcano-packmap hook binary
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/volcanolabs/packmap"
)

type rootOptions struct {
	vendorDir string
	localDir  string
	verbose   bool
}

func NewRootCommand(version, commit, date string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "volcano-packmap",
		Short: "Maintains the Volcano package map from installed plugin packages",
		Long: `volcano-packmap maintains the generated package map consumed by the
Volcano runtime: a mapping from each installed plugin package's primary
namespace to its install path.

The binary is meant to be registered as a post-install/post-update hook of
the host package manager; each run rewrites the whole map atomically from
the installed snapshot plus the project's local packages directory.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.vendorDir, "vendor-dir", "vendor",
		"vendor directory maintained by the host package manager")
	rootCmd.PersistentFlags().StringVar(&opts.localDir, "local-dir", "plugins",
		"local packages directory scanned for project-local plugins")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.AddCommand(
		newRegenerateCommand(opts),
		newSetCommand(opts),
		newUnsetCommand(opts),
		newCheckCommand(opts),
		newWatchCommand(opts),
	)

	return rootCmd
}

func (o *rootOptions) generator() *packmap.Generator {
	return packmap.NewGenerator(o.vendorDir, o.localDir, newCharmLogger(o.verbose))
}

func (o *rootOptions) mapFilePath() string {
	return filepath.Join(o.vendorDir, packmap.MapFileName)
}

func newRegenerateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate",
		Short: "Rewrite the package map from all installed and local plugin packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			packages, err := packmap.LoadInstalledPackages(opts.vendorDir)
			if err != nil {
				return err
			}
			return opts.generator().Regenerate(cmd.Context(), packages)
		},
	}
}

func newSetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <namespace> <path>",
		Short: "Add or replace a single map entry (legacy per-package hook)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return packmap.UpsertMapEntry(opts.mapFilePath(), args[0], args[1])
		},
	}
}

func newUnsetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <namespace>",
		Short: "Remove a single map entry (legacy per-package hook)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return packmap.RemoveMapEntry(opts.mapFilePath(), args[0])
		},
	}
}

func newCheckCommand(opts *rootOptions) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Warn when the project has not registered the regeneration hook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := manifestPath
			if path == "" {
				found, ok := packmap.FindManifest(".")
				if !ok {
					return fmt.Errorf("no project manifest found in the current directory")
				}
				path = found
			}
			project, err := packmap.ReadManifest(path)
			if err != nil {
				return err
			}

			session := packmap.NewHintSession()
			if !session.CheckRegenerateHook(project, cmd.OutOrStdout()) {
				fmt.Fprintln(cmd.OutOrStdout(), "Regeneration hook is registered; nothing to do.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "",
		"project manifest to inspect (default: probe the current directory)")
	return cmd
}

func newWatchCommand(opts *rootOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the installed snapshot and regenerate the map on change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newCharmLogger(opts.verbose)
			watcher := packmap.NewRegenerationWatcher(opts.generator(), logger, interval)

			if err := watcher.Start(cmd.Context()); err != nil {
				return err
			}
			defer func() {
				if err := watcher.Stop(); err != nil {
					logger.Error("Failed to stop watcher", "error", err)
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-sigCh:
				logger.Info("Shutdown signal received, stopping watch mode")
			case <-cmd.Context().Done():
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", packmap.DefaultWatchPollInterval,
		"poll interval for snapshot change detection")
	return cmd
}
