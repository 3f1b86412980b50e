// watcher.go: Watch mode that regenerates the map on repository changes
//
// Deployments without access to the host package manager's hook wiring can
// run the watcher instead: it polls the installed snapshot with Argus and
// triggers a full regeneration whenever the snapshot changes.
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/agilira/argus"
)

// DefaultWatchPollInterval is the snapshot poll interval used when the
// caller does not configure one.
const DefaultWatchPollInterval = 2 * time.Second

// RegenerationWatcher watches the installed snapshot and regenerates the
// package map on every change.
type RegenerationWatcher struct {
	generator *Generator
	watcher   *argus.Watcher
	logger    Logger

	started atomic.Bool
	stopped atomic.Bool
}

// NewRegenerationWatcher creates a watcher around the given generator.
// A zero pollInterval selects DefaultWatchPollInterval.
func NewRegenerationWatcher(generator *Generator, logger Logger, pollInterval time.Duration) *RegenerationWatcher {
	if logger == nil {
		logger = DefaultLogger()
	}
	if pollInterval <= 0 {
		pollInterval = DefaultWatchPollInterval
	}

	cfg := argus.Config{
		PollInterval:         pollInterval,
		MaxWatchedFiles:      2, // the installed snapshot and the map itself
		OptimizationStrategy: argus.OptimizationSingleEvent,
		ErrorHandler: func(err error, path string) {
			logger.Error("Snapshot watching error", "error", err, "file", path)
		},
	}

	return &RegenerationWatcher{
		generator: generator,
		watcher:   argus.New(cfg),
		logger:    logger,
	}
}

// Start performs one initial regeneration and begins watching the installed
// snapshot. It returns an error when already running, permanently stopped,
// or when the initial regeneration or watch registration fails.
func (rw *RegenerationWatcher) Start(ctx context.Context) error {
	if rw.stopped.Load() {
		return NewWatcherStartError("watcher has been stopped and cannot be restarted", nil)
	}
	if !rw.started.CompareAndSwap(false, true) {
		return NewWatcherStartError("watcher is already running", nil)
	}

	if err := rw.regenerate(ctx); err != nil {
		rw.started.Store(false)
		return err
	}

	snapshot := filepath.Join(rw.generator.VendorDir(), InstalledFileName)
	if err := rw.watcher.Watch(snapshot, rw.handleSnapshotChange(ctx)); err != nil {
		rw.started.Store(false)
		return NewWatcherStartError("failed to watch installed snapshot", err)
	}
	if err := rw.watcher.Start(); err != nil {
		rw.started.Store(false)
		return NewWatcherStartError("failed to start snapshot watcher", err)
	}

	rw.logger.Info("Package map watch mode started",
		"snapshot", snapshot,
		"map", rw.generator.MapFilePath())
	return nil
}

// Stop halts watching permanently.
func (rw *RegenerationWatcher) Stop() error {
	if !rw.stopped.CompareAndSwap(false, true) {
		return nil
	}
	if !rw.started.Load() {
		return nil
	}
	return rw.watcher.Stop()
}

func (rw *RegenerationWatcher) handleSnapshotChange(ctx context.Context) func(argus.ChangeEvent) {
	return func(event argus.ChangeEvent) {
		rw.logger.Info("Installed snapshot changed",
			"path", event.Path,
			"is_create", event.IsCreate,
			"is_delete", event.IsDelete,
			"is_modify", event.IsModify)

		if event.IsDelete {
			// A deleted snapshot means no packages: regenerate to an
			// empty (but valid) artifact rather than leaving stale data.
			rw.logger.Warn("Installed snapshot was deleted, regenerating empty map", "path", event.Path)
		}

		if err := rw.regenerate(ctx); err != nil {
			rw.logger.Error("Regeneration after snapshot change failed", "error", err)
		}
	}
}

func (rw *RegenerationWatcher) regenerate(ctx context.Context) error {
	packages, err := LoadInstalledPackages(rw.generator.VendorDir())
	if err != nil {
		return err
	}
	return rw.generator.Regenerate(ctx, packages)
}
