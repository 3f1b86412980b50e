// events.go: Lifecycle hook events fired by the host package manager
//
// Copyright (c) 2025 VolcanoLabs
// SPDX-License-Identifier: MPL-2.0

package packmap

import (
	"context"
	"sync"
	"time"

	"github.com/agilira/go-timecache"
)

// HookEvent identifies a host package manager lifecycle event.
type HookEvent string

const (
	// Bulk events fired once dependency resolution completes. These are
	// the canonical regeneration triggers.
	EventPostInstall HookEvent = "post-install"
	EventPostUpdate  HookEvent = "post-update"

	// Per-package events kept for older project wiring; handled by the
	// legacy incremental path.
	EventPostPackageInstall   HookEvent = "post-package-install"
	EventPostPackageUpdate    HookEvent = "post-package-update"
	EventPostPackageUninstall HookEvent = "post-package-uninstall"
)

// HookContext carries event metadata into handlers. Package is nil for
// bulk events.
type HookContext struct {
	Event     HookEvent
	Package   *PackageDescriptor
	Timestamp time.Time
}

// HookHandler reacts to one lifecycle event. An error aborts the dispatch;
// the host surfaces it synchronously and never retries (a static
// declaration error cannot succeed without user action).
type HookHandler func(ctx context.Context, hook HookContext) error

// Hooks is the subscription registry mirroring the host package manager's
// event extension point. Handlers run synchronously in subscription order.
type Hooks struct {
	mu       sync.RWMutex
	handlers map[HookEvent][]HookHandler
	logger   Logger
}

// NewHooks creates an empty hook registry.
func NewHooks(logger Logger) *Hooks {
	if logger == nil {
		logger = DefaultLogger()
	}
	return &Hooks{
		handlers: make(map[HookEvent][]HookHandler),
		logger:   logger,
	}
}

// Subscribe registers a handler for an event.
func (h *Hooks) Subscribe(event HookEvent, handler HookHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[event] = append(h.handlers[event], handler)
}

// Dispatch fires an event to every subscribed handler in order. The first
// handler error stops dispatch and is returned wrapped with the event name.
func (h *Hooks) Dispatch(ctx context.Context, event HookEvent, pkg *PackageDescriptor) error {
	h.mu.RLock()
	handlers := make([]HookHandler, len(h.handlers[event]))
	copy(handlers, h.handlers[event])
	h.mu.RUnlock()

	hook := HookContext{
		Event:     event,
		Package:   pkg,
		Timestamp: timecache.CachedTime(),
	}

	h.logger.Debug("Dispatching lifecycle event",
		"event", string(event),
		"handlers", len(handlers))

	for _, handler := range handlers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := handler(ctx, hook); err != nil {
			return NewHookDispatchError(string(event), err)
		}
	}
	return nil
}
