// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for relay.
package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// Watcher re-loads the configuration when the file changes and delivers
// the new Config on its channel. Editors replace files rather than writing
// in place, so the watcher observes the containing directory and filters
// by name, with a short debounce to coalesce write bursts.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	changes  chan Config
	debounce time.Duration
	logger   *zap.Logger
	done     chan struct{}
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Watcher{
		path:     path,
		watcher:  fw,
		changes:  make(chan Config, 1),
		debounce: 250 * time.Millisecond,
		logger:   logger,
		done:     make(chan struct{}),
	}

	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

// Changes returns the channel of re-loaded configurations.
func (w *Watcher) Changes() <-chan Config {
	return w.changes
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	pending := false
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !pending {
				pending = true
				timer = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(w.debounce)
			}

		case <-fire:
			pending = false
			cfg, err := Load(w.path)
			if err != nil {
				w.logger.Warn("ignoring invalid config change", zap.Error(err))
				continue
			}
			// Latest wins; an unread previous reload is discarded.
			select {
			case <-w.changes:
			default:
			}
			w.changes <- cfg

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}
