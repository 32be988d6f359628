package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config at path whenever it is written and sends the
// result on the returned channel. Parse errors are sent on the error channel
// and the previous config stays in effect. Both channels close when ctx ends.
//
// The directory is watched rather than the file so editors that replace the
// file on save are still seen.
func Watch(ctx context.Context, path string) (<-chan *Config, <-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	updates := make(chan *Config, 1)
	errs := make(chan error, 1)
	target := filepath.Clean(path)

	go func() {
		defer watcher.Close()
		defer close(updates)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := LoadFrom(path)
				if err != nil {
					send(ctx, errs, err)
					continue
				}
				send(ctx, updates, cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				send(ctx, errs, err)
			}
		}
	}()

	return updates, errs, nil
}

func send[T any](ctx context.Context, ch chan<- T, v T) {
	select {
	case ch <- v:
	case <-ctx.Done():
	}
}
