package storage

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events produced by one atomic write.
const watchDebounce = 100 * time.Millisecond

// ChangeCallback is called after the watched key changed outside this process.
type ChangeCallback func(key string)

// Watch starts an fsnotify watcher on the FS root and processes change events
// for key until ctx is cancelled. Writes made through f itself are ignored;
// cb (if non-nil) fires once per distinct foreign change.
func Watch(ctx context.Context, f *FS, key string, logger *slog.Logger, cb ChangeCallback) error {
	target, err := f.keyPath(key)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory, not the file: atomic replaces swap the inode.
	if err := w.Add(f.root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", f.root), slog.String("key", key))

	var timer *time.Timer
	var timerCh <-chan time.Time
	lastSeen := ""
	if data, err := f.Get(key); err == nil {
		lastSeen = checksum(data)
	}

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(watchDebounce)
			timerCh = timer.C
		} else {
			timer.Reset(watchDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			data, err := f.Get(key)
			cs := ""
			switch {
			case err == nil:
				if f.ownWrite(key, data) {
					lastSeen = checksum(data)
					continue
				}
				cs = checksum(data)
			case IsNotExist(err):
				// removed; cs stays empty
			default:
				logger.Warn("watcher: read failed", slog.String("key", key), slog.String("error", err.Error()))
				continue
			}
			if cs == lastSeen {
				continue
			}
			lastSeen = cs
			logger.Debug("watcher: external change", slog.String("key", key))
			if cb != nil {
				cb(key)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
