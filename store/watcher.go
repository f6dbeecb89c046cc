package store

import (
	"context"
	"log"
	"reflect"
	"time"

	"handyhub/backend/models"
)

// Watcher delivers full-collection snapshots to subscribers whenever a
// watched path's contents change. The Admin SDK exposes no native realtime
// listener, so the watcher re-reads each subscribed path on an interval and
// pushes only when the snapshot differs from the last one delivered.
//
// Subscribers treat every pushed snapshot as authoritative and re-run their
// pipeline from scratch; there is no incremental diffing.
type Watcher struct {
	store    Store
	interval time.Duration
}

// NewWatcher creates a watcher over the given store. A non-positive interval
// falls back to 30 seconds.
func NewWatcher(store Store, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{store: store, interval: interval}
}

// Subscribe starts watching a path. The first snapshot is delivered
// immediately; later ones only on change. The channel closes when ctx is
// cancelled, after which no further snapshots are delivered.
func (w *Watcher) Subscribe(ctx context.Context, path string) <-chan []models.Record {
	out := make(chan []models.Record, 1)

	go func() {
		defer close(out)

		var last []models.Record
		delivered := false

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			records, err := w.store.Collection(ctx, path)
			if err != nil {
				// Reads degrade to "no data" rather than killing the loop
				log.Printf("Warning: failed to read %s snapshot: %v", path, err)
			} else if !delivered || !reflect.DeepEqual(records, last) {
				select {
				case out <- records:
					last = records
					delivered = true
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
