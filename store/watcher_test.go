package store

import (
	"context"
	"testing"
	"time"
)

func TestWatcherDeliversInitialSnapshotImmediately(t *testing.T) {
	mem := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mem.Set(ctx, "Job", "j1", map[string]interface{}{"jobTitle": "Fix sink"})

	w := NewWatcher(mem, 10*time.Millisecond)
	ch := w.Subscribe(ctx, "Job")

	select {
	case snapshot := <-ch:
		if len(snapshot) != 1 || snapshot[0].String("jobTitle") != "Fix sink" {
			t.Errorf("Unexpected initial snapshot %v", snapshot)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for initial snapshot")
	}
}

func TestWatcherPushesOnChangeOnly(t *testing.T) {
	mem := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWatcher(mem, 10*time.Millisecond)
	ch := w.Subscribe(ctx, "Job")

	// Drain the initial (empty) snapshot
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for initial snapshot")
	}

	// No change: nothing should arrive across several poll intervals
	select {
	case snapshot := <-ch:
		t.Fatalf("Unexpected snapshot without a change: %v", snapshot)
	case <-time.After(50 * time.Millisecond):
	}

	mem.Set(ctx, "Job", "j1", map[string]interface{}{"jobTitle": "Fix sink"})

	select {
	case snapshot := <-ch:
		if len(snapshot) != 1 {
			t.Errorf("Expected 1 record in changed snapshot, got %d", len(snapshot))
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for changed snapshot")
	}
}

func TestWatcherClosesChannelOnCancel(t *testing.T) {
	mem := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())

	w := NewWatcher(mem, 10*time.Millisecond)
	ch := w.Subscribe(ctx, "Job")

	// Drain the initial snapshot, then cancel
	<-ch
	cancel()

	select {
	case _, open := <-ch:
		if open {
			// A snapshot may have raced the cancel; the next read must close
			if _, stillOpen := <-ch; stillOpen {
				t.Error("Expected channel to close after cancel")
			}
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for channel close")
	}
}
