package navigator

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/odvcencio/navkit/pkg/navtree"
	"github.com/odvcencio/navkit/pkg/transition"
)

// Snapshot is what a watcher receives after every applied intent: the
// authoritative tree and the transition state that accompanies it. Both
// are immutable values; observers read them without synchronization.
type Snapshot struct {
	Tree       navtree.Node
	Transition transition.State
}

// watcherSet delivers snapshots to subscribers. Delivery is
// non-blocking: a subscriber that stops draining its channel loses
// intermediate snapshots, never the navigator's progress.
type watcherSet struct {
	mu       sync.Mutex
	watchers map[string]chan Snapshot
	counter  atomic.Uint64
}

func newWatcherSet() *watcherSet {
	return &watcherSet{watchers: make(map[string]chan Snapshot)}
}

// Add registers a subscriber and returns its channel plus a cancel
// function. The channel is buffered so bursts of intents coalesce.
func (w *watcherSet) Add() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 16)
	id := fmt.Sprintf("watch-%d", w.counter.Add(1))

	w.mu.Lock()
	w.watchers[id] = ch
	w.mu.Unlock()

	cancel := func() {
		w.mu.Lock()
		if existing, ok := w.watchers[id]; ok {
			delete(w.watchers, id)
			close(existing)
		}
		w.mu.Unlock()
	}
	return ch, cancel
}

// Publish fans a snapshot out to every subscriber without blocking.
func (w *watcherSet) Publish(snap Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, ch := range w.watchers {
		select {
		case ch <- snap:
		default:
			// Subscriber is behind; it will see the next snapshot.
		}
	}
}
