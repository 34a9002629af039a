package navigator

import (
	"sync"

	navErr "github.com/odvcencio/navkit/pkg/errors"
)

// ErrScreenGone fails a pending result await when the owning screen's
// key is removed from the tree before a result is delivered.
var ErrScreenGone = navErr.New(navErr.ErrCodeNodeNotFound, "screen removed before delivering a result")

// Result is the outcome of a navigated-to screen, delivered back to
// the caller that awaited it.
type Result struct {
	Value any
	Err   error
}

// resultBroker tracks pending result awaits keyed by screen node key.
// Each key holds at most one pending await; a new Expect for the same
// key fails the previous one.
type resultBroker struct {
	mu      sync.Mutex
	pending map[string]chan Result
}

func newResultBroker() *resultBroker {
	return &resultBroker{pending: make(map[string]chan Result)}
}

// Expect registers interest in a result from the screen with the given
// key. The returned channel receives exactly one Result.
func (b *resultBroker) Expect(key string) <-chan Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	if prev, ok := b.pending[key]; ok {
		prev <- Result{Err: navErr.New(navErr.ErrCodeDuplicateKey, "result await replaced").
			WithContext("key", key)}
	}
	ch := make(chan Result, 1)
	b.pending[key] = ch
	return ch
}

// Deliver resolves the pending await for key, if any. Reports whether
// an await was waiting.
func (b *resultBroker) Deliver(key string, value any) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.pending[key]
	if !ok {
		return false
	}
	delete(b.pending, key)
	ch <- Result{Value: value}
	return true
}

// FailRemoved fails every pending await whose key is present in old but
// absent from new. Called after each mutation with the before and after
// screen-key sets.
func (b *resultBroker) FailRemoved(oldKeys, newKeys map[string]struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, ch := range b.pending {
		_, wasPresent := oldKeys[key]
		_, stillPresent := newKeys[key]
		if wasPresent && !stillPresent {
			delete(b.pending, key)
			ch <- Result{Err: ErrScreenGone}
		}
	}
}
