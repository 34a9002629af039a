package navigator

import (
	"github.com/odvcencio/navkit/pkg/logging"
	"github.com/odvcencio/navkit/pkg/mutate"
	"github.com/odvcencio/navkit/pkg/navtree"
	"github.com/odvcencio/navkit/pkg/transition"
)

// BeginBackGesture starts a predictive back preview. The proposed tree
// is computed eagerly with the same resolution NavigateBack uses, so
// the renderer can show exactly what releasing the gesture would
// produce. Reports false, leaving the state untouched, when back would
// not change the tree. The authoritative tree stays at its pre-gesture
// value until CompleteBackAnimation.
func (n *Navigator) BeginBackGesture() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	result := mutate.PopWithTabBehavior(n.tree)
	if result.Kind != mutate.BackHandled {
		return false
	}

	n.tm.StartProposed(result.Tree)
	n.publish()
	n.logger.Debug(logging.CategoryGesture, "begin", "", nil)
	return true
}

// UpdateBackGesture stores the gesture's progress, clamped to [0, 1].
// Calling it outside an active gesture or animation is a programmer
// error and panics.
func (n *Navigator) UpdateBackGesture(progress float64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.tm.UpdateProgress(progress)
	n.publish()
}

// CommitBackGesture converts the preview into a backward animation,
// carrying the gesture's progress.
func (n *Navigator) CommitBackGesture() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.tm.CommitProposed()
	n.counters.GestureCommit()
	n.publish()
	n.logger.Debug(logging.CategoryGesture, "commit", "", nil)
}

// CancelBackGesture discards the preview. The tree observers see is
// the identical pre-gesture value; the proposed pop never materializes.
func (n *Navigator) CancelBackGesture() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.tm.CancelProposed()
	n.counters.GestureCancel()
	n.publish()
	n.logger.Debug(logging.CategoryGesture, "cancel", "", nil)
}

// CompleteBackAnimation settles a committed gesture or a running
// animation: the target tree becomes authoritative and the state
// returns to Idle.
func (n *Navigator) CompleteBackAnimation() {
	n.mu.Lock()
	defer n.mu.Unlock()

	from := n.currentKindLocked()
	oldKeys := navtree.ScreenKeys(n.tree)
	n.tm.CompleteAnimation()
	n.tree = n.tm.State().Current
	n.broker.FailRemoved(oldKeys, navtree.ScreenKeys(n.tree))
	n.counters.Pop()
	n.publish()
	n.record("back_gesture", from, n.currentKindLocked(), "")
	n.logger.Info(logging.CategoryGesture, "complete", "", nil)
}

// StartAnimation begins an explicit animated transition toward target.
// The host drives progress and calls CompleteBackAnimation when done.
func (n *Navigator) StartAnimation(target navtree.Node, direction transition.Direction) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.tm.StartAnimation(target, direction)
	n.publish()
}
