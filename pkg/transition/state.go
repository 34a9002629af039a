// Package transition tracks the gesture and animation state that sits
// alongside the navigation tree. The renderer consumes the state as a
// read-only snapshot; the navigator drives it through a small strict
// state machine.
package transition

import (
	navErr "github.com/odvcencio/navkit/pkg/errors"
	"github.com/odvcencio/navkit/pkg/navtree"
)

// Phase names the three machine states.
type Phase int

const (
	// Idle holds only the settled current tree.
	Idle Phase = iota
	// Proposed previews a predictive-back gesture: the proposed tree is
	// what releasing the gesture would produce.
	Proposed
	// Animating runs a committed transition from current toward target.
	Animating
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Proposed:
		return "proposed"
	case Animating:
		return "animating"
	default:
		return "unknown"
	}
}

// Direction is the visual direction of an animated transition.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// State is an immutable snapshot of the machine. Fields beyond Current
// are meaningful only in the phase that sets them.
type State struct {
	Phase     Phase
	Current   navtree.Node
	Proposed  navtree.Node
	Target    navtree.Node
	Progress  float64
	Direction Direction
}

// Manager owns a State and enforces the legal transitions between
// phases. Preconditions are strict: calling an operation in the wrong
// phase is a programmer error and panics with a coded error.
//
// Manager is not internally synchronized. It expects a single writer,
// matching the navigator's serial application of intents.
type Manager struct {
	state State
}

// NewManager starts Idle on the given tree.
func NewManager(current navtree.Node) *Manager {
	return &Manager{state: State{Phase: Idle, Current: current}}
}

// State returns the current snapshot.
func (m *Manager) State() State {
	return m.state
}

// SetCurrent replaces the settled tree while Idle. The navigator calls
// this after a discrete, non-animated mutation.
func (m *Manager) SetCurrent(tree navtree.Node) {
	m.require(Idle, "set_current")
	m.state = State{Phase: Idle, Current: tree}
}

// StartAnimation begins an animated transition from the current tree
// to target. Only legal while Idle.
func (m *Manager) StartAnimation(target navtree.Node, direction Direction) {
	m.require(Idle, "start_animation")
	m.state = State{
		Phase:     Animating,
		Current:   m.state.Current,
		Target:    target,
		Progress:  0,
		Direction: direction,
	}
}

// StartProposed begins a predictive-back preview toward proposed. The
// current tree is untouched until the gesture commits. Only legal
// while Idle.
func (m *Manager) StartProposed(proposed navtree.Node) {
	m.require(Idle, "start_proposed")
	m.state = State{
		Phase:    Proposed,
		Current:  m.state.Current,
		Proposed: proposed,
		Progress: 0,
	}
}

// UpdateProgress stores a new progress value, clamped to [0, 1]. Legal
// while Proposed or Animating; each update replaces the previous one.
func (m *Manager) UpdateProgress(progress float64) {
	if m.state.Phase != Proposed && m.state.Phase != Animating {
		panic(navErr.New(navErr.ErrCodeTransitionState, "update_progress requires proposed or animating").
			WithContext("phase", m.state.Phase.String()))
	}
	m.state.Progress = clamp(progress)
}

// CommitProposed converts the preview into a backward animation toward
// the proposed tree, carrying the gesture's progress so the animation
// resumes where the finger left off. Only legal while Proposed.
func (m *Manager) CommitProposed() {
	m.require(Proposed, "commit_proposed")
	m.state = State{
		Phase:     Animating,
		Current:   m.state.Current,
		Target:    m.state.Proposed,
		Progress:  m.state.Progress,
		Direction: Backward,
	}
}

// CancelProposed discards the preview and returns to Idle on the exact
// pre-gesture tree. Only legal while Proposed.
func (m *Manager) CancelProposed() {
	m.require(Proposed, "cancel_proposed")
	m.state = State{Phase: Idle, Current: m.state.Current}
}

// CompleteAnimation settles on the animation's target tree. Only legal
// while Animating.
func (m *Manager) CompleteAnimation() {
	m.require(Animating, "complete_animation")
	m.state = State{Phase: Idle, Current: m.state.Target}
}

func (m *Manager) require(phase Phase, op string) {
	if m.state.Phase != phase {
		panic(navErr.New(navErr.ErrCodeTransitionState, op+" requires "+phase.String()).
			WithContext("phase", m.state.Phase.String()))
	}
}

func clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
