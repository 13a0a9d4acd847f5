// Package state implements the deferred-transition game state stack,
// grounded on original_source/forge2d/src/state.rs.
package state

import (
	"fmt"

	"github.com/forge2d/forge2d/renderer"
)

// EngineContext is the subset of engine-owned systems a State needs
// during on_enter/on_exit/Update. The engine driver constructs one per
// frame and passes it down; states never reach back into the engine
// directly.
type EngineContext struct {
	Input   InputSource
	DtFixed float32
	DtFrame float32
}

// InputSource is the narrow input surface states read from. The game
// package adapts *input.State to it, so state does not import the input
// package and its raylib-backed default sampler.
type InputSource interface {
	Down(key int32) bool
	Pressed(key int32) bool
	Released(key int32) bool
}

// StateMachineLike lets a State queue transitions without holding a
// pointer to the owning StateMachine, mirroring the Rust trait split
// that exists purely to route around borrow-checker conflicts: here it
// keeps State decoupled from StateMachine's internals instead.
type StateMachineLike interface {
	Push(s State)
	Pop()
	Replace(s State)
}

// State is one entry in the stack.
type State interface {
	OnEnter(ctx *EngineContext) error
	OnExit(ctx *EngineContext) error
	Update(ctx *EngineContext, sm StateMachineLike) error
	Draw(r *renderer.Renderer, f *renderer.Frame) error
}

// BaseState gives embedders no-op OnEnter/OnExit so a State only needs
// to implement Update and Draw.
type BaseState struct{}

func (BaseState) OnEnter(*EngineContext) error { return nil }
func (BaseState) OnExit(*EngineContext) error  { return nil }

type transitionHelper struct {
	pendingPush    *State
	pendingPop     *bool
	pendingReplace *State
}

func (h *transitionHelper) Push(s State)    { *h.pendingPush = s }
func (h *transitionHelper) Pop()            { *h.pendingPop = true }
func (h *transitionHelper) Replace(s State) { *h.pendingReplace = s }

// StateMachine manages a stack of States. Only the top state updates;
// every state draws, bottom to top. Transitions requested during
// Update/Draw are deferred until ApplyTransitions runs.
type StateMachine struct {
	states         []State
	pendingPush    State
	pendingPop     bool
	pendingReplace State
}

// New returns an empty state machine.
func New() *StateMachine {
	return &StateMachine{}
}

// NewWithInitial returns a state machine with one state already on the
// stack. OnEnter is not called here — InitTop does that once the engine
// is ready to hand it a context.
func NewWithInitial(initial State) *StateMachine {
	sm := New()
	sm.states = append(sm.states, initial)
	return sm
}

// Push queues a state to be entered after the current update/draw cycle.
func (sm *StateMachine) Push(s State) { sm.pendingPush = s }

// Pop queues the top state to be exited after the current cycle.
func (sm *StateMachine) Pop() { sm.pendingPop = true }

// Replace queues a pop of the current top followed by a push of s.
func (sm *StateMachine) Replace(s State) { sm.pendingReplace = s }

// IsEmpty reports whether the stack has no states.
func (sm *StateMachine) IsEmpty() bool { return len(sm.states) == 0 }

// Len returns the number of states on the stack.
func (sm *StateMachine) Len() int { return len(sm.states) }

// States returns the stack bottom to top, for inspection only.
func (sm *StateMachine) States() []State {
	out := make([]State, len(sm.states))
	copy(out, sm.states)
	return out
}

// InitTop calls OnEnter on the bottom-most initial state. The engine
// driver calls this exactly once, before the first frame.
func (sm *StateMachine) InitTop(ctx *EngineContext) error {
	if len(sm.states) == 0 {
		return nil
	}
	top := sm.states[len(sm.states)-1]
	if err := top.OnEnter(ctx); err != nil {
		return fmt.Errorf("state: init top: %w", err)
	}
	return nil
}

// ApplyTransitions applies a pending replace on its own, discarding any
// pop or push queued in the same cycle; otherwise it applies a pending
// pop, then a pending push.
func (sm *StateMachine) ApplyTransitions(ctx *EngineContext) error {
	if sm.pendingReplace != nil {
		next := sm.pendingReplace
		sm.pendingReplace = nil
		sm.pendingPop = false
		sm.pendingPush = nil
		if n := len(sm.states); n > 0 {
			old := sm.states[n-1]
			sm.states = sm.states[:n-1]
			if err := old.OnExit(ctx); err != nil {
				return fmt.Errorf("state: replace on_exit: %w", err)
			}
		}
		if err := next.OnEnter(ctx); err != nil {
			return fmt.Errorf("state: replace on_enter: %w", err)
		}
		sm.states = append(sm.states, next)
		return nil
	}

	if sm.pendingPop {
		sm.pendingPop = false
		if n := len(sm.states); n > 0 {
			old := sm.states[n-1]
			sm.states = sm.states[:n-1]
			if err := old.OnExit(ctx); err != nil {
				return fmt.Errorf("state: pop on_exit: %w", err)
			}
		}
	}

	if sm.pendingPush != nil {
		next := sm.pendingPush
		sm.pendingPush = nil
		if err := next.OnEnter(ctx); err != nil {
			return fmt.Errorf("state: push on_enter: %w", err)
		}
		sm.states = append(sm.states, next)
	}

	return nil
}

// UpdateTop updates only the top state, handing it a helper that queues
// transitions on sm rather than a live reference to sm itself.
func (sm *StateMachine) UpdateTop(ctx *EngineContext) error {
	if len(sm.states) == 0 {
		return nil
	}
	top := sm.states[len(sm.states)-1]
	helper := &transitionHelper{
		pendingPush:    &sm.pendingPush,
		pendingPop:     &sm.pendingPop,
		pendingReplace: &sm.pendingReplace,
	}
	if err := top.Update(ctx, helper); err != nil {
		return fmt.Errorf("state: update top: %w", err)
	}
	return nil
}

// DrawAll draws every state bottom to top. The caller has already
// begun the frame.
func (sm *StateMachine) DrawAll(r *renderer.Renderer, f *renderer.Frame) error {
	for _, s := range sm.states {
		if err := s.Draw(r, f); err != nil {
			return fmt.Errorf("state: draw: %w", err)
		}
	}
	return nil
}
