package state

import (
	"errors"
	"testing"

	"github.com/forge2d/forge2d/renderer"
)

type logState struct {
	BaseState
	name     string
	log      *[]string
	onUpdate func(sm StateMachineLike)
	enterErr error
	exitErr  error
}

func (s *logState) OnEnter(*EngineContext) error {
	*s.log = append(*s.log, s.name+":enter")
	return s.enterErr
}

func (s *logState) OnExit(*EngineContext) error {
	*s.log = append(*s.log, s.name+":exit")
	return s.exitErr
}

func (s *logState) Update(ctx *EngineContext, sm StateMachineLike) error {
	*s.log = append(*s.log, s.name+":update")
	if s.onUpdate != nil {
		s.onUpdate(sm)
	}
	return nil
}

func (s *logState) Draw(*renderer.Renderer, *renderer.Frame) error {
	*s.log = append(*s.log, s.name+":draw")
	return nil
}

func TestInitTopEntersOnlyTheBottomState(t *testing.T) {
	var log []string
	sm := NewWithInitial(&logState{name: "a", log: &log})
	if err := sm.InitTop(&EngineContext{}); err != nil {
		t.Fatalf("init top: %v", err)
	}
	if len(log) != 1 || log[0] != "a:enter" {
		t.Fatalf("log = %v, want [a:enter]", log)
	}
}

func TestPushIsDeferredUntilApplyTransitions(t *testing.T) {
	var log []string
	sm := NewWithInitial(&logState{name: "a", log: &log})
	sm.Push(&logState{name: "b", log: &log})

	if sm.Len() != 1 {
		t.Fatalf("len before apply = %d, want 1", sm.Len())
	}
	if err := sm.ApplyTransitions(&EngineContext{}); err != nil {
		t.Fatalf("apply transitions: %v", err)
	}
	if sm.Len() != 2 {
		t.Fatalf("len after apply = %d, want 2", sm.Len())
	}
	if log[len(log)-1] != "b:enter" {
		t.Fatalf("last log entry = %q, want b:enter", log[len(log)-1])
	}
}

func TestPopExitsTheTopState(t *testing.T) {
	var log []string
	sm := NewWithInitial(&logState{name: "a", log: &log})
	sm.Push(&logState{name: "b", log: &log})
	if err := sm.ApplyTransitions(&EngineContext{}); err != nil {
		t.Fatalf("apply push: %v", err)
	}

	sm.Pop()
	if err := sm.ApplyTransitions(&EngineContext{}); err != nil {
		t.Fatalf("apply pop: %v", err)
	}
	if sm.Len() != 1 {
		t.Fatalf("len after pop = %d, want 1", sm.Len())
	}
	if log[len(log)-1] != "b:exit" {
		t.Fatalf("last log entry = %q, want b:exit", log[len(log)-1])
	}
}

func TestReplaceTakesPrecedenceOverPushAndPop(t *testing.T) {
	var log []string
	a := &logState{name: "a", log: &log}
	sm := NewWithInitial(a)

	a.onUpdate = func(sm StateMachineLike) {
		sm.Push(&logState{name: "should-not-appear", log: &log})
		sm.Pop()
		sm.Replace(&logState{name: "c", log: &log})
	}
	if err := sm.UpdateTop(&EngineContext{}); err != nil {
		t.Fatalf("update top: %v", err)
	}
	if err := sm.ApplyTransitions(&EngineContext{}); err != nil {
		t.Fatalf("apply transitions: %v", err)
	}

	if sm.Len() != 1 {
		t.Fatalf("len = %d, want 1 (replace swaps in place)", sm.Len())
	}
	states := sm.States()
	if got := states[0].(*logState).name; got != "c" {
		t.Fatalf("top state = %q, want c", got)
	}
}

func TestUpdateTopOnlyUpdatesTheTopState(t *testing.T) {
	var log []string
	sm := NewWithInitial(&logState{name: "a", log: &log})
	sm.Push(&logState{name: "b", log: &log})
	if err := sm.ApplyTransitions(&EngineContext{}); err != nil {
		t.Fatalf("apply push: %v", err)
	}
	log = nil

	if err := sm.UpdateTop(&EngineContext{}); err != nil {
		t.Fatalf("update top: %v", err)
	}
	if len(log) != 1 || log[0] != "b:update" {
		t.Fatalf("log = %v, want only b's update to run", log)
	}
}

func TestDrawAllDrawsEveryStateBottomToTop(t *testing.T) {
	var log []string
	sm := NewWithInitial(&logState{name: "a", log: &log})
	sm.Push(&logState{name: "b", log: &log})
	if err := sm.ApplyTransitions(&EngineContext{}); err != nil {
		t.Fatalf("apply push: %v", err)
	}
	log = nil

	if err := sm.DrawAll(nil, nil); err != nil {
		t.Fatalf("draw all: %v", err)
	}
	want := []string{"a:draw", "b:draw"}
	if len(log) != len(want) || log[0] != want[0] || log[1] != want[1] {
		t.Fatalf("log = %v, want %v", log, want)
	}
}

func TestApplyTransitionsPropagatesOnExitError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	sm := NewWithInitial(&logState{name: "a", log: &log, exitErr: boom})
	sm.Pop()
	if err := sm.ApplyTransitions(&EngineContext{}); err == nil {
		t.Fatal("expected on_exit error to propagate")
	}
}
