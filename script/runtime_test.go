package script

import (
	"os"
	"path/filepath"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/forge2d/forge2d/components"
	"github.com/forge2d/forge2d/internal/ecsworld"
	"github.com/forge2d/forge2d/input"
	"github.com/forge2d/forge2d/math2d"
	"github.com/forge2d/forge2d/physics"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestLifecycleDispatchOrder(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "order.lua", `
calls = {}

function on_create(self)
  table.insert(calls, "create")
end

function on_start(self)
  table.insert(calls, "start")
end

function on_update(self, dt)
  table.insert(calls, "update")
end
`)

	w := ecsworld.New()
	phys := physics.New(math2d.Vec2{})
	in := input.New()

	e := w.Spawn()
	ecsworld.Insert(w, e, ScriptComponent{}.WithScript(path, NewParams()))

	rt := New()
	if err := rt.Update(w, phys, in, 1.0/60); err != nil {
		t.Fatalf("update: %v", err)
	}

	inst := rt.instances[instanceKey{entity: e, slot: 0}]
	if inst == nil {
		t.Fatal("expected instance to be created")
	}
	calls, ok := inst.state.GetGlobal("calls").(*lua.LTable)
	if !ok {
		t.Fatal("expected calls to be a table")
	}
	if calls.Len() != 3 {
		t.Fatalf("calls length = %d, want 3", calls.Len())
	}
	want := []string{"create", "start", "update"}
	for i, name := range want {
		got := calls.RawGetInt(i + 1).String()
		if got != name {
			t.Fatalf("calls[%d] = %q, want %q", i+1, got, name)
		}
	}
}

func TestApplyImpulseQueuesAgainstPhysics(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "impulse.lua", `
function on_update(self, dt)
  self:apply_impulse({x = 1, y = 0})
end
`)

	w := ecsworld.New()
	phys := physics.New(math2d.Vec2{})
	in := input.New()

	e := w.Spawn()
	ecsworld.Insert(w, e, components.Transform{Scale: components.Vec2{X: 1, Y: 1}})
	phys.CreateBody(physics.EntityID(e), physics.Dynamic, math2d.Vec2{}, 0)
	ecsworld.Insert(w, e, ScriptComponent{}.WithScript(path, NewParams()))

	rt := New()
	if err := rt.Update(w, phys, in, 1.0/60); err != nil {
		t.Fatalf("update: %v", err)
	}

	phys.Step(1.0/60, 8, 3)
	v := phys.LinearVelocity(physics.EntityID(e))
	if v.X <= 0 {
		t.Fatalf("expected positive x velocity after impulse, got %v", v)
	}
}

func TestDespawnRemovesEntityAndTearsDownInstance(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "despawn.lua", `
destroyed = false

function on_update(self, dt)
  self:world():despawn(self:entity())
end

function on_destroy(self)
  destroyed = true
end
`)

	w := ecsworld.New()
	phys := physics.New(math2d.Vec2{})
	in := input.New()

	e := w.Spawn()
	ecsworld.Insert(w, e, ScriptComponent{}.WithScript(path, NewParams()))

	rt := New()
	if err := rt.Update(w, phys, in, 1.0/60); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if w.IsAlive(e) {
		t.Fatal("expected entity to be despawned")
	}

	if err := rt.Update(w, phys, in, 1.0/60); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if len(rt.instances) != 0 {
		t.Fatalf("expected instance to be torn down, got %d remaining", len(rt.instances))
	}
}

func TestParamsVisibleToScript(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "params.lua", `
seen_speed = nil

function on_create(self)
  seen_speed = params.speed
end
`)

	w := ecsworld.New()
	phys := physics.New(math2d.Vec2{})
	in := input.New()

	e := w.Spawn()
	ecsworld.Insert(w, e, ScriptComponent{}.WithScript(path, NewParams().With("speed", 4.5)))

	rt := New()
	if err := rt.Update(w, phys, in, 1.0/60); err != nil {
		t.Fatalf("update: %v", err)
	}

	inst := rt.instances[instanceKey{entity: e, slot: 0}]
	got := lua.LVAsNumber(inst.state.GetGlobal("seen_speed"))
	if got != lua.LNumber(4.5) {
		t.Fatalf("seen_speed = %v, want 4.5", got)
	}
}
