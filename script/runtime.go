package script

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/forge2d/forge2d/internal/ecsworld"
	"github.com/forge2d/forge2d/internal/engerr"
	"github.com/forge2d/forge2d/input"
	"github.com/forge2d/forge2d/physics"
)

type instanceKey struct {
	entity ecsworld.EntityID
	slot   int
}

type scriptModule struct {
	proto   *lua.FunctionProto
	modTime time.Time
}

type scriptInstance struct {
	key        instanceKey
	path       string
	state      *lua.LState
	hasStarted bool
	lastLoaded time.Time
}

// Runtime owns the embedded Lua engine and every live per-entity
// script instance. One Runtime typically lives for the lifetime of a
// running scene.
type Runtime struct {
	modules   map[string]*scriptModule
	instances map[instanceKey]*scriptInstance
	commands  *CommandBuffer
	hotReload bool
}

// New returns an empty runtime with its own command buffer.
func New() *Runtime {
	return &Runtime{
		modules:   make(map[string]*scriptModule),
		instances: make(map[instanceKey]*scriptInstance),
		commands:  NewCommandBuffer(),
	}
}

// WithHotReload toggles reloading a script's module when its file's
// mtime changes, tearing down and recreating any live instance of it.
func (r *Runtime) WithHotReload(enabled bool) *Runtime {
	r.hotReload = enabled
	return r
}

// Close tears down every live instance's Lua state.
func (r *Runtime) Close() {
	for _, inst := range r.instances {
		inst.state.Close()
	}
	r.instances = make(map[instanceKey]*scriptInstance)
}

func (r *Runtime) loadModule(path string) (*scriptModule, error) {
	var modTime time.Time
	if info, err := os.Stat(path); err == nil {
		modTime = info.ModTime()
	}

	if existing, ok := r.modules[path]; ok {
		if !r.hotReload || existing.modTime.Equal(modTime) {
			return existing, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w: %w", path, engerr.ErrScriptCompileFailed, err)
	}

	chunk, err := parse.Parse(strings.NewReader(string(data)), path)
	if err != nil {
		return nil, fmt.Errorf("script: parse %s: %w: %w", path, engerr.ErrScriptCompileFailed, err)
	}
	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w: %w", path, engerr.ErrScriptCompileFailed, err)
	}

	m := &scriptModule{proto: proto, modTime: modTime}
	r.modules[path] = m
	return m, nil
}

func paramsTable(L *lua.LState, params Params) *lua.LTable {
	t := L.NewTable()
	for k, v := range params {
		switch val := v.(type) {
		case float32:
			t.RawSetString(k, lua.LNumber(val))
		case float64:
			t.RawSetString(k, lua.LNumber(val))
		case int:
			t.RawSetString(k, lua.LNumber(val))
		case bool:
			t.RawSetString(k, lua.LBool(val))
		case string:
			t.RawSetString(k, lua.LString(val))
		default:
			t.RawSetString(k, lua.LNil)
		}
	}
	return t
}

func (r *Runtime) newInstance(key instanceKey, path string, params Params) (*scriptInstance, error) {
	module, err := r.loadModule(path)
	if err != nil {
		return nil, err
	}

	L := lua.NewState()
	L.SetGlobal("params", paramsTable(L, params))

	fn := L.NewFunctionFromProto(module.proto)
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		L.Close()
		return nil, fmt.Errorf("script: run %s: %w: %w", path, engerr.ErrScriptRuntimeFailed, err)
	}

	return &scriptInstance{key: key, path: path, state: L, lastLoaded: module.modTime}, nil
}

func (r *Runtime) callFn(inst *scriptInstance, name string, ctx *callCtx, extra ...lua.LValue) error {
	fn := inst.state.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return nil
	}

	self := newSelfTable(inst.state, ctx)
	args := append([]lua.LValue{self}, extra...)
	if err := inst.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...); err != nil {
		return fmt.Errorf("script: %s %s: %w: %w", name, inst.path, engerr.ErrScriptRuntimeFailed, err)
	}
	return nil
}

func (r *Runtime) sortedKeys() []instanceKey {
	keys := make([]instanceKey, 0, len(r.instances))
	for k := range r.instances {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].entity != keys[j].entity {
			return keys[i].entity < keys[j].entity
		}
		return keys[i].slot < keys[j].slot
	})
	return keys
}

func (r *Runtime) destroyInstance(key instanceKey, w *ecsworld.World, phys *physics.World, in *input.State) error {
	inst, ok := r.instances[key]
	if !ok {
		return nil
	}
	ctx := &callCtx{entity: key.entity, world: w, phys: phys, input: in, commands: r.commands}
	err := r.callFn(inst, "on_destroy", ctx)
	inst.state.Close()
	delete(r.instances, key)
	return err
}

// syncInstances reconciles live instances against every entity's
// current ScriptComponent: creates instances for new attachments,
// tears down instances whose attachment disappeared, and (with hot
// reload enabled) reloads any instance whose file changed on disk.
func (r *Runtime) syncInstances(w *ecsworld.World, phys *physics.World, in *input.State) error {
	desired := make(map[instanceKey]bool)

	for _, pair := range ecsworld.Query[ScriptComponent](w) {
		for slot, att := range pair.Value.Scripts {
			key := instanceKey{entity: pair.Entity, slot: slot}
			desired[key] = true

			module, err := r.loadModule(att.Path)
			if err != nil {
				return err
			}

			if existing, ok := r.instances[key]; ok && r.hotReload && !existing.lastLoaded.Equal(module.modTime) {
				if err := r.destroyInstance(key, w, phys, in); err != nil {
					return err
				}
			}

			if _, ok := r.instances[key]; !ok {
				inst, err := r.newInstance(key, att.Path, att.Params)
				if err != nil {
					return err
				}
				r.instances[key] = inst
			}

			inst := r.instances[key]
			if !inst.hasStarted {
				ctx := &callCtx{entity: key.entity, world: w, phys: phys, input: in, commands: r.commands}
				if err := r.callFn(inst, "on_create", ctx); err != nil {
					return err
				}
				ctx = &callCtx{entity: key.entity, world: w, phys: phys, input: in, commands: r.commands}
				if err := r.callFn(inst, "on_start", ctx); err != nil {
					return err
				}
				inst.hasStarted = true
			}
		}
	}

	for _, key := range r.sortedKeys() {
		if !desired[key] {
			if err := r.destroyInstance(key, w, phys, in); err != nil {
				return err
			}
		}
	}
	return nil
}

// Update drives on_update across every script instance with the
// frame's variable delta time, then applies every queued command.
func (r *Runtime) Update(w *ecsworld.World, phys *physics.World, in *input.State, dt float32) error {
	if err := r.syncInstances(w, phys, in); err != nil {
		return err
	}
	for _, key := range r.sortedKeys() {
		inst := r.instances[key]
		ctx := &callCtx{entity: key.entity, world: w, phys: phys, input: in, commands: r.commands, dt: dt}
		if err := r.callFn(inst, "on_update", ctx, lua.LNumber(dt)); err != nil {
			return err
		}
	}
	r.commands.Apply(w, phys)
	return nil
}

// FixedUpdate drives on_fixed_update across every script instance with
// the engine's fixed timestep, then applies every queued command.
func (r *Runtime) FixedUpdate(w *ecsworld.World, phys *physics.World, in *input.State, fixedDt float32) error {
	if err := r.syncInstances(w, phys, in); err != nil {
		return err
	}
	for _, key := range r.sortedKeys() {
		inst := r.instances[key]
		ctx := &callCtx{entity: key.entity, world: w, phys: phys, input: in, commands: r.commands, fixedDt: fixedDt}
		if err := r.callFn(inst, "on_fixed_update", ctx, lua.LNumber(fixedDt)); err != nil {
			return err
		}
	}
	r.commands.Apply(w, phys)
	return nil
}

// HandlePhysicsEvents dispatches collision/trigger transitions to
// every script instance attached to either entity of the pair, from
// each side's point of view, then applies every queued command.
func (r *Runtime) HandlePhysicsEvents(events []physics.Event, w *ecsworld.World, phys *physics.World, in *input.State) error {
	for _, ev := range events {
		isTrigger := ev.Kind == physics.TriggerEnter || ev.Kind == physics.TriggerExit
		started := ev.Kind == physics.CollisionEnter || ev.Kind == physics.TriggerEnter

		if err := r.runEvent(ecsworld.EntityID(ev.A), ecsworld.EntityID(ev.B), isTrigger, started, w, phys, in); err != nil {
			return err
		}
		if err := r.runEvent(ecsworld.EntityID(ev.B), ecsworld.EntityID(ev.A), isTrigger, started, w, phys, in); err != nil {
			return err
		}
	}
	r.commands.Apply(w, phys)
	return nil
}

func (r *Runtime) runEvent(entity, other ecsworld.EntityID, isTrigger, started bool, w *ecsworld.World, phys *physics.World, in *input.State) error {
	fnName := eventFnName(isTrigger, started)
	for _, key := range r.sortedKeys() {
		if key.entity != entity {
			continue
		}
		inst := r.instances[key]
		ctx := &callCtx{entity: entity, world: w, phys: phys, input: in, commands: r.commands}
		if err := r.callFn(inst, fnName, ctx, lua.LNumber(other)); err != nil {
			return err
		}
	}
	return nil
}

func eventFnName(isTrigger, started bool) string {
	switch {
	case !isTrigger && started:
		return "on_collision_enter"
	case !isTrigger && !started:
		return "on_collision_exit"
	case isTrigger && started:
		return "on_trigger_enter"
	default:
		return "on_trigger_exit"
	}
}
