package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/forge2d/forge2d/components"
	"github.com/forge2d/forge2d/internal/ecsworld"
	"github.com/forge2d/forge2d/input"
	"github.com/forge2d/forge2d/math2d"
	"github.com/forge2d/forge2d/physics"
)

// callCtx is the per-call environment a lifecycle dispatch builds the
// "self" facet table against. One is built fresh for every on_*
// call, never reused across calls.
type callCtx struct {
	entity   ecsworld.EntityID
	world    *ecsworld.World
	phys     *physics.World
	input    *input.State
	commands *CommandBuffer
	dt       float32
	fixedDt  float32
}

func vec2Table(L *lua.LState, v math2d.Vec2) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("x", lua.LNumber(v.X))
	t.RawSetString("y", lua.LNumber(v.Y))
	return t
}

func tableVec2(t *lua.LTable) math2d.Vec2 {
	return math2d.Vec2{
		X: float32(lua.LVAsNumber(t.RawGetString("x"))),
		Y: float32(lua.LVAsNumber(t.RawGetString("y"))),
	}
}

func argVec2(L *lua.LState, idx int) math2d.Vec2 {
	t := L.CheckTable(idx)
	return tableVec2(t)
}

// newSelfTable builds the "self" argument passed as the first
// parameter of every lifecycle call.
func newSelfTable(L *lua.LState, ctx *callCtx) *lua.LTable {
	self := L.NewTable()

	self.RawSetString("entity", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(ctx.entity))
		return 1
	}))

	self.RawSetString("time", L.NewFunction(func(L *lua.LState) int {
		L.Push(newTimeTable(L, ctx))
		return 1
	}))

	self.RawSetString("input", L.NewFunction(func(L *lua.LState) int {
		L.Push(newInputTable(L, ctx))
		return 1
	}))

	self.RawSetString("world", L.NewFunction(func(L *lua.LState) int {
		L.Push(newWorldTable(L, ctx))
		return 1
	}))

	self.RawSetString("transform", L.NewFunction(func(L *lua.LState) int {
		if !ecsworld.Has[components.Transform](ctx.world, ctx.entity) {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(newTransformTable(L, ctx))
		return 1
	}))

	self.RawSetString("physics", L.NewFunction(func(L *lua.LState) int {
		if !ctx.phys.HasBody(physics.EntityID(ctx.entity)) {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(newPhysicsTable(L, ctx))
		return 1
	}))

	self.RawSetString("sprite", L.NewFunction(func(L *lua.LState) int {
		if !ecsworld.Has[components.Sprite](ctx.world, ctx.entity) {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(newSpriteTable(L, ctx))
		return 1
	}))

	self.RawSetString("position", L.NewFunction(func(L *lua.LState) int {
		t, ok := ecsworld.Get[components.Transform](ctx.world, ctx.entity)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(vec2Table(L, math2d.Vec2{X: t.Position.X, Y: t.Position.Y}))
		return 1
	}))

	self.RawSetString("set_position", L.NewFunction(func(L *lua.LState) int {
		pos := argVec2(L, 2)
		ctx.commands.SetTransform(ctx.entity, &pos, nil, nil)
		return 0
	}))

	self.RawSetString("apply_impulse", L.NewFunction(func(L *lua.LState) int {
		impulse := argVec2(L, 2)
		ctx.commands.ApplyImpulse(ctx.entity, impulse)
		return 0
	}))

	return self
}

func newTimeTable(L *lua.LState, ctx *callCtx) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("delta", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(ctx.dt))
		return 1
	}))
	t.RawSetString("fixed_delta", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(ctx.fixedDt))
		return 1
	}))
	return t
}

func newInputTable(L *lua.LState, ctx *callCtx) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("is_key_down", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(2)
		k, ok := parseKey(name)
		L.Push(lua.LBool(ok && ctx.input.Down(k)))
		return 1
	}))
	t.RawSetString("is_key_pressed", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(2)
		k, ok := parseKey(name)
		L.Push(lua.LBool(ok && ctx.input.Pressed(k)))
		return 1
	}))
	t.RawSetString("is_key_released", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(2)
		k, ok := parseKey(name)
		L.Push(lua.LBool(ok && ctx.input.Released(k)))
		return 1
	}))
	t.RawSetString("mouse_pos_screen", L.NewFunction(func(L *lua.LState) int {
		L.Push(vec2Table(L, ctx.input.MousePos))
		return 1
	}))
	return t
}

func newWorldTable(L *lua.LState, ctx *callCtx) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("find_by_tag", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(2)
		for _, pair := range ecsworld.Query[Tag](ctx.world) {
			if pair.Value.Value == name {
				L.Push(lua.LNumber(pair.Entity))
				return 1
			}
		}
		L.Push(lua.LNil)
		return 1
	}))
	t.RawSetString("despawn", L.NewFunction(func(L *lua.LState) int {
		id := ecsworld.EntityID(L.CheckNumber(2))
		ctx.commands.Despawn(id)
		return 0
	}))
	t.RawSetString("spawn_dynamic", L.NewFunction(func(L *lua.LState) int {
		pos := argVec2(L, 2)
		vel := argVec2(L, 3)
		ctx.commands.Spawn(SpawnRequest{
			Body:            SpawnBody{Dynamic: true, Position: pos},
			InitialVelocity: &vel,
		})
		return 0
	}))
	t.RawSetString("spawn_empty", L.NewFunction(func(L *lua.LState) int {
		req := SpawnRequest{}
		if posT, ok := L.Get(2).(*lua.LTable); ok {
			req.Body.Position = tableVec2(posT)
		}
		if tag, ok := L.Get(3).(lua.LString); ok {
			req.Tag = string(tag)
			req.HasTag = true
		}
		ctx.commands.Spawn(req)
		return 0
	}))
	return t
}

func newTransformTable(L *lua.LState, ctx *callCtx) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("position", L.NewFunction(func(L *lua.LState) int {
		tr, _ := ecsworld.Get[components.Transform](ctx.world, ctx.entity)
		L.Push(vec2Table(L, math2d.Vec2{X: tr.Position.X, Y: tr.Position.Y}))
		return 1
	}))
	t.RawSetString("rotation", L.NewFunction(func(L *lua.LState) int {
		tr, _ := ecsworld.Get[components.Transform](ctx.world, ctx.entity)
		L.Push(lua.LNumber(tr.Rotation))
		return 1
	}))
	t.RawSetString("set_position", L.NewFunction(func(L *lua.LState) int {
		pos := argVec2(L, 2)
		ctx.commands.SetTransform(ctx.entity, &pos, nil, nil)
		return 0
	}))
	t.RawSetString("set_rotation", L.NewFunction(func(L *lua.LState) int {
		rot := float32(L.CheckNumber(2))
		ctx.commands.SetTransform(ctx.entity, nil, &rot, nil)
		return 0
	}))
	t.RawSetString("set_scale", L.NewFunction(func(L *lua.LState) int {
		scale := argVec2(L, 2)
		ctx.commands.SetTransform(ctx.entity, nil, nil, &scale)
		return 0
	}))
	return t
}

func newPhysicsTable(L *lua.LState, ctx *callCtx) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("velocity", L.NewFunction(func(L *lua.LState) int {
		L.Push(vec2Table(L, ctx.phys.LinearVelocity(physics.EntityID(ctx.entity))))
		return 1
	}))
	t.RawSetString("set_velocity", L.NewFunction(func(L *lua.LState) int {
		v := argVec2(L, 2)
		ctx.commands.SetVelocity(ctx.entity, v)
		return 0
	}))
	t.RawSetString("apply_impulse", L.NewFunction(func(L *lua.LState) int {
		v := argVec2(L, 2)
		ctx.commands.ApplyImpulse(ctx.entity, v)
		return 0
	}))
	return t
}

func newSpriteTable(L *lua.LState, ctx *callCtx) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("set_visible", L.NewFunction(func(L *lua.LState) int {
		visible := L.CheckBool(2)
		ctx.commands.SetSpriteVisibility(ctx.entity, visible)
		return 0
	}))
	t.RawSetString("set_tint", L.NewFunction(func(L *lua.LState) int {
		tintT := L.CheckTable(2)
		var tint [4]float32
		for i := 0; i < 4; i++ {
			tint[i] = float32(lua.LVAsNumber(tintT.RawGetInt(i + 1)))
		}
		ctx.commands.SetSpriteTint(ctx.entity, tint)
		return 0
	}))
	return t
}

// parseKey maps a script-facing key name onto the engine's raylib-
// backed input.Key, mirroring script.rs's parse_key but against
// raylib key codes instead of winit's.
func parseKey(name string) (input.Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}
