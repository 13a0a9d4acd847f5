// Package game implements the engine driver: it owns the window and
// render device, runs raylib's loop, and schedules one variable-rate
// update per redraw plus N fixed-rate updates driven by an
// accumulator. Grounded on pthm-soup/game/game.go's Update/Draw split
// and on original_source/forge2d/src/engine.rs for the accumulator and
// lifecycle contract.
package game

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/forge2d/forge2d/components"
	"github.com/forge2d/forge2d/config"
	"github.com/forge2d/forge2d/input"
	"github.com/forge2d/forge2d/internal/ecsworld"
	"github.com/forge2d/forge2d/math2d"
	"github.com/forge2d/forge2d/physics"
	"github.com/forge2d/forge2d/renderer"
	"github.com/forge2d/forge2d/script"
	"github.com/forge2d/forge2d/state"
	"github.com/forge2d/forge2d/telemetry"
)

// Engine owns every engine-level collaborator and drives the frame
// loop. A caller builds one with New, pushes an initial state.State
// with States().Push, then calls Run.
type Engine struct {
	cfg *config.Config

	renderer *renderer.Renderer
	input    *input.State
	inputAdp inputAdapter
	world    *ecsworld.World
	physics  *physics.World
	scripts  *script.Runtime
	states   *state.StateMachine

	watchedKeys    []input.Key
	watchedButtons []input.MouseButton

	perf *telemetry.PerfCollector

	accumulator float64
	lastFrame   time.Time
}

// inputAdapter satisfies state.InputSource's int32-keyed methods by
// forwarding to an *input.State's Key-typed ones — the state package
// deliberately avoids importing input, so the two key types don't
// unify on their own.
type inputAdapter struct{ s *input.State }

func (a inputAdapter) Down(key int32) bool     { return a.s.Down(input.Key(key)) }
func (a inputAdapter) Pressed(key int32) bool  { return a.s.Pressed(input.Key(key)) }
func (a inputAdapter) Released(key int32) bool { return a.s.Released(input.Key(key)) }

// New wires every engine collaborator from cfg: opens the window,
// allocates the scene/light render targets, and constructs the ECS
// world, physics world, and script runtime. The returned Engine has an
// empty state stack; push at least one state before calling Run.
func New(cfg *config.Config) (*Engine, error) {
	rend, err := renderer.New(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, renderer.Color{
		R: cfg.Renderer.AmbientR, G: cfg.Renderer.AmbientG, B: cfg.Renderer.AmbientB, A: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("game: creating renderer: %w", err)
	}
	rl.SetTargetFPS(cfg.Window.TargetFPS)

	in := input.New()

	watchedKeys := make([]input.Key, len(cfg.Input.WatchedKeys))
	for i, k := range cfg.Input.WatchedKeys {
		watchedKeys[i] = input.Key(k)
	}
	watchedButtons := make([]input.MouseButton, len(cfg.Input.WatchedButtons))
	for i, b := range cfg.Input.WatchedButtons {
		watchedButtons[i] = input.MouseButton(b)
	}

	e := &Engine{
		cfg:            cfg,
		renderer:       rend,
		input:          in,
		inputAdp:       inputAdapter{s: in},
		world:          ecsworld.New(),
		physics:        physics.New(math2d.Vec2{X: cfg.Physics.GravityX, Y: cfg.Physics.GravityY}),
		scripts:        script.New(),
		states:         state.New(),
		watchedKeys:    watchedKeys,
		watchedButtons: watchedButtons,
		perf:           telemetry.NewPerfCollector(int(cfg.Window.TargetFPS)),
	}
	return e, nil
}

// States exposes the state stack so callers can Push/Replace before
// and during Run.
func (e *Engine) States() *state.StateMachine { return e.states }

// World returns the ECS world backing this engine's entities.
func (e *Engine) World() *ecsworld.World { return e.world }

// Physics returns the rigid-body world stepped each fixed update.
func (e *Engine) Physics() *physics.World { return e.physics }

// Scripts returns the Lua scripting runtime dispatched each update and
// fixed update.
func (e *Engine) Scripts() *script.Runtime { return e.scripts }

// Run drives the frame loop until the window is closed or a state's
// update/draw returns an error, which is surfaced to the caller
// immediately — the loop does not retry a failed frame.
func (e *Engine) Run() error {
	if err := e.states.InitTop(e.engineContext(0)); err != nil {
		return err
	}
	e.lastFrame = time.Now()

	for !rl.WindowShouldClose() {
		if err := e.frame(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) frame() error {
	e.perf.StartTick()
	defer e.perf.EndTick()

	e.perf.StartPhase(telemetry.PhaseInput)
	e.input.BeginFrame(e.watchedKeys, e.watchedButtons)
	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		e.renderer.Resize(int32(w), int32(h))
	}

	now := time.Now()
	frameDt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now
	if frameDt > 0.25 {
		frameDt = 0.25 // clamp a hitch (debugger pause, asset load) so the accumulator doesn't spiral
	}

	e.perf.StartPhase(telemetry.PhaseUpdate)
	ctx := e.engineContext(frameDt)
	if err := e.states.UpdateTop(ctx); err != nil {
		return err
	}

	fixedDt := e.cfg.FixedStep.DT
	e.accumulator += float64(frameDt)

	e.perf.StartPhase(telemetry.PhaseFixedStep)
	steps := 0
	for e.accumulator >= fixedDt && steps < e.cfg.FixedStep.MaxStepsPerFrame {
		if err := e.fixedStep(float32(fixedDt)); err != nil {
			return err
		}
		e.accumulator -= fixedDt
		steps++
	}
	if steps == e.cfg.FixedStep.MaxStepsPerFrame && e.accumulator >= fixedDt {
		slog.Warn("game: fixed step budget exceeded, dropping accumulated time", "dropped_sec", e.accumulator)
		e.accumulator = 0
	}

	if err := e.states.ApplyTransitions(ctx); err != nil {
		return err
	}

	e.perf.StartPhase(telemetry.PhaseDraw)
	f := e.renderer.BeginFrame()
	if err := e.states.DrawAll(e.renderer, f); err != nil {
		return err
	}
	e.renderer.EndFrame(f, renderer.Color{})
	e.perf.RecordFrame()

	return nil
}

func (e *Engine) fixedStep(fixedDt float32) error {
	if err := e.scripts.FixedUpdate(e.world, e.physics, e.input, fixedDt); err != nil {
		return err
	}
	events := e.physics.Step(fixedDt, e.cfg.Physics.VelocityIterations, e.cfg.Physics.PositionIterations)
	if err := e.scripts.HandlePhysicsEvents(events, e.world, e.physics, e.input); err != nil {
		return err
	}
	e.syncTransforms()
	return nil
}

// syncTransforms copies each physics body's authoritative pose back
// into its entity's components.Transform, the final step of the fixed
// update pipeline.
func (e *Engine) syncTransforms() {
	for _, pe := range e.physics.Entities() {
		ee := ecsworld.EntityID(pe)
		t, ok := ecsworld.Get[components.Transform](e.world, ee)
		if !ok {
			continue
		}
		pos := e.physics.Position(pe)
		t.Position = components.Vec2{X: pos.X, Y: pos.Y}
		t.Rotation = e.physics.Rotation(pe)
		ecsworld.Insert(e.world, ee, t)
	}
}

func (e *Engine) engineContext(frameDt float32) *state.EngineContext {
	return &state.EngineContext{
		Input:   e.inputAdp,
		DtFixed: float32(e.cfg.FixedStep.DT),
		DtFrame: frameDt,
	}
}

// Unload releases the renderer's GPU resources and any open script
// instances. Call once after Run returns, before the process exits.
func (e *Engine) Unload() {
	e.scripts.Close()
	e.renderer.Unload()
}

// PerfStats returns the rolling frame/tick timing window, for an
// overlay or periodic log line.
func (e *Engine) PerfStats() telemetry.PerfStats {
	return e.perf.Stats()
}
