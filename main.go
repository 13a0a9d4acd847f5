package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/forge2d/forge2d/components"
	"github.com/forge2d/forge2d/config"
	"github.com/forge2d/forge2d/game"
	"github.com/forge2d/forge2d/internal/ecsworld"
	"github.com/forge2d/forge2d/math2d"
	"github.com/forge2d/forge2d/physics"
	"github.com/forge2d/forge2d/renderer"
	"github.com/forge2d/forge2d/state"
)

var (
	configPath = flag.String("config", "", "Path to a YAML config file overriding the embedded defaults")
	perfLog    = flag.Bool("perf", false, "Log a rolling perf summary every 5 seconds")
	seed       = flag.Int64("seed", 1, "RNG seed for the sandbox's initial body placement")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "forge2d: %v\n", err)
		os.Exit(1)
	}

	eng, err := game.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "forge2d: %v\n", err)
		os.Exit(1)
	}
	defer eng.Unload()
	defer rl.CloseWindow()

	eng.States().Push(newSandboxState(eng, *seed))

	if *perfLog {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		go func() {
			for range ticker.C {
				eng.LogFrameStats()
			}
		}()
	}

	if err := eng.Run(); err != nil {
		slog.Error("forge2d: fatal", "err", err)
		os.Exit(1)
	}
}

// sandboxState is the shipped demo: a ground plane and a handful of
// falling dynamic bodies, rendered as tinted rectangles/circles. It
// exists to exercise physics, the ECS world, and the renderer together
// through the Engine Driver, the way cmd/sceneviewer exercises scene
// loading.
type sandboxState struct {
	state.BaseState
	eng *game.Engine
	rng *rand.Rand
}

func newSandboxState(eng *game.Engine, seed int64) *sandboxState {
	return &sandboxState{eng: eng, rng: rand.New(rand.NewSource(seed))}
}

func (s *sandboxState) OnEnter(*state.EngineContext) error {
	w := s.eng.World()
	p := s.eng.Physics()

	ground := w.Spawn()
	ecsworld.Insert(w, ground, components.Transform{Position: components.Vec2{X: 640, Y: 680}, Scale: components.Vec2{X: 1, Y: 1}})
	ecsworld.Insert(w, ground, components.Sprite{Tint: [4]float32{0.3, 0.3, 0.35, 1}, Visible: true})
	p.CreateBody(physics.EntityID(ground), physics.Fixed, math2d.Vec2{X: 640, Y: 680}, 0)
	if _, err := p.AddCollider(physics.EntityID(ground), physics.Shape{Kind: physics.ShapeBox, HalfWidth: 600, HalfHeigh: 20}, math2d.Vec2{}, 1); err != nil {
		return err
	}

	for i := 0; i < 12; i++ {
		x := 200 + s.rng.Float32()*880
		y := -float32(i) * 60
		e := w.Spawn()
		ecsworld.Insert(w, e, components.Transform{Position: components.Vec2{X: x, Y: y}, Scale: components.Vec2{X: 1, Y: 1}})
		ecsworld.Insert(w, e, components.Sprite{Tint: randomTint(s.rng), Visible: true})
		p.CreateBody(physics.EntityID(e), physics.Dynamic, math2d.Vec2{X: x, Y: y}, 0)
		if _, err := p.AddCollider(physics.EntityID(e), physics.Shape{Kind: physics.ShapeCircle, Radius: 16}, math2d.Vec2{}, 1); err != nil {
			return err
		}
	}
	return nil
}

// Update has nothing to do each frame: the sandbox has no game logic of
// its own, only the physics/script/render pipeline the engine already
// drives. Raylib's default exit key (Escape) closes the window without
// the state needing to request a pop.
func (s *sandboxState) Update(*state.EngineContext, state.StateMachineLike) error {
	return nil
}

func (s *sandboxState) Draw(r *renderer.Renderer, f *renderer.Frame) error {
	w := s.eng.World()
	for _, pair := range ecsworld.Query[components.Transform](w) {
		sprite, ok := ecsworld.Get[components.Sprite](w, pair.Entity)
		if !ok || !sprite.Visible {
			continue
		}
		t := pair.Value
		color := renderer.Color{R: sprite.Tint[0], G: sprite.Tint[1], B: sprite.Tint[2], A: sprite.Tint[3]}
		if cs := s.eng.Physics().CollidersOf(physics.EntityID(pair.Entity)); len(cs) > 0 && cs[0].Shape.Kind == physics.ShapeBox {
			f.DrawRect(t.Position.X, t.Position.Y, cs[0].Shape.HalfWidth*2, cs[0].Shape.HalfHeigh*2, t.Rotation, color, sprite.ZOrder)
			continue
		}
		f.DrawCircle(t.Position.X, t.Position.Y, 16, color, sprite.ZOrder)
	}
	f.DrawText(0, fmt.Sprintf("bodies: %d", s.eng.World().Len()), 10, 10, 20, renderer.White, 100)
	return nil
}

func randomTint(rng *rand.Rand) [4]float32 {
	return [4]float32{0.3 + rng.Float32()*0.7, 0.3 + rng.Float32()*0.7, 0.3 + rng.Float32()*0.7, 1}
}
