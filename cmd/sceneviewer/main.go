// Scene viewer: loads a scene JSON file and plays it through the
// engine driver so a saved level can be inspected outside of a game
// binary, the way potentialpreview let a designer inspect generator
// output interactively.
//
// Usage: go run ./cmd/sceneviewer -scene level.json
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/forge2d/forge2d/config"
	"github.com/forge2d/forge2d/game"
	"github.com/forge2d/forge2d/internal/ecsworld"
	"github.com/forge2d/forge2d/physics"
	"github.com/forge2d/forge2d/renderer"
	"github.com/forge2d/forge2d/scene"
	"github.com/forge2d/forge2d/state"
)

func main() {
	scenePath := flag.String("scene", "", "Path to a scene JSON file to load")
	configPath := flag.String("config", "", "Path to a YAML config file overriding the embedded defaults")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "sceneviewer: -scene is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sceneviewer: %v\n", err)
		os.Exit(1)
	}
	sc, err := scene.FromJSON(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sceneviewer: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sceneviewer: %v\n", err)
		os.Exit(1)
	}

	eng, err := game.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sceneviewer: %v\n", err)
		os.Exit(1)
	}
	defer eng.Unload()

	eng.States().Push(newViewerState(eng, sc))

	if err := eng.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "sceneviewer: %v\n", err)
		os.Exit(1)
	}
}

// viewerState restores a loaded scene's bodies into the engine's
// physics world and marks each body's entity id live in its ECS world
// (no Transform is attached), then
// draws each entity's collider shape every frame so the scene's
// simulated motion is visible without any game-specific rendering.
type viewerState struct {
	state.BaseState
	eng   *game.Engine
	scene *scene.Scene
}

func newViewerState(eng *game.Engine, sc *scene.Scene) *viewerState {
	return &viewerState{eng: eng, scene: sc}
}

func (s *viewerState) OnEnter(*state.EngineContext) error {
	if err := scene.RestoreScenePhysics(s.eng.Physics(), s.scene); err != nil {
		return err
	}
	w := s.eng.World()
	for _, b := range s.scene.Physics.Bodies {
		w.RestoreEntity(ecsworld.EntityID(b.Entity))
	}
	return nil
}

func (s *viewerState) Update(*state.EngineContext, state.StateMachineLike) error {
	return nil
}

func (s *viewerState) Draw(r *renderer.Renderer, f *renderer.Frame) error {
	p := s.eng.Physics()
	for _, e := range p.Entities() {
		pos := p.Position(e)
		rot := p.Rotation(e)
		color := colorForKind(p.KindOf(e))
		for _, c := range p.CollidersOf(e) {
			switch c.Shape.Kind {
			case physics.ShapeCircle:
				f.DrawCircle(pos.X+c.Offset.X, pos.Y+c.Offset.Y, c.Shape.Radius, color, 0)
			default:
				f.DrawRect(pos.X+c.Offset.X, pos.Y+c.Offset.Y, c.Shape.HalfWidth*2, c.Shape.HalfHeigh*2, rot, color, 0)
			}
		}
	}
	f.DrawText(0, fmt.Sprintf("entities: %d", len(p.Entities())), 10, 10, 20, renderer.White, 100)
	return nil
}

func colorForKind(k physics.BodyKind) renderer.Color {
	if k == physics.Dynamic {
		return renderer.Color{R: 0.8, G: 0.5, B: 0.2, A: 1}
	}
	return renderer.Color{R: 0.4, G: 0.4, B: 0.45, A: 1}
}
