package script

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/forge2d/forge2d/input"
)

// keyNames maps the lowercase-or-single-letter key names a script
// uses (e.g. "w", "space", "left") onto the engine's input.Key.
var keyNames = map[string]input.Key{
	"w": input.Key(rl.KeyW), "W": input.Key(rl.KeyW),
	"a": input.Key(rl.KeyA), "A": input.Key(rl.KeyA),
	"s": input.Key(rl.KeyS), "S": input.Key(rl.KeyS),
	"d": input.Key(rl.KeyD), "D": input.Key(rl.KeyD),
	"space": input.Key(rl.KeySpace), "Space": input.Key(rl.KeySpace),
	"left": input.Key(rl.KeyLeft), "Left": input.Key(rl.KeyLeft),
	"right": input.Key(rl.KeyRight), "Right": input.Key(rl.KeyRight),
	"up": input.Key(rl.KeyUp), "Up": input.Key(rl.KeyUp),
	"down": input.Key(rl.KeyDown), "Down": input.Key(rl.KeyDown),
	"enter": input.Key(rl.KeyEnter), "Enter": input.Key(rl.KeyEnter),
	"escape": input.Key(rl.KeyEscape), "Escape": input.Key(rl.KeyEscape),
}
