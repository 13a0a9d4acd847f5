package renderer

import (
	"math/rand"

	"github.com/forge2d/forge2d/math2d"
)

// Particle is one live particle owned by an Emitter.
type Particle struct {
	Position        math2d.Vec2
	Velocity        math2d.Vec2
	Size            math2d.Vec2
	InitialSize     math2d.Vec2
	Color           Color
	Lifetime        float32
	MaxLifetime     float32
	Rotation        float32
	AngularVelocity float32
}

// Alive reports whether the particle still has lifetime remaining.
func (p *Particle) Alive() bool { return p.Lifetime > 0 }

// Age returns the normalized age in [0,1]: 0 just spawned, 1 about to die.
func (p *Particle) Age() float32 {
	if p.MaxLifetime <= 0 {
		return 0
	}
	return 1 - p.Lifetime/p.MaxLifetime
}

// EmissionConfig configures how an Emitter spawns particles, grounded
// on render/particles.rs's EmissionConfig builder.
type EmissionConfig struct {
	ParticlesPerSecond float32
	BurstCount         int
	Position           math2d.Vec2
	PositionVariance   math2d.Vec2
	VelocityMin        math2d.Vec2
	VelocityMax        math2d.Vec2
	SizeMin            math2d.Vec2
	SizeMax            math2d.Vec2
	ColorStart         Color
	ColorEnd           *Color
	LifetimeMin        float32
	LifetimeMax        float32
	Acceleration       math2d.Vec2
	AngularVelocityMin float32
	AngularVelocityMax float32
	SizeEndMultiplier  float32
	FadeOut            bool
}

// DefaultEmissionConfig returns sensible spawn defaults at position.
func DefaultEmissionConfig(position math2d.Vec2) EmissionConfig {
	return EmissionConfig{
		Position:          position,
		VelocityMin:       math2d.Vec2{X: -50, Y: -50},
		VelocityMax:       math2d.Vec2{X: 50, Y: 50},
		SizeMin:           math2d.Vec2{X: 2, Y: 2},
		SizeMax:           math2d.Vec2{X: 4, Y: 4},
		ColorStart:        White,
		LifetimeMin:       0.5,
		LifetimeMax:       2.0,
		SizeEndMultiplier: 1,
		FadeOut:           true,
	}
}

// Emitter spawns and updates a bounded pool of particles, continuous
// (ParticlesPerSecond) and/or a one-shot burst.
type Emitter struct {
	Config       EmissionConfig
	particles    []Particle
	spawnTimer   float32
	burstEmitted bool
	maxParticles int
	texture      uint32 // 0 = draw as plain circles
	rng          *rand.Rand
}

// NewEmitter creates an emitter bounded to maxParticles live particles.
func NewEmitter(config EmissionConfig, maxParticles int, rng *rand.Rand) *Emitter {
	return &Emitter{Config: config, maxParticles: maxParticles, rng: rng}
}

// SetTexture sets the texture drawn per particle (0 reverts to circles).
func (e *Emitter) SetTexture(tex uint32) { e.texture = tex }

// Count returns the number of currently live particles.
func (e *Emitter) Count() int { return len(e.particles) }

// Update advances spawn timers and existing particles by dt, removing
// any that expired.
func (e *Emitter) Update(dt float32) {
	c := &e.Config

	if c.ParticlesPerSecond > 0 {
		e.spawnTimer += dt
		interval := 1 / c.ParticlesPerSecond
		for e.spawnTimer >= interval {
			e.spawnTimer -= interval
			e.spawnOne()
		}
	}

	if c.BurstCount > 0 && !e.burstEmitted {
		for i := 0; i < c.BurstCount; i++ {
			e.spawnOne()
		}
		e.burstEmitted = true
	}

	alive := e.particles[:0]
	for i := range e.particles {
		p := &e.particles[i]
		p.Lifetime -= dt
		if p.Lifetime <= 0 {
			continue
		}

		p.Velocity = p.Velocity.Add(c.Acceleration.Scale(dt))
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
		p.Rotation += p.AngularVelocity * dt

		age := p.Age()
		sizeMul := 1 + (c.SizeEndMultiplier-1)*age
		p.Size = math2d.Vec2{X: p.InitialSize.X * sizeMul, Y: p.InitialSize.Y * sizeMul}

		if c.ColorEnd != nil {
			p.Color = lerpColor(c.ColorStart, *c.ColorEnd, age)
		}
		if c.FadeOut {
			p.Color.A = p.Color.A * (1 - age)
		}

		alive = append(alive, *p)
	}
	e.particles = alive
}

func (e *Emitter) spawnOne() {
	if len(e.particles) >= e.maxParticles {
		return
	}
	c := &e.Config

	pos := c.Position.Add(math2d.Vec2{
		X: (e.rng.Float32()*2 - 1) * c.PositionVariance.X,
		Y: (e.rng.Float32()*2 - 1) * c.PositionVariance.Y,
	})
	vel := math2d.Vec2{
		X: lerpf(c.VelocityMin.X, c.VelocityMax.X, e.rng.Float32()),
		Y: lerpf(c.VelocityMin.Y, c.VelocityMax.Y, e.rng.Float32()),
	}
	size := math2d.Vec2{
		X: lerpf(c.SizeMin.X, c.SizeMax.X, e.rng.Float32()),
		Y: lerpf(c.SizeMin.Y, c.SizeMax.Y, e.rng.Float32()),
	}
	lifetime := lerpf(c.LifetimeMin, c.LifetimeMax, e.rng.Float32())
	angVel := lerpf(c.AngularVelocityMin, c.AngularVelocityMax, e.rng.Float32())

	e.particles = append(e.particles, Particle{
		Position: pos, Velocity: vel, Size: size, InitialSize: size,
		Color: c.ColorStart, Lifetime: lifetime, MaxLifetime: lifetime,
		AngularVelocity: angVel,
	})
}

// Draw queues every live particle into f as a circle, or a sprite if a
// texture has been set via SetTexture.
func (e *Emitter) Draw(f *Frame, z int32) {
	for i := range e.particles {
		p := &e.particles[i]
		if e.texture == 0 {
			f.DrawCircle(p.Position.X, p.Position.Y, (p.Size.X+p.Size.Y)/4, p.Color, z)
			continue
		}
		_ = f.DrawSprite(e.texture, [4]float32{0, 0, 1, 1}, p.Position.X, p.Position.Y, p.Size.X, p.Size.Y, p.Rotation, p.Color, false, false, z)
	}
}

func lerpf(a, b, t float32) float32 { return a + (b-a)*t }

func lerpColor(a, b Color, t float32) Color {
	return Color{
		R: lerpf(a.R, b.R, t),
		G: lerpf(a.G, b.G, t),
		B: lerpf(a.B, b.B, t),
		A: lerpf(a.A, b.A, t),
	}
}
