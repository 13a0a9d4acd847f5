// Package animation implements frame-sequence playback for sprites,
// grounded on original_source/forge2d/src/render/animation.rs.
package animation

import "time"

// Mode controls what happens when playback reaches the last frame.
type Mode int

const (
	Once Mode = iota
	Loop
	PingPong
)

// Rect is a normalized UV source rectangle within a texture.
type Rect struct {
	X, Y, W, H float32
}

// FrameSequence is a shared, immutable list of frames.
type FrameSequence struct {
	Frames        []Rect
	FrameDuration time.Duration
	Mode          Mode
}

// FromGrid builds a FrameSequence from a spritesheet grid, row by row
// starting top-left, mirroring animation.rs's from_grid.
func FromGrid(cols, rows, frameCount int, frameDuration time.Duration, mode Mode) FrameSequence {
	uvW := 1.0 / float32(cols)
	uvH := 1.0 / float32(rows)

	frames := make([]Rect, 0, frameCount)
	for i := 0; i < frameCount; i++ {
		col := i % cols
		row := i / cols
		frames = append(frames, Rect{
			X: float32(col) * uvW,
			Y: float32(row) * uvH,
			W: uvW,
			H: uvH,
		})
	}

	return FrameSequence{Frames: frames, FrameDuration: frameDuration, Mode: mode}
}

// Animator plays a FrameSequence, advancing its current frame each
// Update call.
type Animator struct {
	Sequence  FrameSequence
	Index     int
	elapsed   time.Duration
	Playing   bool
	Speed     float32
	pingDir   int
	LoopCount int
}

// NewAnimator starts an animator at frame 0, playing.
func NewAnimator(seq FrameSequence) *Animator {
	return &Animator{
		Sequence: seq,
		Playing:  true,
		Speed:    1,
		pingDir:  1,
	}
}

// Reset returns the animator to its first frame, playing.
func (a *Animator) Reset() {
	a.Index = 0
	a.elapsed = 0
	a.Playing = true
	a.pingDir = 1
}

// CurrentFrame returns the frame at the current index, or the zero
// Rect if the sequence is empty.
func (a *Animator) CurrentFrame() Rect {
	if len(a.Sequence.Frames) == 0 {
		return Rect{}
	}
	return a.Sequence.Frames[a.Index]
}

// Update advances playback by dt scaled by Speed.
func (a *Animator) Update(dt time.Duration) {
	if !a.Playing || len(a.Sequence.Frames) == 0 || a.Sequence.FrameDuration <= 0 {
		return
	}

	scaled := time.Duration(float32(dt) * a.Speed)
	a.elapsed += scaled

	for a.elapsed >= a.Sequence.FrameDuration {
		a.elapsed -= a.Sequence.FrameDuration
		a.advance()
		if !a.Playing {
			break
		}
	}
}

func (a *Animator) advance() {
	n := len(a.Sequence.Frames)
	switch a.Sequence.Mode {
	case Once:
		if a.Index+1 >= n {
			a.Index = n - 1
			a.Playing = false
			return
		}
		a.Index++
	case Loop:
		a.Index++
		if a.Index >= n {
			a.Index = 0
			a.LoopCount++
		}
	case PingPong:
		a.Index += a.pingDir
		if a.Index >= n-1 {
			a.Index = n - 1
			a.pingDir = -1
			if n > 1 {
				a.LoopCount++
			}
		} else if a.Index <= 0 {
			a.Index = 0
			a.pingDir = 1
		}
	}
}
