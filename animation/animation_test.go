package animation

import "testing"

func TestFromGrid(t *testing.T) {
	seq := FromGrid(4, 2, 6, 0, Loop)
	if len(seq.Frames) != 6 {
		t.Fatalf("len = %d, want 6", len(seq.Frames))
	}
	if seq.Frames[0] != (Rect{X: 0, Y: 0, W: 0.25, H: 0.5}) {
		t.Fatalf("frame 0 = %+v", seq.Frames[0])
	}
	if seq.Frames[4] != (Rect{X: 0, Y: 0.5, W: 0.25, H: 0.5}) {
		t.Fatalf("frame 4 = %+v", seq.Frames[4])
	}
}

func TestAnimatorLoop(t *testing.T) {
	seq := FromGrid(3, 1, 3, 10, Loop)
	a := NewAnimator(seq)

	a.Update(25)
	if a.Index != 2 {
		t.Fatalf("index = %d, want 2", a.Index)
	}
	a.Update(10)
	if a.Index != 0 || a.LoopCount != 1 {
		t.Fatalf("index=%d loopCount=%d, want 0/1", a.Index, a.LoopCount)
	}
}

func TestAnimatorOnceStops(t *testing.T) {
	seq := FromGrid(2, 1, 2, 10, Once)
	a := NewAnimator(seq)

	a.Update(25)
	if a.Index != 1 || a.Playing {
		t.Fatalf("index=%d playing=%v, want 1/false", a.Index, a.Playing)
	}
}

func TestAnimatorPingPong(t *testing.T) {
	seq := FromGrid(3, 1, 3, 10, PingPong)
	a := NewAnimator(seq)

	a.Update(10) // -> 1
	a.Update(10) // -> 2, reverse
	if a.Index != 2 {
		t.Fatalf("index = %d, want 2", a.Index)
	}
	a.Update(10) // -> 1
	a.Update(10) // -> 0
	if a.Index != 0 || a.LoopCount != 1 {
		t.Fatalf("index=%d loopCount=%d, want 0/1", a.Index, a.LoopCount)
	}
}
