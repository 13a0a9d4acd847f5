package renderer

import "testing"

func TestFrameSpriteBudget(t *testing.T) {
	f := newFrame()
	for i := 0; i < MaxSpritesPerFrame; i++ {
		if err := f.DrawSprite(1, [4]float32{0, 0, 1, 1}, 0, 0, 1, 1, 0, White, false, false, 0); err != nil {
			t.Fatalf("unexpected error at sprite %d: %v", i, err)
		}
	}
	if err := f.DrawSprite(1, [4]float32{0, 0, 1, 1}, 0, 0, 1, 1, 0, White, false, false, 0); err == nil {
		t.Fatal("expected budget error on overflow, got nil")
	}
}

func TestFrameSortsByZ(t *testing.T) {
	f := newFrame()
	f.DrawCircle(0, 0, 1, White, 5)
	f.DrawRect(0, 0, 1, 1, 0, White, 1)
	f.DrawRect(0, 0, 1, 1, 0, White, 3)

	sorted := f.sortedSceneCommands()
	if len(sorted) != 3 {
		t.Fatalf("len = %d, want 3", len(sorted))
	}
	if sorted[0].z != 1 || sorted[1].z != 3 || sorted[2].z != 5 {
		t.Fatalf("z order = %d,%d,%d, want 1,3,5", sorted[0].z, sorted[1].z, sorted[2].z)
	}
}

func TestFrameSeparatesLights(t *testing.T) {
	f := newFrame()
	f.DrawCircle(0, 0, 1, White, 0)
	f.DrawLight(10, 10, 50, 1, 1, White)

	if len(f.sortedSceneCommands()) != 1 {
		t.Fatalf("scene commands should exclude lights")
	}
	if len(f.lightCommands()) != 1 {
		t.Fatalf("expected 1 light command")
	}
}

func TestClamp01(t *testing.T) {
	if clamp01(-1) != 0 || clamp01(2) != 1 || clamp01(0.5) != 0.5 {
		t.Fatal("clamp01 out of range")
	}
}
