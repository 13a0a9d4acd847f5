package ecsworld

import "testing"

type transform struct {
	X, Y float32
}

func TestSpawnIdentityUniqueness(t *testing.T) {
	w := New()
	seen := make(map[EntityID]bool)
	for i := 0; i < 1000; i++ {
		id := w.Spawn()
		if seen[id] {
			t.Fatalf("duplicate entity id %d", id)
		}
		seen[id] = true
		if id == 0 {
			t.Fatalf("spawn returned zero id")
		}
	}
}

func TestDespawnIdempotent(t *testing.T) {
	w := New()
	e := w.Spawn()
	Insert(w, e, transform{1, 2})

	if !w.Despawn(e) {
		t.Fatalf("first despawn should report true")
	}
	if w.Despawn(e) {
		t.Fatalf("second despawn should report false")
	}
	if w.IsAlive(e) {
		t.Fatalf("entity should not be alive after despawn")
	}
	if _, ok := Get[transform](w, e); ok {
		t.Fatalf("component should be gone after despawn")
	}
}

func TestComponentRoundTrip(t *testing.T) {
	w := New()
	e := w.Spawn()

	Insert(w, e, transform{3, 4})
	got, ok := Get[transform](w, e)
	if !ok || got != (transform{3, 4}) {
		t.Fatalf("get after insert = %v, %v", got, ok)
	}

	old, ok := Remove[transform](w, e)
	if !ok || old != (transform{3, 4}) {
		t.Fatalf("remove = %v, %v", old, ok)
	}
	if _, ok := Get[transform](w, e); ok {
		t.Fatalf("get after remove should be absent")
	}
}

func TestScenarioS1(t *testing.T) {
	w := New()
	a := w.Spawn()
	b := w.Spawn()
	c := w.Spawn()
	Insert(w, a, transform{0, 0})
	Insert(w, b, transform{0, 0})
	Insert(w, c, transform{0, 0})

	w.Despawn(b)

	if w.Len() != 2 {
		t.Fatalf("len = %d, want 2", w.Len())
	}
	pairs := Query[transform](w)
	if len(pairs) != 2 {
		t.Fatalf("query returned %d pairs, want 2", len(pairs))
	}
	if pairs[0].Entity != a || pairs[1].Entity != c {
		t.Fatalf("unexpected surviving ids: %+v", pairs)
	}

	Insert(w, b, transform{9, 9})
	if _, ok := Get[transform](w, b); ok {
		t.Fatalf("insert onto despawned entity should be a no-op")
	}
}

func TestGetPtrMutationPersists(t *testing.T) {
	w := New()
	e := w.Spawn()
	Insert(w, e, transform{1, 1})

	p := GetPtr[transform](w, e)
	if p == nil {
		t.Fatalf("GetPtr returned nil for present component")
	}
	p.X = 42

	got, ok := Get[transform](w, e)
	if !ok || got.X != 42 {
		t.Fatalf("Get after pointer mutation = %v, %v, want X=42", got, ok)
	}

	p2 := GetPtr[transform](w, e)
	if p2 == nil || p2.X != 42 {
		t.Fatalf("GetPtr after mutation = %v, want X=42", p2)
	}
	if p2 != p {
		t.Fatalf("GetPtr returned a different pointer on second call; should alias the same stored value")
	}

	if got := GetPtr[transform](w, 999); got != nil {
		t.Fatalf("GetPtr for unknown entity = %v, want nil", got)
	}
}

func TestRestoreEntityPreservesIdentity(t *testing.T) {
	w := New()
	e := w.Spawn()
	Insert(w, e, transform{5, 5})
	w.Despawn(e)

	w.RestoreEntity(e)
	if !w.IsAlive(e) {
		t.Fatalf("restored entity should be alive")
	}
	Insert(w, e, transform{5, 5})
	got, ok := Get[transform](w, e)
	if !ok || got != (transform{5, 5}) {
		t.Fatalf("restored entity component = %v, %v", got, ok)
	}
}
