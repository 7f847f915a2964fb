package game

import "testing"

func TestPRNGDeterministic(t *testing.T) {
	a := NewPRNG(42)
	b := NewPRNG(42)
	for i := 0; i < 100; i++ {
		x, y := a.Next(), b.Next()
		if x != y {
			t.Fatalf("draw %d diverged: %v != %v", i, x, y)
		}
	}
}

func TestPRNGDifferentSeedsDiverge(t *testing.T) {
	a := NewPRNG(1)
	b := NewPRNG(2)
	diverged := false
	for i := 0; i < 10; i++ {
		if a.Next() != b.Next() {
			diverged = true
			break
		}
	}
	if !diverged {
		t.Fatal("expected at least one of the first 10 draws to differ between seeds 1 and 2")
	}
}

func TestPRNGRangeAndChanceBounds(t *testing.T) {
	rng := NewPRNG(9999)
	for i := 0; i < 1000; i++ {
		v := rng.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("Next() out of [0,1): %v", v)
		}
	}
	rng2 := NewPRNG(9999)
	for i := 0; i < 1000; i++ {
		v := rng2.Range(10, 20)
		if v < 10 || v >= 20 {
			t.Fatalf("Range(10,20) out of bounds: %v", v)
		}
	}
}

func TestPRNGZeroSeedMappedToOne(t *testing.T) {
	zero := NewPRNG(0)
	one := NewPRNG(1)
	if zero.Next() != one.Next() {
		t.Fatal("NewPRNG(0) should behave identically to NewPRNG(1)")
	}
}
