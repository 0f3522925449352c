package lootgen

import (
	"testing"
	"time"
)

func TestGenerate_SpawnsUpToShortage(t *testing.T) {
	gen := New(time.Second, 1.0)

	if got := gen.Generate(time.Hour, 0, 2); got != 2 {
		t.Fatalf("Generate = %d, want 2", got)
	}
}

func TestGenerate_NeverExceedsLooterCount(t *testing.T) {
	gen := New(time.Second, 1.0)

	if got := gen.Generate(time.Hour, 2, 2); got != 0 {
		t.Fatalf("no shortage: Generate = %d, want 0", got)
	}
	if got := gen.Generate(time.Hour, 5, 2); got != 0 {
		t.Fatalf("loot surplus: Generate = %d, want 0", got)
	}
}

func TestGenerate_ProbabilityScalesSpawn(t *testing.T) {
	// One full period at p=0.5 gives chance 0.5; shortage 2 rounds to 1.
	gen := New(time.Second, 0.5)

	if got := gen.Generate(time.Second, 0, 2); got != 1 {
		t.Fatalf("Generate = %d, want 1", got)
	}
}

func TestGenerate_AccumulatorResetsOnSpawn(t *testing.T) {
	gen := New(time.Second, 0.5)

	if got := gen.Generate(time.Second, 0, 2); got != 1 {
		t.Fatalf("first Generate = %d, want 1", got)
	}
	// The accumulator was consumed; a zero-delta call starts from scratch.
	if got := gen.Generate(0, 0, 2); got != 0 {
		t.Fatalf("after reset: Generate = %d, want 0", got)
	}
}

func TestGenerate_AccumulatesAcrossCalls(t *testing.T) {
	gen := New(time.Second, 0.5)

	// Half a period is not enough for shortage 1 to round up.
	if got := gen.Generate(500*time.Millisecond, 0, 1); got != 0 {
		t.Fatalf("half period: Generate = %d, want 0", got)
	}
	// The second half tops the accumulator up to one full period.
	if got := gen.Generate(500*time.Millisecond, 0, 1); got != 1 {
		t.Fatalf("full period: Generate = %d, want 1", got)
	}
}

func TestGenerate_RandomFactorApplied(t *testing.T) {
	gen := NewWithRandom(time.Second, 1.0, func() float64 { return 0.0 })

	if got := gen.Generate(time.Hour, 0, 10); got != 0 {
		t.Fatalf("zero random factor: Generate = %d, want 0", got)
	}
}

func TestGenerate_ZeroPeriod(t *testing.T) {
	gen := New(0, 1.0)

	if got := gen.Generate(time.Hour, 0, 5); got != 0 {
		t.Fatalf("zero period: Generate = %d, want 0", got)
	}
}
