package engine

import (
	"testing"
)

func TestNextFloatRange(t *testing.T) {
	bg := NewByteGenerator(42)

	// 20 floats crosses the 32-byte round boundary
	for i := 0; i < 20; i++ {
		f := bg.NextFloat()
		if f < 0 || f >= 1 {
			t.Errorf("Float %d is out of range [0, 1): %f", i, f)
		}
	}
}

func TestInts(t *testing.T) {
	tests := []struct {
		name  string
		seed  int64
		count int
		min   int
		max   int
	}{
		{name: "defaults", seed: 42, count: 100, min: 1, max: 1000},
		{name: "small range", seed: 1, count: 10, min: 1, max: 10},
		{name: "single value range", seed: 7, count: 5, min: 5, max: 5},
		{name: "negative bounds", seed: 9, count: 20, min: -50, max: 50},
		{name: "crosses round boundary", seed: 123, count: 64, min: 1, max: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ints(tt.seed, tt.count, tt.min, tt.max)

			if len(got) != tt.count {
				t.Fatalf("Ints() returned %d values, want %d", len(got), tt.count)
			}

			for i, v := range got {
				if v < tt.min || v > tt.max {
					t.Errorf("Value %d out of range [%d, %d]: %d", i, tt.min, tt.max, v)
				}
			}
		})
	}
}

func TestIntsDeterministic(t *testing.T) {
	a := Ints(7, 50, 1, 100)
	b := Ints(7, 50, 1, 100)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Same seed diverged at index %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestIntsSeedsDiverge(t *testing.T) {
	a := Ints(7, 10, 1, 100)
	b := Ints(8, 10, 1, 100)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Different seeds produced identical sequences")
	}
}
