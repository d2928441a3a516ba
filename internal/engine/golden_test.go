package engine

import (
	"testing"
)

// Golden vectors pin the generator's exact output. The values were computed
// from the algorithm definition (HMAC-SHA256 keyed by the decimal seed,
// message "array:<round>", 4 bytes per float, floor(f * span) per draw) in
// an independent implementation. Any change here is a breaking change to
// stored-array reproducibility.
type intsVector struct {
	description string
	seed        int64
	count       int
	min         int
	max         int
	expected    []int
}

func TestIntsGoldenVectors(t *testing.T) {
	vectors := []intsVector{
		{
			description: "seed 7, 10 draws in [1,100]",
			seed:        7,
			count:       10,
			min:         1,
			max:         100,
			expected:    []int{1, 51, 47, 24, 85, 93, 31, 15, 43, 78},
		},
		{
			description: "seed 42, 12 draws in [1,1000], crosses round boundary",
			seed:        42,
			count:       12,
			min:         1,
			max:         1000,
			expected:    []int{311, 841, 244, 562, 73, 450, 477, 553, 682, 802, 784, 234},
		},
	}

	for _, v := range vectors {
		t.Run(v.description, func(t *testing.T) {
			actual := Ints(v.seed, v.count, v.min, v.max)

			if len(actual) != len(v.expected) {
				t.Fatalf("Length mismatch: got %d values, want %d", len(actual), len(v.expected))
			}

			for i := range actual {
				if actual[i] != v.expected[i] {
					t.Errorf("Value %d mismatch: got %d, want %d", i, actual[i], v.expected[i])
				}
			}
		})
	}
}

func TestFirstFloatGolden(t *testing.T) {
	bg := NewByteGenerator(42)

	const want = 0.31009773002006114
	if got := bg.NextFloat(); got != want {
		t.Errorf("First float for seed 42: got %.17f, want %.17f", got, want)
	}
}
