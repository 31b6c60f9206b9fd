package embedding

import (
	"math"
	"testing"
)

func TestEmbedding_Dimensions(t *testing.T) {
	tests := []struct {
		name     string
		vector   []float32
		expected int
	}{
		{
			name:     "384 dimensions",
			vector:   make([]float32, 384),
			expected: 384,
		},
		{
			name:     "empty vector",
			vector:   []float32{},
			expected: 0,
		},
		{
			name:     "small vector",
			vector:   []float32{1.0, 2.0, 3.0},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emb := Embedding{Vector: tt.vector}
			if got := emb.Dimensions(); got != tt.expected {
				t.Errorf("Dimensions() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    []float32
		expected []float32
	}{
		{
			name:     "unit vector unchanged",
			input:    []float32{1, 0, 0},
			expected: []float32{1, 0, 0},
		},
		{
			name:     "3-4-5 triangle",
			input:    []float32{3, 4},
			expected: []float32{0.6, 0.8},
		},
		{
			name:     "negative components",
			input:    []float32{-3, 4},
			expected: []float32{-0.6, 0.8},
		},
		{
			name:     "zero vector unchanged",
			input:    []float32{0, 0, 0},
			expected: []float32{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("Normalize() length = %d, want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if math.Abs(float64(got[i]-tt.expected[i])) > 0.0001 {
					t.Errorf("Normalize()[%d] = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestNormalize_UnitLength(t *testing.T) {
	v := Normalize([]float32{1, 2, 3, 4, 5})

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if math.Abs(sum-1.0) > 0.0001 {
		t.Errorf("squared norm = %v, want 1.0", sum)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	once := Normalize([]float32{3, 4, 12})
	twice := Normalize(once)

	for i := range once {
		if math.Abs(float64(once[i]-twice[i])) > 0.0001 {
			t.Errorf("normalizing twice changed component %d: %v vs %v", i, once[i], twice[i])
		}
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	input := []float32{3, 4}
	Normalize(input)

	if input[0] != 3 || input[1] != 4 {
		t.Errorf("input mutated: %v", input)
	}
}

func TestEmbedding_Normalized(t *testing.T) {
	emb := Embedding{Vector: []float32{0, 5}}
	norm := emb.Normalized()

	if math.Abs(float64(norm.Vector[1]-1.0)) > 0.0001 {
		t.Errorf("Normalized() = %v, want [0 1]", norm.Vector)
	}
	if emb.Vector[1] != 5 {
		t.Errorf("original embedding mutated: %v", emb.Vector)
	}
}
