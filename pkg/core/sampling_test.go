package core

import (
	"fmt"
	"math/rand"
	"testing"
)

// scriptedSampler replays a fixed sequence of values
type scriptedSampler struct {
	values []float64
	next   int
}

func (s *scriptedSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *scriptedSampler) Get3D() Vec3 {
	return NewVec3(s.Get1D(), s.Get1D(), s.Get1D())
}

func TestSamplePointInUnitSphere_InsideBall(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	var mean Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		p := SamplePointInUnitSphere(sampler)
		if p.LengthSquared() >= 1.0 {
			t.Fatalf("Sample %d outside unit ball: %v", i, p)
		}
		mean = mean.Add(p)
	}

	// Uniform inside the ball is centered at the origin
	mean = mean.Multiply(1.0 / n)
	if mean.Length() > 0.02 {
		t.Errorf("Expected mean near origin, got %v", mean)
	}
}

func TestSamplePointInUnitSphere_RejectsCorners(t *testing.T) {
	// First draw maps to (1,1,1)-ish corner and must be rejected, second maps to the origin
	sampler := &scriptedSampler{values: []float64{0.99, 0.99, 0.99, 0.5, 0.5, 0.5}}

	p := SamplePointInUnitSphere(sampler)
	if !p.IsZero() {
		t.Errorf("Expected origin after one rejection, got %v", p)
	}
	if sampler.next != 6 {
		t.Errorf("Expected 6 draws, got %d", sampler.next)
	}
}

func TestSamplePointInUnitSphere_CapsIterations(t *testing.T) {
	// Every draw lands on a cube corner, so the loop must stop on its own
	sampler := &scriptedSampler{values: []float64{0.0}}

	p := SamplePointInUnitSphere(sampler)
	if !p.IsZero() {
		t.Errorf("Expected fallback origin, got %v", p)
	}
	if sampler.next != 3*maxRejectionDraws {
		t.Errorf("Expected %d draws, got %d", 3*maxRejectionDraws, sampler.next)
	}
}

func TestRowSeed(t *testing.T) {
	if RowSeed(42, 7) != RowSeed(42, 7) {
		t.Error("Expected the same row seed for equal inputs")
	}

	seen := make(map[int64]string)
	for seed := int64(40); seed < 44; seed++ {
		for row := 0; row < 100; row++ {
			key := fmt.Sprintf("seed %d row %d", seed, row)
			derived := RowSeed(seed, row)
			if other, ok := seen[derived]; ok {
				t.Fatalf("Expected distinct row seeds, %s and %s both give %d", key, other, derived)
			}
			seen[derived] = key
		}
	}
}

func TestRowSeed_NeighbouringSeedsDoNotShiftRows(t *testing.T) {
	for row := 0; row < 50; row++ {
		a := NewSeededSampler(RowSeed(10, row+1))
		b := NewSeededSampler(RowSeed(11, row))
		if a.Get1D() == b.Get1D() {
			t.Errorf("Row %d of seed 11 repeats row %d of seed 10", row, row+1)
		}
	}
}

func TestRandomSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(7)
	b := NewSeededSampler(7)
	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatalf("Streams with equal seeds diverged at draw %d", i)
		}
	}
}
