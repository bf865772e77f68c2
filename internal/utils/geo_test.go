package utils

import (
	"math"
	"testing"
)

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Dar es Salaam -> Dodoma is roughly 412 km great-circle.
	got := HaversineKm(-6.7924, 39.2083, -6.1630, 35.7516)
	if math.Abs(got-412) > 10 {
		t.Fatalf("Dar-Dodoma distance = %.2f, want ~412", got)
	}
}

func TestHaversineKm_ZeroForSamePoint(t *testing.T) {
	if got := HaversineKm(-6.8, 39.2, -6.8, 39.2); got != 0 {
		t.Fatalf("same point distance = %.2f, want 0", got)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := HaversineKm(-6.7924, 39.2083, -3.3869, 36.6830)
	b := HaversineKm(-3.3869, 36.6830, -6.7924, 39.2083)
	if a != b {
		t.Fatalf("distance not symmetric: %.2f vs %.2f", a, b)
	}
}
