package geo

import (
	"math"
	"testing"
)

func TestDistanceKmZeroForSamePoint(t *testing.T) {
	p := Point{Lat: -15.789012, Lng: -47.923456}
	if d := DistanceKm(p, p); d != 0 {
		t.Fatalf("distance to self = %f, want 0", d)
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	a := Point{Lat: -15.789012, Lng: -47.923456}
	b := Point{Lat: -15.7878, Lng: -47.9256}
	if ab, ba := DistanceKm(a, b), DistanceKm(b, a); math.Abs(ab-ba) > 1e-12 {
		t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
	}
}

func TestDistanceKmKnownSeparation(t *testing.T) {
	// One degree of latitude is roughly 111.2 km on a 6371 km sphere.
	a := Point{Lat: 0, Lng: 0}
	b := Point{Lat: 1, Lng: 0}
	d := DistanceKm(a, b)
	if d < 111 || d > 111.4 {
		t.Fatalf("one degree latitude distance = %f, want ~111.2", d)
	}
}
