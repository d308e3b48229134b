package geo

import (
	"math"
	"testing"
)

const (
	parisLat = 48.8566
	parisLng = 2.3522
	lyonLat  = 45.7640
	lyonLng  = 4.8357
)

func TestDistanceKmParisLyon(t *testing.T) {
	got := DistanceKm(parisLat, parisLng, lyonLat, lyonLng)
	// straight-line distance is roughly 392 km
	if got < 380 || got > 400 {
		t.Fatalf("unexpected Paris-Lyon distance %.1f km", got)
	}
}

func TestDistanceKmZeroForSamePoint(t *testing.T) {
	if d := DistanceKm(parisLat, parisLng, parisLat, parisLng); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}

func TestWithinRadius(t *testing.T) {
	// center is always inside its own radius, even a zero one
	if !WithinRadius(parisLat, parisLng, parisLat, parisLng, 0) {
		t.Fatal("center must be inside a zero radius")
	}

	// Lyon is outside a 100 km radius around Paris
	if WithinRadius(parisLat, parisLng, lyonLat, lyonLng, 100) {
		t.Fatal("Lyon should be outside 100 km of Paris")
	}

	// but inside a 400 km radius
	if !WithinRadius(parisLat, parisLng, lyonLat, lyonLng, 400) {
		t.Fatal("Lyon should be inside 400 km of Paris")
	}

	if WithinRadius(parisLat, parisLng, lyonLat, lyonLng, -1) {
		t.Fatal("negative radius matches nothing")
	}
}

func TestKmToRadians(t *testing.T) {
	if got := KmToRadians(EarthRadiusKm); math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected one radian, got %f", got)
	}
	if got := KmToRadians(10); math.Abs(got-10/EarthRadiusKm) > 1e-12 {
		t.Fatalf("unexpected conversion %f", got)
	}
}
