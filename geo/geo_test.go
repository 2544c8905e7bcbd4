package geo

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestHaversineDistanceM(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Coordinate
		wantM   float64
		toleM   float64
	}{
		{
			name:  "same point",
			a:     Coordinate{Lat: 40.7128, Lng: -74.0060},
			b:     Coordinate{Lat: 40.7128, Lng: -74.0060},
			wantM: 0,
			toleM: 1e-6,
		},
		{
			name:  "one minute of latitude is about 1852m",
			a:     Coordinate{Lat: 0, Lng: 0},
			b:     Coordinate{Lat: 1.0 / 60.0, Lng: 0},
			wantM: 1852,
			toleM: 5,
		},
		{
			name:  "short route from spec scenario 1 (~111m)",
			a:     Coordinate{Lat: 0, Lng: 0},
			b:     Coordinate{Lat: 0, Lng: 0.001},
			wantM: 111.19,
			toleM: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistanceM(tt.a, tt.b)
			if !almostEqual(got, tt.wantM, tt.toleM) {
				t.Errorf("HaversineDistanceM() = %v, want %v +/- %v", got, tt.wantM, tt.toleM)
			}
		})
	}
}

func TestSnapToSegment_ExactEndpoints(t *testing.T) {
	a := Coordinate{Lat: 0, Lng: 0}
	b := Coordinate{Lat: 0, Lng: 0.01}

	res := SnapToSegment(a, a, b)
	if res.T != 0 {
		t.Errorf("T = %v, want 0 at start endpoint", res.T)
	}
	if res.PerpendicularM > 0.5 {
		t.Errorf("PerpendicularM = %v, want <= 0.5 at exact endpoint", res.PerpendicularM)
	}

	res = SnapToSegment(b, a, b)
	if res.T != 1 {
		t.Errorf("T = %v, want 1 at end endpoint", res.T)
	}
}

func TestSnapToSegment_ClampsOutsideRange(t *testing.T) {
	a := Coordinate{Lat: 0, Lng: 0}
	b := Coordinate{Lat: 0, Lng: 0.01}

	before := Coordinate{Lat: 0, Lng: -0.01}
	res := SnapToSegment(before, a, b)
	if res.T != 0 {
		t.Errorf("T = %v, want clamped to 0 for a point behind the segment start", res.T)
	}

	after := Coordinate{Lat: 0, Lng: 0.02}
	res = SnapToSegment(after, a, b)
	if res.T != 1 {
		t.Errorf("T = %v, want clamped to 1 for a point past the segment end", res.T)
	}
}

func TestSnapToSegment_PerpendicularAccuracyUnder10km(t *testing.T) {
	// A ~1.1km segment with a point offset ~5.5m perpendicular, matching
	// spec scenario 2.
	a := Coordinate{Lat: 0, Lng: 0}
	b := Coordinate{Lat: 0, Lng: 0.01}
	p := Coordinate{Lat: 0.00005, Lng: 0.005}

	res := SnapToSegment(p, a, b)
	if res.PerpendicularM < 5 || res.PerpendicularM > 6 {
		t.Errorf("PerpendicularM = %v, want ~5.5m", res.PerpendicularM)
	}
}

func TestSnapToLineString_PicksClosestSegmentAndBreaksTies(t *testing.T) {
	line := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 0.01},
		{Lat: 0, Lng: 0.02},
	}

	p := Coordinate{Lat: 0.0001, Lng: 0.015}
	res := SnapToLineString(p, line)
	if res.SegmentIndex != 1 {
		t.Errorf("SegmentIndex = %v, want 1 (closest segment)", res.SegmentIndex)
	}

	// A point exactly on the shared vertex is equidistant from both
	// segments; the lowest segment index wins.
	onVertex := Coordinate{Lat: 0, Lng: 0.01}
	res = SnapToLineString(onVertex, line)
	if res.SegmentIndex != 0 {
		t.Errorf("SegmentIndex = %v, want 0 (tie-break to lowest index)", res.SegmentIndex)
	}
	if res.PerpendicularM > 0.5 {
		t.Errorf("PerpendicularM = %v, want <= 0.5 for a point exactly on the line", res.PerpendicularM)
	}
}

func TestSnapToLineString_NonNegativeAndBoundedByEndpoints(t *testing.T) {
	line := []Coordinate{
		{Lat: 10, Lng: 10},
		{Lat: 10.01, Lng: 10.01},
		{Lat: 10.02, Lng: 10.03},
	}
	p := Coordinate{Lat: 10.005, Lng: 10.02}

	res := SnapToLineString(p, line)
	if res.PerpendicularM < 0 {
		t.Fatalf("PerpendicularM = %v, must be non-negative", res.PerpendicularM)
	}

	minEndpointDist := math.Inf(1)
	for _, c := range line {
		if d := HaversineDistanceM(p, c); d < minEndpointDist {
			minEndpointDist = d
		}
	}
	if res.PerpendicularM > minEndpointDist+1e-6 {
		t.Errorf("PerpendicularM = %v, must be <= min distance to any endpoint (%v)", res.PerpendicularM, minEndpointDist)
	}
}

func TestCumulativeDistance(t *testing.T) {
	line := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 0.001},
		{Lat: 0, Lng: 0.002},
	}

	cum := CumulativeDistance(line)
	if len(cum) != len(line) {
		t.Fatalf("len(cum) = %v, want %v", len(cum), len(line))
	}
	if cum[0] != 0 {
		t.Errorf("cum[0] = %v, want 0", cum[0])
	}

	want := HaversineDistanceM(line[0], line[1]) + HaversineDistanceM(line[1], line[2])
	if !almostEqual(cum[2], want, want*1e-6) {
		t.Errorf("cum[2] = %v, want %v", cum[2], want)
	}
}

func TestRemainingDistanceOnLine(t *testing.T) {
	line := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 0.001},
		{Lat: 0, Lng: 0.002},
	}

	full := RemainingDistanceOnLine(line, 0, 0)
	want := HaversineDistanceM(line[0], line[1]) + HaversineDistanceM(line[1], line[2])
	if !almostEqual(full, want, want*1e-6) {
		t.Errorf("RemainingDistanceOnLine(0,0) = %v, want %v", full, want)
	}

	halfFirstSegment := RemainingDistanceOnLine(line, 0, 0.5)
	wantHalf := 0.5*HaversineDistanceM(line[0], line[1]) + HaversineDistanceM(line[1], line[2])
	if !almostEqual(halfFirstSegment, wantHalf, wantHalf*1e-6) {
		t.Errorf("RemainingDistanceOnLine(0,0.5) = %v, want %v", halfFirstSegment, wantHalf)
	}

	atEnd := RemainingDistanceOnLine(line, 1, 1)
	if !almostEqual(atEnd, 0, 1e-9) {
		t.Errorf("RemainingDistanceOnLine(lastSegment,1) = %v, want 0", atEnd)
	}
}
