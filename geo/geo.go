// Package geo implements the great-circle and planar geometry primitives
// the navigation controller snaps locations against: haversine distance,
// nearest point on a segment, nearest point on a line string, and
// cumulative/remaining distance along a line string.
//
// Every function here is pure and allocation-light; none of them touch a
// clock, a lock, or the network.
package geo

import "math"

// earthRadiusM is the mean earth radius used throughout this package, in
// meters.
const earthRadiusM = 6371000.0

// Coordinate is a point on the earth's surface, in degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180.0 }
func toDegrees(rad float64) float64 { return rad * 180.0 / math.Pi }

// HaversineDistanceM returns the great-circle distance between a and b in
// meters.
func HaversineDistanceM(a, b Coordinate) float64 {
	lat1, lat2 := toRadians(a.Lat), toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	sinDLat2 := math.Sin(dLat / 2)
	sinDLng2 := math.Sin(dLng / 2)

	h := sinDLat2*sinDLat2 + math.Cos(lat1)*math.Cos(lat2)*sinDLng2*sinDLng2
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusM * c
}

// SnapResult is the result of projecting a point onto a segment or a line
// string.
type SnapResult struct {
	// Snapped is the projected point.
	Snapped Coordinate
	// T is the along-segment parameter in [0, 1], where 0 is the segment
	// start and 1 is the segment end.
	T float64
	// PerpendicularM is the haversine distance in meters from the
	// original point to Snapped.
	PerpendicularM float64
}

// LineStringSnapResult is SnapResult plus the index of the segment the
// snap landed on, for a multi-segment line string.
type LineStringSnapResult struct {
	SnapResult
	SegmentIndex int
}

// SnapToSegment projects p onto the great-circle segment ab, clamping the
// along-segment parameter to [0, 1].
//
// For segments shorter than roughly 10km, an equirectangular planar
// approximation about the segment midpoint is accurate to within 0.5m of
// the true spherical projection and is what this function computes;
// segments of this length are the norm for a single route step, so no
// more expensive projection is needed.
func SnapToSegment(p, a, b Coordinate) SnapResult {
	// Project onto a local planar frame centered at the segment midpoint,
	// scaling longitude by cos(latitude) so that x/y are both in meters.
	midLatRad := toRadians((a.Lat + b.Lat) / 2)
	cosMidLat := math.Cos(midLatRad)

	toXY := func(c Coordinate) (x, y float64) {
		x = toRadians(c.Lng) * cosMidLat * earthRadiusM
		y = toRadians(c.Lat) * earthRadiusM
		return
	}

	ax, ay := toXY(a)
	bx, by := toXY(b)
	px, py := toXY(p)

	dx, dy := bx-ax, by-ay
	segLenSq := dx*dx + dy*dy

	var t float64
	if segLenSq > 0 {
		t = ((px-ax)*dx + (py-ay)*dy) / segLenSq
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	snapX := ax + t*dx
	snapY := ay + t*dy

	snapLatRad := snapY / earthRadiusM
	snapLngRad := snapX / (cosMidLat * earthRadiusM)
	snapped := Coordinate{Lat: toDegrees(snapLatRad), Lng: toDegrees(snapLngRad)}

	return SnapResult{
		Snapped:        snapped,
		T:              t,
		PerpendicularM: HaversineDistanceM(p, snapped),
	}
}

// SnapToLineString projects p onto every segment of line and returns the
// closest one, breaking ties by the lowest segment index and then the
// lowest T. line must contain at least two points; calling this with fewer
// is a programmer error the Route constructor is responsible for
// preventing.
func SnapToLineString(p Coordinate, line []Coordinate) LineStringSnapResult {
	best := LineStringSnapResult{
		SnapResult:   SnapToSegment(p, line[0], line[1]),
		SegmentIndex: 0,
	}

	for i := 1; i < len(line)-1; i++ {
		candidate := SnapToSegment(p, line[i], line[i+1])
		if candidate.PerpendicularM < best.PerpendicularM {
			best = LineStringSnapResult{SnapResult: candidate, SegmentIndex: i}
		}
	}

	return best
}

// CumulativeDistance returns the prefix sums of segment lengths along
// line, in meters. The result has the same length as line; index 0 is
// always 0.
func CumulativeDistance(line []Coordinate) []float64 {
	cum := make([]float64, len(line))
	for i := 1; i < len(line); i++ {
		cum[i] = cum[i-1] + HaversineDistanceM(line[i-1], line[i])
	}
	return cum
}

// SegmentLength returns the haversine length in meters of segment i of
// line (between line[i] and line[i+1]).
func SegmentLength(line []Coordinate, i int) float64 {
	return HaversineDistanceM(line[i], line[i+1])
}

// RemainingDistanceOnLine returns the arc length from the point at
// parameter t on segment segmentIndex to the end of line:
// (1-t) * len(segment segmentIndex) + sum of the lengths of every
// subsequent segment.
func RemainingDistanceOnLine(line []Coordinate, segmentIndex int, t float64) float64 {
	if len(line) < 2 {
		return 0
	}

	remaining := (1 - t) * SegmentLength(line, segmentIndex)
	for j := segmentIndex + 1; j < len(line)-1; j++ {
		remaining += SegmentLength(line, j)
	}
	return remaining
}
