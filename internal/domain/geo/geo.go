// Package geo provides the pure geometric primitives the rest of the
// planner is built on: great-circle distance and a local equirectangular
// projection. Neither function performs I/O and neither can fail.
package geo

import "math"

// EarthRadiusMiles is the mean Earth radius used for haversine distance.
const EarthRadiusMiles = 3958.7613

// milesPerDegreeLat is constant across the globe; milesPerDegreeLon varies
// with latitude and is computed per call in ToMilesXY.
const milesPerDegreeLat = 69.0

// Point is an immutable geographic coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// LonLat is a coordinate pair in (lon, lat) order, matching the GeoJSON
// and OSRM wire convention. Deliberately distinct from Point so that
// axis order is visible at the type level instead of relying on callers
// to remember which field comes first.
type LonLat struct {
	Lon float64
	Lat float64
}

// ToPoint converts a LonLat to the (lat, lon)-ordered Point used by the
// geo kernel's distance and projection functions.
func (p LonLat) ToPoint() Point { return Point{Lat: p.Lat, Lon: p.Lon} }

// HaversineMiles returns the great-circle distance between two points in miles.
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	phi1, phi2 := toRad(lat1), toRad(lat2)
	dPhi := toRad(lat2 - lat1)
	dLambda := toRad(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// Distance is a convenience wrapper around HaversineMiles for two Points.
func Distance(a, b Point) float64 {
	return HaversineMiles(a.Lat, a.Lon, b.Lat, b.Lon)
}

// XY is a point in a local miles-scale planar projection, valid only near
// the reference latitude it was computed with.
type XY struct {
	X float64
	Y float64
}

// ToMilesXY projects (lon, lat) into local planar miles around refLatDeg
// using an equirectangular approximation. Adequate for segment-local
// geometry over a few miles; not valid for long distances.
func ToMilesXY(lon, lat, refLatDeg float64) XY {
	milesPerDegreeLon := milesPerDegreeLat * math.Cos(refLatDeg*math.Pi/180)
	return XY{
		X: lon * milesPerDegreeLon,
		Y: lat * milesPerDegreeLat,
	}
}

// Sub returns a-b.
func (a XY) Sub(b XY) XY { return XY{X: a.X - b.X, Y: a.Y - b.Y} }

// Dot returns the dot product of a and b.
func (a XY) Dot(b XY) float64 { return a.X*b.X + a.Y*b.Y }

// Norm returns the Euclidean length of a.
func (a XY) Norm() float64 { return math.Sqrt(a.Dot(a)) }

// Clamp01 clamps t to [0, 1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
