package geometry

import "math"

// Profile is a 2D swept profile of an extrusion solid.
type Profile interface {
	isProfile()
}

// RectProfile is an axis-aligned rectangle profile.
type RectProfile struct {
	X, Y float64
}

func (RectProfile) isProfile() {}

// PolyProfile is an arbitrary closed profile given as a point ring.
// The ring is implicitly closed: the last point connects back to the first.
type PolyProfile struct {
	Points [][2]float64
}

func (PolyProfile) isProfile() {}

// Extrusion is a 2D profile swept along a depth.
type Extrusion struct {
	Profile Profile
	Depth   float64
}

// ComputeFromExtrusion derives area and volume analytically from an
// extrusion solid, without triangulation. Unsupported or missing profile
// kinds yield an empty Result, never an error.
func ComputeFromExtrusion(solid Extrusion) Result {
	var area float64

	switch p := solid.Profile.(type) {
	case RectProfile:
		area = p.X * p.Y
	case PolyProfile:
		if len(p.Points) < 3 {
			return Result{}
		}
		area = Shoelace(p.Points)
	default:
		return Result{}
	}

	volume := area * solid.Depth
	return Result{Area: &area, Volume: &volume}
}

// Shoelace computes the area of a closed polygon ring:
// abs(sum(x_i*y_{i+1} - x_{i+1}*y_i)) / 2, wrapping the last point to the
// first.
func Shoelace(points [][2]float64) float64 {
	var sum float64
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i][0]*points[j][1] - points[j][0]*points[i][1]
	}
	return math.Abs(sum) / 2
}
