package gaze

import (
	"math"

	"github.com/golang/geo/r3"
)

const degenerateAxisEpsilon = 1e-12

// PointOfInterest intersects the gaze ray (cornea center, visual axis) with
// the plane z = zShift. The axis does not need to be normalized. Rays that
// run (near) parallel to the plane, or whose intersection is not finite,
// yield ErrDegenerateRay.
func PointOfInterest(corneaCenter, visualAxis r3.Vector, zShift float64) (r3.Vector, error) {
	if math.Abs(visualAxis.Z) < degenerateAxisEpsilon {
		return r3.Vector{}, ErrDegenerateRay
	}
	k := (zShift - corneaCenter.Z) / visualAxis.Z
	poi := corneaCenter.Add(visualAxis.Mul(k))
	if !isFinite(poi) {
		return r3.Vector{}, ErrDegenerateRay
	}
	return poi, nil
}

func isFinite(v r3.Vector) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
