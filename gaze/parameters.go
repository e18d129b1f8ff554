// Package gaze holds the eye/camera data model and the geometric pipeline
// that turns a gaze estimate into a point on a display: eye parameters, a
// pinhole camera with extrinsic rotation, ray/plane intersection, and the
// world-to-screen mapping. Lengths are centimeters and angles radians unless
// stated otherwise.
package gaze

import "github.com/golang/geo/r3"

// EyeAndCameraParameters bundles the subject's eye geometry with the capture
// setup. Forward models read it; the calibration engine writes optimized
// fields back through slot selectors.
type EyeAndCameraParameters struct {
	// Alpha and Beta are the horizontal and vertical angular offsets
	// between the optical and the visual axis.
	Alpha float64
	Beta  float64
	// R is the corneal radius of curvature.
	R float64
	// K is the distance from the cornea center to the pupil center.
	K float64
	// N1 is the effective refractive index of cornea and aqueous humor,
	// N2 the refractive index of air.
	N1 float64
	N2 float64
	// D is the distance from the cornea center to the eyeball center.
	D float64

	Cameras []PinholeCamera
	// Lights are the positions of the glint-producing light sources.
	Lights []r3.Vector

	// DistanceToCameraEstimate is the assumed eye-to-camera distance used
	// by models that cannot triangulate depth.
	DistanceToCameraEstimate float64
}

// DefaultEyeParameters returns population-average eye geometry, the usual
// starting point before subject calibration.
func DefaultEyeParameters() EyeAndCameraParameters {
	return EyeAndCameraParameters{
		Alpha: -5.0 * deg,
		Beta:  1.5 * deg,
		R:     0.78,
		K:     0.42,
		N1:    1.3375,
		N2:    1.0,
		D:     0.53,
	}
}

// Clone returns an independent deep copy. The camera and light slices are
// duplicated so mutating the copy never leaks into the original.
func (p EyeAndCameraParameters) Clone() EyeAndCameraParameters {
	cloned := p
	cloned.Cameras = make([]PinholeCamera, len(p.Cameras))
	for i := range p.Cameras {
		cloned.Cameras[i] = p.Cameras[i].Clone()
	}
	cloned.Lights = append([]r3.Vector(nil), p.Lights...)
	return cloned
}
