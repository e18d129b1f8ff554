package gaze

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/rdk/spatialmath"
	"gonum.org/v1/gonum/mat"
)

const deg = math.Pi / 180.0

// PinholeCamera models a pinhole camera with a two-angle extrinsic rotation.
// PixelPitchX/Y and FocalLength are in centimeters; the principal point is in
// pixels. The rotation matrix is derived lazily from the angles and cached
// until SetAngles invalidates it.
type PinholeCamera struct {
	PrincipalPointX float64
	PrincipalPointY float64
	PixelPitchX     float64
	PixelPitchY     float64
	FocalLength     float64
	Position        r3.Vector

	angleY float64
	angleZ float64
	rot    *mat.Dense
}

// SetAngles sets the extrinsic rotation angles (radians) and drops the cached
// rotation matrix.
func (c *PinholeCamera) SetAngles(angleY, angleZ float64) {
	c.angleY = angleY
	c.angleZ = angleZ
	c.rot = nil
}

func (c *PinholeCamera) AngleY() float64 { return c.angleY }
func (c *PinholeCamera) AngleZ() float64 { return c.angleZ }

// Clone returns a copy with its own rotation cache.
func (c PinholeCamera) Clone() PinholeCamera {
	c.rot = nil
	return c
}

// RotationMatrix returns the camera-to-world rotation R = Rz * Ry (the y
// rotation is applied first). The matrix is cached; callers must not mutate
// it.
func (c *PinholeCamera) RotationMatrix() *mat.Dense {
	if c.rot == nil {
		cy, sy := math.Cos(c.angleY), math.Sin(c.angleY)
		cz, sz := math.Cos(c.angleZ), math.Sin(c.angleZ)
		ry := mat.NewDense(3, 3, []float64{
			cy, 0, sy,
			0, 1, 0,
			-sy, 0, cy,
		})
		rz := mat.NewDense(3, 3, []float64{
			cz, -sz, 0,
			sz, cz, 0,
			0, 0, 1,
		})
		c.rot = mat.NewDense(3, 3, nil)
		c.rot.Mul(rz, ry)
	}
	return c.rot
}

// Pose exposes the camera extrinsics as a spatialmath pose.
func (c *PinholeCamera) Pose() (spatialmath.Pose, error) {
	m := c.RotationMatrix()
	rm, err := spatialmath.NewRotationMatrix([]float64{
		m.At(0, 0), m.At(0, 1), m.At(0, 2),
		m.At(1, 0), m.At(1, 1), m.At(1, 2),
		m.At(2, 0), m.At(2, 1), m.At(2, 2),
	})
	if err != nil {
		return nil, err
	}
	return spatialmath.NewPose(c.Position, rm), nil
}

// BackProject maps a pixel position to the unit world-space direction of the
// ray leaving the camera through that pixel.
func (c *PinholeCamera) BackProject(pixel r2.Point) r3.Vector {
	u := (pixel.X - c.PrincipalPointX) * c.PixelPitchX
	v := -(pixel.Y - c.PrincipalPointY) * c.PixelPitchY
	dir := r3.Vector{X: u, Y: v, Z: c.FocalLength}.Normalize()
	return rotate(c.RotationMatrix(), dir)
}

// Project maps a world-space direction to the pixel it falls on. Directions
// with no positive component along the camera axis cannot be projected.
func (c *PinholeCamera) Project(dir r3.Vector) (r2.Point, error) {
	local := rotateTransposed(c.RotationMatrix(), dir)
	if local.Z <= 1e-12 {
		return r2.Point{}, ErrBehindCamera
	}
	u := c.FocalLength * local.X / local.Z
	v := c.FocalLength * local.Y / local.Z
	return r2.Point{
		X: u/c.PixelPitchX + c.PrincipalPointX,
		Y: -v/c.PixelPitchY + c.PrincipalPointY,
	}, nil
}

func rotate(m *mat.Dense, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

func rotateTransposed(m *mat.Dense, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.At(0, 0)*v.X + m.At(1, 0)*v.Y + m.At(2, 0)*v.Z,
		Y: m.At(0, 1)*v.X + m.At(1, 1)*v.Y + m.At(2, 1)*v.Z,
		Z: m.At(0, 2)*v.X + m.At(1, 2)*v.Y + m.At(2, 2)*v.Z,
	}
}
