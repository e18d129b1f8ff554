package gaze

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// ScreenGeometry describes the display: physical size in centimeters and
// resolution in pixels. The screen lies in the world plane z = 0 with its
// origin pixel at the world origin; pixel y grows downward while world y
// grows upward, hence the sign flip in both conversions.
type ScreenGeometry struct {
	WidthCm     float64
	HeightCm    float64
	ResolutionX float64
	ResolutionY float64
}

// PixelPitchX returns the horizontal size of one pixel in centimeters.
func (g ScreenGeometry) PixelPitchX() float64 {
	return g.WidthCm / g.ResolutionX
}

// PixelPitchY returns the vertical size of one pixel in centimeters.
func (g ScreenGeometry) PixelPitchY() float64 {
	return g.HeightCm / g.ResolutionY
}

// ToPixels converts a world point on the screen plane to pixel coordinates.
func (g ScreenGeometry) ToPixels(world r3.Vector) r2.Point {
	return r2.Point{
		X: world.X / g.PixelPitchX(),
		Y: -world.Y / g.PixelPitchY(),
	}
}

// ToWorld converts a screen pixel position to the corresponding world point
// on the screen plane.
func (g ScreenGeometry) ToWorld(pixel r2.Point) r3.Vector {
	return r3.Vector{
		X: pixel.X * g.PixelPitchX(),
		Y: -pixel.Y * g.PixelPitchY(),
		Z: 0,
	}
}
