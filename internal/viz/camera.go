package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

// Camera projects world positions onto the canvas with a simple
// perspective divide. The default orientation looks down the y axis, so
// the x-z plane fills the screen.
type Camera struct {
	RotX, RotY, RotZ float64
	Zoom             float64
	// Scale is screen half-heights per world unit at zoom 1.
	Scale float64
	// Distance from the eye to the origin, in world units after zoom.
	Distance float64
}

func NewCamera() *Camera {
	return &Camera{RotX: math.Pi / 2, Zoom: 1, Scale: 0.05, Distance: 200}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(50, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.02, c.Zoom/1.2) }

// Rotate applies the camera rotation to a world position.
func (c *Camera) Rotate(p r3.Vec) r3.Vec {
	p = r3.Rotate(p, c.RotX, axisX)
	p = r3.Rotate(p, c.RotY, axisY)
	return r3.Rotate(p, c.RotZ, axisZ)
}

// Project converts a world position to dot coordinates on a canvas of
// w x h dots. It returns the depth (larger is nearer) and whether the
// point lands on screen in front of the eye.
func (c *Camera) Project(p r3.Vec, w, h int) (int, int, float64, bool) {
	rot := r3.Scale(c.Zoom, c.Rotate(p))
	if rot.Z >= c.Distance-1 {
		return 0, 0, rot.Z, false
	}
	persp := c.Distance / (c.Distance - rot.Z)

	half := float64(h) / 2
	sx := int(math.Round(rot.X*persp*c.Scale*half)) + w/2
	sy := int(math.Round(-rot.Y*persp*c.Scale*half)) + h/2
	return sx, sy, rot.Z, sx >= 0 && sx < w && sy >= 0 && sy < h
}
