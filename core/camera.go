package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveCamera is a look-at camera with a vertical field of view in degrees
type PerspectiveCamera struct {
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	Projection mgl32.Mat4
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: mgl32.Vec3{0, 0, -1},
		Up:     mgl32.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix must be called after FOV, Aspect, Near or Far change
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// LookAt points the camera at target
func (c *PerspectiveCamera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

// View returns the world-to-camera matrix
func (c *PerspectiveCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Axes returns the camera's right and up vectors in world space
func (c *PerspectiveCamera) Axes() (right, up mgl32.Vec3) {
	forward := c.Target.Sub(c.Position)
	if forward.Len() == 0 {
		return mgl32.Vec3{1, 0, 0}, c.Up
	}
	forward = forward.Normalize()
	right = forward.Cross(c.Up)
	if right.Len() == 0 {
		right = mgl32.Vec3{1, 0, 0}
	} else {
		right = right.Normalize()
	}
	up = right.Cross(forward)
	return right, up
}
