package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Pick casts a ray through window position (x, y) of a width x height view
// and returns the globe position it first hits.
func (s *Scene) Pick(x, y float64, width, height int) (Geographic, bool) {
	if width <= 0 || height <= 0 {
		return Geographic{}, false
	}

	// Convert screen coordinates to NDC
	nx := 2*float32(x)/float32(width) - 1
	ny := 1 - 2*float32(y)/float32(height) // Flip Y

	// Unproject into model space so the globe is a sphere at the origin
	mvp := s.Camera.Projection.Mul4(s.ModelView())
	inv := mvp.Inv()

	near := inv.Mul4x1(mgl32.Vec4{nx, ny, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{nx, ny, 1, 1})
	if near[3] == 0 || far[3] == 0 {
		return Geographic{}, false
	}
	origin := near.Vec3().Mul(1 / near[3])
	dir := far.Vec3().Mul(1 / far[3]).Sub(origin).Normalize()

	hit, ok := raySphereIntersect(origin, dir, s.Cloud.Radius())
	if !ok {
		return Geographic{}, false
	}
	return CartesianToGeographic(hit), true
}

// Highlighted reports whether g falls inside the color mask
func (s *Scene) Highlighted(g Geographic) bool {
	u, v := GeographicToUV(g)
	return maskSet(s.Masks.Color.Sample(u, v))
}

// raySphereIntersect returns the nearest hit in front of origin with a sphere
// of the given radius centred at the origin.
func raySphereIntersect(origin, dir mgl32.Vec3, radius float32) (mgl32.Vec3, bool) {
	a := dir.Dot(dir)
	b := 2 * origin.Dot(dir)
	c := origin.Dot(origin) - radius*radius
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return mgl32.Vec3{}, false
	}

	sqrtD := math32.Sqrt(discriminant)
	t := (-b - sqrtD) / (2 * a)
	if t < 0 {
		t = (-b + sqrtD) / (2 * a)
		if t < 0 {
			return mgl32.Vec3{}, false
		}
	}

	return origin.Add(dir.Mul(t)), true
}
