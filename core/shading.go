package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaskThreshold is the rgb length above which a mask texel counts as set.
	// The earth masks encode "set" as near-white texels (length up to sqrt(3)).
	MaskThreshold = 1.0

	// ShapeAlphaCutoff crops the square sprite to the circle in the shape mask
	ShapeAlphaCutoff = 0.625
)

// Sampler is a 2D texture lookup returning rgba in [0,1]
type Sampler interface {
	Sample(u, v float32) mgl32.Vec4
}

// SamplerFunc adapts a function to the Sampler interface
type SamplerFunc func(u, v float32) mgl32.Vec4

func (f SamplerFunc) Sample(u, v float32) mgl32.Vec4 {
	return f(u, v)
}

// Solid returns a sampler that yields c everywhere
func Solid(c mgl32.Vec4) Sampler {
	return SamplerFunc(func(u, v float32) mgl32.Vec4 { return c })
}

// Masks are the three textures read by the shading rule
type Masks struct {
	Shape Sampler // circular sprite, read on alpha
	Alpha Sampler // land/ocean mask, set texels are not drawn
	Color Sampler // highlight mask, set texels take the country color
}

// FrameParams is everything the shading rule reads that is shared by all
// points of a frame.
type FrameParams struct {
	Time         float32 // seconds
	MinColor     mgl32.Vec3
	MaxColor     mgl32.Vec3
	CountryColor mgl32.Vec3
	PointSize    float32
	Scale        float32 // render surface height in pixels
}

// Fragment is the input of one shading evaluation
type Fragment struct {
	UV          mgl32.Vec2 // interpolated sphere texture coordinate
	PointCoord  mgl32.Vec2 // position inside the point sprite, [0,1]^2
	VertexID    float32
	LightFactor float32
}

// MixFactor is the twinkle phase |sin(t*f)|
func MixFactor(t, f float32) float32 {
	return math32.Abs(math32.Sin(t * f))
}

// PointSpriteSize is the on-screen diameter in pixels of a point whose
// view-space distance from the camera is dist.
func PointSpriteSize(pointSize, scale, dist float32) float32 {
	if dist <= 0 {
		return 0
	}
	return pointSize * (scale / dist)
}

func maskSet(c mgl32.Vec4) bool {
	return c.Vec3().Len() > MaskThreshold
}

// exclusion is a predicate that, when true, drops the fragment
type exclusion func(masks *Masks, f *Fragment) bool

var exclusions = [...]exclusion{
	func(m *Masks, f *Fragment) bool { return maskSet(m.Alpha.Sample(f.UV[0], f.UV[1])) },
	func(m *Masks, f *Fragment) bool { return f.VertexID == 0 },
}

// Classify returns the unblended color of a fragment that survived the
// exclusions: the country color inside the color mask, otherwise the
// min/max mix driven by the light factor.
func Classify(p *FrameParams, masks *Masks, f *Fragment) mgl32.Vec3 {
	if maskSet(masks.Color.Sample(f.UV[0], f.UV[1])) {
		return p.CountryColor
	}
	t := MixFactor(p.Time, f.LightFactor)
	return mix(p.MinColor, p.MaxColor, t)
}

// ShadeFragment evaluates the shading rule for one fragment. ok is false when
// the fragment is discarded. The returned color is premultiplied by the
// shape alpha.
func ShadeFragment(p *FrameParams, masks *Masks, f *Fragment) (c mgl32.Vec4, ok bool) {
	for _, excluded := range exclusions {
		if excluded(masks, f) {
			return mgl32.Vec4{}, false
		}
	}

	color := Classify(p, masks, f)

	shapeAlpha := masks.Shape.Sample(f.PointCoord[0], f.PointCoord[1])[3]
	if shapeAlpha < ShapeAlphaCutoff {
		return mgl32.Vec4{}, false
	}

	return color.Vec4(1).Mul(shapeAlpha), true
}

func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}
