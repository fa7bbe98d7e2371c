// Package software rasterizes the particle globe on the CPU with the same
// shading rule as the GL program. It needs no window or GL context, which
// makes it suitable for snapshots and tests.
package software

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/TheRayOfSeasons/tech-sharing-globe/core"
)

// Renderer is a point-sprite rasterizer with a depth buffer and
// src-alpha/one-minus-src-alpha blending.
type Renderer struct {
	width, height int
	color         []mgl32.Vec4
	depth         []float32

	Background mgl32.Vec4
}

// NewRenderer allocates a width x height target
func NewRenderer(width, height int) *Renderer {
	r := &Renderer{Background: mgl32.Vec4{0, 0, 0, 1}}
	r.SetSize(width, height)
	return r
}

// SetSize reallocates the target; the contents are cleared
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	r.color = make([]mgl32.Vec4, width*height)
	r.depth = make([]float32, width*height)
	r.clear()
}

func (r *Renderer) clear() {
	for i := range r.color {
		r.color[i] = r.Background
		r.depth[i] = 1
	}
}

// Render clears the target and draws every point of the scene
func (r *Renderer) Render(scene *core.Scene) {
	r.clear()

	modelView := scene.ModelView()
	projection := scene.Camera.Projection
	cloud := scene.Cloud

	for i := 0; i < cloud.Len(); i++ {
		x, y, z := cloud.Position(i)
		mv := modelView.Mul4x1(mgl32.Vec4{x, y, z, 1})

		clip := projection.Mul4x1(mv)
		if clip.W() <= 0 {
			continue
		}
		ndc := clip.Vec3().Mul(1 / clip.W())
		if ndc.Z() < -1 || ndc.Z() > 1 {
			continue
		}

		// the GL program measures the homogeneous view position, w included
		size := core.PointSpriteSize(scene.Params.PointSize, scene.Params.Scale, mv.Len())
		if size < 1 {
			size = 1
		}

		u, v := cloud.UV(i)
		frag := core.Fragment{
			UV:          mgl32.Vec2{u, v},
			VertexID:    cloud.VertexIDs[i],
			LightFactor: cloud.LightFactors[i],
		}

		cx := (ndc.X()*0.5 + 0.5) * float32(r.width)
		cy := (0.5 - ndc.Y()*0.5) * float32(r.height)
		r.drawSprite(scene, &frag, cx, cy, size, ndc.Z()*0.5+0.5)
	}
}

// drawSprite covers the pixels whose centers fall inside the size x size
// square centered on (cx, cy). Point coordinates start at the top-left.
func (r *Renderer) drawSprite(scene *core.Scene, frag *core.Fragment, cx, cy, size, depth float32) {
	half := size / 2
	x0 := int(math.Ceil(float64(cx - half - 0.5)))
	x1 := int(math.Floor(float64(cx + half - 0.5)))
	y0 := int(math.Ceil(float64(cy - half - 0.5)))
	y1 := int(math.Floor(float64(cy + half - 0.5)))

	for py := y0; py <= y1; py++ {
		if py < 0 || py >= r.height {
			continue
		}
		for px := x0; px <= x1; px++ {
			if px < 0 || px >= r.width {
				continue
			}
			idx := py*r.width + px
			if depth >= r.depth[idx] {
				continue
			}

			frag.PointCoord = mgl32.Vec2{
				(float32(px) + 0.5 - (cx - half)) / size,
				(float32(py) + 0.5 - (cy - half)) / size,
			}
			c, ok := core.ShadeFragment(&scene.Params, &scene.Masks, frag)
			if !ok {
				continue
			}

			r.depth[idx] = depth
			r.color[idx] = blend(c, r.color[idx])
		}
	}
}

// blend applies SRC_ALPHA, ONE_MINUS_SRC_ALPHA to color and ONE,
// ONE_MINUS_SRC_ALPHA to alpha.
func blend(src, dst mgl32.Vec4) mgl32.Vec4 {
	a := src.W()
	rgb := src.Vec3().Mul(a).Add(dst.Vec3().Mul(1 - a))
	return rgb.Vec4(a + dst.W()*(1-a))
}

// Image returns the current target as 8-bit NRGBA
func (r *Renderer) Image() *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			c := r.color[y*r.width+x]
			im.SetNRGBA(x, y, color.NRGBA{
				R: to8(c.X()),
				G: to8(c.Y()),
				B: to8(c.Z()),
				A: to8(c.W()),
			})
		}
	}
	return im
}

func to8(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
