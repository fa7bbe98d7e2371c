package textures

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/nfnt/resize"
)

// Mask is a decoded mask image usable both as a CPU sampler and as GL
// texture data. Texture coordinate v=1 is the top row of the image.
type Mask struct {
	Path  string
	image *image.NRGBA
	tex   fauxgl.Texture
}

// LoadMask decodes the image at path. Images larger than maxSize on either
// side are downscaled to fit; maxSize 0 keeps the original size.
func LoadMask(path string, maxSize int) (*Mask, error) {
	im, err := fauxgl.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %q: %v", path, err)
	}
	m := NewMask(im, maxSize)
	m.Path = path
	return m, nil
}

// NewMask wraps an already decoded image
func NewMask(im image.Image, maxSize int) *Mask {
	b := im.Bounds()
	if maxSize > 0 && (b.Dx() > maxSize || b.Dy() > maxSize) {
		im = resize.Thumbnail(uint(maxSize), uint(maxSize), im, resize.Bilinear)
	}
	nrgba := toNRGBA(im)
	return &Mask{
		image: nrgba,
		tex:   fauxgl.NewImageTexture(nrgba),
	}
}

// edgeEpsilon keeps clamped coordinates off the value fauxgl wraps back to 0
const edgeEpsilon = 1e-6

// Sample returns the nearest texel at (u, v). Coordinates outside [0,1] clamp
// to the edge texels, as the GL textures do with CLAMP_TO_EDGE.
func (m *Mask) Sample(u, v float32) mgl32.Vec4 {
	// fauxgl flips v and wraps both axes, so u=1 and v=0 must stay below the wrap point
	cu := math.Min(math.Max(float64(u), 0), 1-edgeEpsilon)
	cv := math.Min(math.Max(float64(v), edgeEpsilon), 1)
	c := m.tex.Sample(cu, cv)
	return mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// Image returns the decoded pixels, top row first
func (m *Mask) Image() *image.NRGBA {
	return m.image
}

// Size returns the texture size in texels
func (m *Mask) Size() (width, height int) {
	b := m.image.Bounds()
	return b.Dx(), b.Dy()
}

// FlippedPixels returns the pixel rows bottom-up, the order glTexImage2D expects
// for v=1 to land on the image's top row.
func (m *Mask) FlippedPixels() []uint8 {
	w, h := m.Size()
	stride := w * 4
	out := make([]uint8, stride*h)
	for y := 0; y < h; y++ {
		src := m.image.Pix[y*m.image.Stride : y*m.image.Stride+stride]
		copy(out[(h-1-y)*stride:], src)
	}
	return out
}

func toNRGBA(im image.Image) *image.NRGBA {
	if n, ok := im.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := im.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), im, b.Min, draw.Src)
	return dst
}
