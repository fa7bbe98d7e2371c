package textures

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/fogleman/fauxgl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadrants builds a 4x4 image: top half red, bottom half blue, with the
// bottom-right texel transparent.
func quadrants() *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if y >= 2 {
				c = color.NRGBA{B: 255, A: 255}
			}
			im.SetNRGBA(x, y, c)
		}
	}
	im.SetNRGBA(3, 3, color.NRGBA{})
	return im
}

func TestMaskSampleOrientation(t *testing.T) {
	m := NewMask(quadrants(), 0)

	top := m.Sample(0.1, 0.9)
	assert.InDelta(t, 1, top[0], 1e-6)
	assert.InDelta(t, 0, top[2], 1e-6)

	bottom := m.Sample(0.1, 0.1)
	assert.InDelta(t, 0, bottom[0], 1e-6)
	assert.InDelta(t, 1, bottom[2], 1e-6)

	corner := m.Sample(0.9, 0.1)
	assert.InDelta(t, 0, corner[3], 1e-6)
}

func TestMaskSampleClampsToEdge(t *testing.T) {
	m := NewMask(quadrants(), 0)

	tests := []struct {
		name string
		u, v float32
		want [4]float32
	}{
		{"south edge", 0.1, 0, [4]float32{0, 0, 1, 1}},
		{"north edge", 0.1, 1, [4]float32{1, 0, 0, 1}},
		{"east edge top", 1, 1, [4]float32{1, 0, 0, 1}},
		{"east edge bottom", 1, 0, [4]float32{0, 0, 0, 0}},
		{"below range", 0.1, -0.5, [4]float32{0, 0, 1, 1}},
		{"above range", 1.5, 1.5, [4]float32{1, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Sample(tt.u, tt.v)
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-6, "channel %d", i)
			}
		})
	}
}

func TestMaskFlippedPixels(t *testing.T) {
	m := NewMask(quadrants(), 0)
	pix := m.FlippedPixels()

	require.Len(t, pix, 4*4*4)
	// first row uploaded is the image's bottom row: blue
	assert.Equal(t, []uint8{0, 0, 255, 255}, pix[0:4])
	// last row uploaded is the image's top row: red
	assert.Equal(t, []uint8{255, 0, 0, 255}, pix[len(pix)-4:])
}

func TestMaskDownscale(t *testing.T) {
	big := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	m := NewMask(big, 16)

	w, h := m.Size()
	assert.Equal(t, 16, w)
	assert.Equal(t, 8, h)

	kept := NewMask(big, 0)
	w, h = kept.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)
}

func TestLoadMask(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mask.png")
	require.NoError(t, fauxgl.SavePNG(path, quadrants()))

	m, err := LoadMask(path, 0)
	require.NoError(t, err)
	assert.Equal(t, path, m.Path)

	w, h := m.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)

	_, err = LoadMask(filepath.Join(t.TempDir(), "missing.png"), 0)
	assert.Error(t, err)
}
