package software

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/cmpimg"

	"github.com/TheRayOfSeasons/tech-sharing-globe/core"
)

func testScene(width, height int, seed int64) *core.Scene {
	opts := core.DefaultSceneOptions()
	opts.WidthSegments = 40
	opts.HeightSegments = 20
	opts.PointSize = 0.4
	return core.NewScene(width, height, opts, core.NewRandomSource(seed))
}

func encodePNG(t *testing.T, im image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, im))
	return buf.Bytes()
}

func litPixels(im *image.NRGBA) int {
	lit := 0
	for i := 0; i < len(im.Pix); i += 4 {
		if im.Pix[i] != 0 || im.Pix[i+1] != 0 || im.Pix[i+2] != 0 {
			lit++
		}
	}
	return lit
}

func TestRenderAtTimeZeroUsesMinColor(t *testing.T) {
	scene := testScene(96, 64, 1)
	r := NewRenderer(96, 64)
	r.Render(scene)
	im := r.Image()

	require.Greater(t, litPixels(im), 0)

	want := scene.Params.MinColor
	for i := 0; i < len(im.Pix); i += 4 {
		if im.Pix[i] == 0 && im.Pix[i+1] == 0 && im.Pix[i+2] == 0 {
			continue
		}
		assert.Equal(t, to8(want.X()), im.Pix[i])
		assert.Equal(t, to8(want.Y()), im.Pix[i+1])
		assert.Equal(t, to8(want.Z()), im.Pix[i+2])
		assert.Equal(t, uint8(255), im.Pix[i+3])
	}
}

func TestRenderAlphaMaskHidesEverything(t *testing.T) {
	scene := testScene(96, 64, 1)
	scene.Masks.Alpha = core.Solid(mgl32.Vec4{1, 1, 1, 1})

	r := NewRenderer(96, 64)
	r.Render(scene)

	assert.Zero(t, litPixels(r.Image()))
}

func TestRenderColorMaskHighlights(t *testing.T) {
	scene := testScene(96, 64, 1)
	scene.Masks.Color = core.Solid(mgl32.Vec4{1, 1, 1, 1})
	scene.Params.Time = 3

	r := NewRenderer(96, 64)
	r.Render(scene)
	im := r.Image()

	require.Greater(t, litPixels(im), 0)
	for i := 0; i < len(im.Pix); i += 4 {
		assert.Zero(t, im.Pix[i])
		assert.Zero(t, im.Pix[i+2])
	}
}

func TestBlend(t *testing.T) {
	dst := mgl32.Vec4{0, 0, 1, 1}
	got := blend(mgl32.Vec4{1, 0, 0, 1}, dst)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, got)

	got = blend(mgl32.Vec4{0.5, 0, 0, 0.5}, dst)
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec4{0.25, 0, 0.5, 1}, 1e-6), "got %v", got)
}

func TestSnapshotIsReproducibleWithSeed(t *testing.T) {
	a, err := Snapshot(testScene(64, 48, 5), 64, 48, 2, 1500*time.Millisecond)
	require.NoError(t, err)
	b, err := Snapshot(testScene(64, 48, 5), 64, 48, 2, 1500*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 64, 48), a.Bounds())

	equal, err := cmpimg.EqualApprox("png", encodePNG(t, a), encodePNG(t, b), 0)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestSnapshotDependsOnTime(t *testing.T) {
	a, err := Snapshot(testScene(64, 48, 5), 64, 48, 1, 0)
	require.NoError(t, err)
	b, err := Snapshot(testScene(64, 48, 5), 64, 48, 1, 5*time.Second)
	require.NoError(t, err)

	equal, err := cmpimg.Equal("png", encodePNG(t, a), encodePNG(t, b))
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestSnapshotConfiguresUpdater(t *testing.T) {
	a, err := Snapshot(testScene(64, 48, 5), 64, 48, 1, 0)
	require.NoError(t, err)
	frozen := func(u *core.FrameUpdater) {
		u.RotationSpeed = 0
		u.TimeScale = 0
	}
	b, err := Snapshot(testScene(64, 48, 5), 64, 48, 1, 5*time.Second, frozen)
	require.NoError(t, err)

	equal, err := cmpimg.Equal("png", encodePNG(t, a), encodePNG(t, b))
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestSnapshotRejectsEmptySize(t *testing.T) {
	_, err := Snapshot(testScene(64, 48, 5), 0, 48, 1, 0)
	assert.Error(t, err)
}
