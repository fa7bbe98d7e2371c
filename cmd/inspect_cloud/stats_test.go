package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheRayOfSeasons/tech-sharing-globe/core"
)

func openMasks() *core.Masks {
	return &core.Masks{
		Shape: core.Solid(mgl32.Vec4{1, 1, 1, 1}),
		Alpha: core.Solid(mgl32.Vec4{0, 0, 0, 1}),
		Color: core.Solid(mgl32.Vec4{0, 0, 0, 1}),
	}
}

func TestCollectStatsThinsHalf(t *testing.T) {
	cloud := core.NewPointCloud(8, 10, 10, core.NewRandomSource(3))
	s := collectStats(cloud, openMasks())

	assert.Equal(t, 121, s.Vertices)
	assert.Equal(t, 0, s.Masked)
	assert.Equal(t, 61, s.Thinned)
	assert.Equal(t, 60, s.Visible)
	assert.Equal(t, 0, s.Highlighted)
	assert.GreaterOrEqual(t, s.LightMin, 0.0)
	assert.Less(t, s.LightMax, 1.0)
	assert.InDelta(t, 0.5, s.LightMean, 0.15)
}

func TestCollectStatsMasks(t *testing.T) {
	cloud := core.NewPointCloud(8, 10, 10, core.NewRandomSource(3))

	masks := openMasks()
	masks.Color = core.Solid(mgl32.Vec4{1, 1, 1, 1})
	s := collectStats(cloud, masks)
	assert.Equal(t, s.Visible, s.Highlighted)
	assert.Empty(t, s.lightFactors)
	assert.Equal(t, []float64{0, 0}, s.mixSamples([]float32{1, 2}))

	masks.Alpha = core.Solid(mgl32.Vec4{1, 1, 1, 1})
	s = collectStats(cloud, masks)
	assert.Equal(t, s.Vertices, s.Masked)
	assert.Zero(t, s.Visible)
	assert.Zero(t, s.LightMean)

	var buf bytes.Buffer
	s.print(&buf)
	assert.Contains(t, buf.String(), "Visible:     0")
}

func TestMixSamplesAtTimeZero(t *testing.T) {
	cloud := core.NewPointCloud(8, 10, 10, core.NewRandomSource(3))
	s := collectStats(cloud, openMasks())

	shares := s.mixSamples([]float32{0, 2})
	require.Len(t, shares, 2)
	assert.Zero(t, shares[0])
	assert.GreaterOrEqual(t, shares[1], 0.0)
	assert.LessOrEqual(t, shares[1], 1.0)
}

func TestSaveHistogram(t *testing.T) {
	cloud := core.NewPointCloud(8, 10, 10, core.NewRandomSource(3))
	s := collectStats(cloud, openMasks())

	path := filepath.Join(t.TempDir(), "hist.png")
	require.NoError(t, s.saveHistogram(path, 10))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
