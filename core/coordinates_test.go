package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestGeographicToCartesian(t *testing.T) {
	tests := []struct {
		name string
		geo  Geographic
		want mgl32.Vec3
	}{
		{"North Pole", Geographic{90, 0}, mgl32.Vec3{0, 8, 0}},
		{"South Pole", Geographic{-90, 0}, mgl32.Vec3{0, -8, 0}},
		{"Equator Prime Meridian", Geographic{0, 0}, mgl32.Vec3{8, 0, 0}},
		{"Equator 90E", Geographic{0, 90}, mgl32.Vec3{0, 0, -8}},
		{"Equator 90W", Geographic{0, -90}, mgl32.Vec3{0, 0, 8}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := GeographicToCartesian(tc.geo, 8)
			assert.True(t, got.ApproxEqualThreshold(tc.want, 1e-4), "got %v, want %v", got, tc.want)
		})
	}
}

func TestCartesianRoundTrip(t *testing.T) {
	for _, g := range []Geographic{{45, 45}, {-30, 120}, {10, -170}, {0, 0}} {
		back := CartesianToGeographic(GeographicToCartesian(g, 8))
		assert.InDelta(t, g.Lat, back.Lat, 1e-3)
		assert.InDelta(t, g.Lon, back.Lon, 1e-3)
	}

	assert.Equal(t, Geographic{}, CartesianToGeographic(mgl32.Vec3{}))
}

// Every generated vertex sits where its texture coordinate says it should
func TestSphereUVsMatchPositions(t *testing.T) {
	g := GenerateSphereData(8, 16, 8)
	for i := 0; i < g.VertexCount(); i++ {
		want := mgl32.Vec3{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]}
		got := GeographicToCartesian(UVToGeographic(g.UVs[i*2], g.UVs[i*2+1]), 8)
		assert.True(t, got.ApproxEqualThreshold(want, 1e-4), "vertex %d: got %v, want %v", i, got, want)
	}
}

func TestGeographicToUV(t *testing.T) {
	u, v := GeographicToUV(Geographic{Lat: 90, Lon: 0})
	assert.InDelta(t, 0.5, u, 1e-6)
	assert.InDelta(t, 1, v, 1e-6)

	u, v = GeographicToUV(Geographic{Lat: -45, Lon: 270})
	assert.InDelta(t, 0.25, u, 1e-6)
	assert.InDelta(t, 0.25, v, 1e-6)
}

func TestNormalizeCoordinates(t *testing.T) {
	assert.Equal(t, Geographic{90, -170}, NormalizeCoordinates(Geographic{95, 190}))
	assert.Equal(t, Geographic{-90, 170}, NormalizeCoordinates(Geographic{-100, -550}))
}

func TestSubCameraPoint(t *testing.T) {
	scene := smallScene(800, 600)

	// camera on +Z looks at 90W
	g := scene.SubCameraPoint()
	assert.InDelta(t, 0, g.Lat, 1e-3)
	assert.InDelta(t, -90, g.Lon, 1e-3)

	// a quarter turn brings the antimeridian under the camera
	scene.RotationY = mgl32.DegToRad(90)
	g = scene.SubCameraPoint()
	assert.InDelta(t, -180, absLon(g.Lon), 1e-3)
}

func absLon(lon float32) float32 {
	if lon > 0 {
		return -lon
	}
	return lon
}
