package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSphereDataLayout(t *testing.T) {
	const radius = 8
	g := GenerateSphereData(radius, 12, 6)

	require.Equal(t, 13*7, g.VertexCount())
	require.Len(t, g.UVs, g.VertexCount()*2)

	// first ring is the north pole
	assert.InDelta(t, 0, g.Positions[0], 1e-5)
	assert.InDelta(t, radius, g.Positions[1], 1e-5)
	assert.InDelta(t, 0, g.Positions[2], 1e-5)
	assert.Equal(t, float32(0), g.UVs[0])
	assert.Equal(t, float32(1), g.UVs[1])

	// every vertex sits on the sphere
	for i := 0; i < g.VertexCount(); i++ {
		x, y, z := g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]
		assert.InDelta(t, radius*radius, x*x+y*y+z*z, 1e-3, "vertex %d", i)
	}
}

func TestPointCloudVertexIDsAlternate(t *testing.T) {
	pc := NewPointCloud(8, 20, 10, NewRandomSource(1))

	require.Equal(t, pc.Geometry.VertexCount(), pc.Len())
	for i, id := range pc.VertexIDs {
		if !assert.Equal(t, float32(i%2), id, "vertexID[%d]", i) {
			return
		}
	}
}

func TestPointCloudLightFactorRange(t *testing.T) {
	pc := NewPointCloud(8, 50, 50, NewRandomSource(42))

	for i, f := range pc.LightFactors {
		if f < 0 || f >= 1 {
			t.Fatalf("lightFactor[%d] = %v, want [0,1)", i, f)
		}
	}
}

// alwaysAlmostOne pins every sample at the top of the range
type alwaysAlmostOne struct{}

func (alwaysAlmostOne) Float32() float32 { return 0.99999994 }

func TestPointCloudUsesInjectedSource(t *testing.T) {
	pc := NewPointCloud(8, 4, 4, alwaysAlmostOne{})
	for _, f := range pc.LightFactors {
		assert.Less(t, f, float32(1))
		assert.Equal(t, float32(0.99999994), f)
	}
}

func TestPointCloudSeededIsReproducible(t *testing.T) {
	a := NewPointCloud(8, 30, 30, NewRandomSource(7))
	b := NewPointCloud(8, 30, 30, NewRandomSource(7))
	c := NewPointCloud(8, 30, 30, NewRandomSource(8))

	assert.Equal(t, a.LightFactors, b.LightFactors)
	assert.NotEqual(t, a.LightFactors, c.LightFactors)
}

func TestPointCloudInterleaved(t *testing.T) {
	pc := NewPointCloud(8, 6, 4, NewRandomSource(3))
	data := pc.Interleaved()

	require.Len(t, data, pc.Len()*7)
	for i := 0; i < pc.Len(); i++ {
		x, y, z := pc.Position(i)
		u, v := pc.UV(i)
		assert.Equal(t, []float32{x, y, z, u, v, pc.VertexIDs[i], pc.LightFactors[i]}, data[i*7:i*7+7])
	}
}
