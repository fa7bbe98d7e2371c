package core

import (
	"math/rand"
	"time"
)

// RandomSource supplies the per-vertex light factors. *rand.Rand satisfies it.
type RandomSource interface {
	Float32() float32
}

// NewRandomSource returns a seeded source, or a wall-clock seeded one when seed is 0
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// PointCloud is the sphere geometry plus its two per-vertex attributes.
// It is built once and never resized.
type PointCloud struct {
	Geometry *SphereGeometry

	// VertexIDs alternates 0,1,0,1... A zero marks a point that is never drawn.
	VertexIDs []float32

	// LightFactors is the per-vertex phase of the twinkle, in [0,1)
	LightFactors []float32
}

// NewPointCloud builds the sphere and fills the attribute arrays
func NewPointCloud(radius float32, widthSegments, heightSegments int, rng RandomSource) *PointCloud {
	geometry := GenerateSphereData(radius, widthSegments, heightSegments)
	n := geometry.VertexCount()

	pc := &PointCloud{
		Geometry:     geometry,
		VertexIDs:    make([]float32, n),
		LightFactors: make([]float32, n),
	}

	for i := 0; i < n; i++ {
		pc.VertexIDs[i] = float32(i % 2)
		pc.LightFactors[i] = rng.Float32()
	}

	return pc
}

// Len returns the number of points
func (pc *PointCloud) Len() int {
	return len(pc.VertexIDs)
}

// Radius returns the radius of the sphere the points lie on
func (pc *PointCloud) Radius() float32 {
	return pc.Geometry.Radius
}

// Position returns the model-space position of point i
func (pc *PointCloud) Position(i int) (x, y, z float32) {
	p := pc.Geometry.Positions[i*3 : i*3+3]
	return p[0], p[1], p[2]
}

// UV returns the texture coordinate of point i
func (pc *PointCloud) UV(i int) (u, v float32) {
	t := pc.Geometry.UVs[i*2 : i*2+2]
	return t[0], t[1]
}

// Interleaved packs the cloud as position(3) uv(2) vertexID(1) lightFactor(1)
// per vertex, the layout of the GL vertex buffer.
func (pc *PointCloud) Interleaved() []float32 {
	const stride = 7
	n := pc.Len()
	out := make([]float32, 0, n*stride)
	for i := 0; i < n; i++ {
		x, y, z := pc.Position(i)
		u, v := pc.UV(i)
		out = append(out, x, y, z, u, v, pc.VertexIDs[i], pc.LightFactors[i])
	}
	return out
}
