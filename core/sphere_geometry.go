package core

import (
	"math"
)

// SphereGeometry holds the vertex data of a UV sphere laid out as a point cloud.
// Positions are xyz triples, UVs are uv pairs, both index-aligned.
type SphereGeometry struct {
	Radius    float32
	Positions []float32
	UVs       []float32
}

// VertexCount returns the number of vertices in the position buffer
func (g *SphereGeometry) VertexCount() int {
	return len(g.Positions) / 3
}

// GenerateSphereData generates a UV sphere with (segments+1)*(rings+1) vertices.
// Rings run from the north pole (v=0) to the south pole (v=1); texture
// coordinates are (u, 1-v) so the top of a mask image maps to the north pole.
func GenerateSphereData(radius float32, segments, rings int) *SphereGeometry {
	// Use default values if not specified
	if segments <= 0 {
		segments = 64
	}
	if rings <= 0 {
		rings = 32
	}

	count := (segments + 1) * (rings + 1)
	g := &SphereGeometry{
		Radius:    radius,
		Positions: make([]float32, 0, count*3),
		UVs:       make([]float32, 0, count*2),
	}

	for ring := 0; ring <= rings; ring++ {
		v := float64(ring) / float64(rings)
		theta := v * math.Pi
		sinTheta := math.Sin(theta)
		cosTheta := math.Cos(theta)

		for seg := 0; seg <= segments; seg++ {
			u := float64(seg) / float64(segments)
			phi := u * 2.0 * math.Pi

			x := -math.Cos(phi) * sinTheta
			y := cosTheta
			z := math.Sin(phi) * sinTheta

			g.Positions = append(g.Positions,
				float32(x)*radius,
				float32(y)*radius,
				float32(z)*radius,
			)
			g.UVs = append(g.UVs, float32(u), float32(1-v))
		}
	}

	return g
}
