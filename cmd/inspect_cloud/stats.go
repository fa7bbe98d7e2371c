package main

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/TheRayOfSeasons/tech-sharing-globe/core"
)

// cloudStats summarises which points of a cloud survive the per-vertex
// exclusions and how their light factors are spread.
type cloudStats struct {
	Vertices    int
	Thinned     int // dropped by vertexID == 0
	Masked      int // dropped by the alpha mask
	Visible     int
	Highlighted int // visible and inside the color mask

	// light factor spread over the visible points outside the color mask
	LightMean   float64
	LightStdDev float64
	LightMin    float64
	LightMax    float64

	lightFactors []float64
}

func collectStats(cloud *core.PointCloud, masks *core.Masks) *cloudStats {
	s := &cloudStats{Vertices: cloud.Len()}

	for i := 0; i < cloud.Len(); i++ {
		u, v := cloud.UV(i)
		if masks.Alpha.Sample(u, v).Vec3().Len() > core.MaskThreshold {
			s.Masked++
			continue
		}
		if cloud.VertexIDs[i] == 0 {
			s.Thinned++
			continue
		}
		s.Visible++
		// highlighted points take the country color and never twinkle
		if masks.Color.Sample(u, v).Vec3().Len() > core.MaskThreshold {
			s.Highlighted++
			continue
		}
		s.lightFactors = append(s.lightFactors, float64(cloud.LightFactors[i]))
	}

	if len(s.lightFactors) > 0 {
		s.LightMean, s.LightStdDev = stat.MeanStdDev(s.lightFactors, nil)
		s.LightMin = floats.Min(s.lightFactors)
		s.LightMax = floats.Max(s.lightFactors)
	}
	return s
}

func (s *cloudStats) print(w io.Writer) {
	fmt.Fprintf(w, "Vertices:    %d\n", s.Vertices)
	fmt.Fprintf(w, "Masked:      %d\n", s.Masked)
	fmt.Fprintf(w, "Thinned:     %d\n", s.Thinned)
	fmt.Fprintf(w, "Visible:     %d\n", s.Visible)
	fmt.Fprintf(w, "Highlighted: %d\n", s.Highlighted)
	fmt.Fprintf(w, "Light factor: mean %.4f, stddev %.4f, range [%.4f, %.4f]\n",
		s.LightMean, s.LightStdDev, s.LightMin, s.LightMax)
}

// mixSamples returns the fraction of twinkling points (visible, outside the
// color mask) brighter than halfway between min and max color at each time t.
func (s *cloudStats) mixSamples(times []float32) []float64 {
	out := make([]float64, len(times))
	if len(s.lightFactors) == 0 {
		return out
	}
	for i, t := range times {
		bright := 0
		for _, f := range s.lightFactors {
			if core.MixFactor(t, float32(f)) > 0.5 {
				bright++
			}
		}
		out[i] = float64(bright) / float64(len(s.lightFactors))
	}
	return out
}

// saveHistogram plots the light factors of the twinkling points
func (s *cloudStats) saveHistogram(path string, bins int) error {
	p := plot.New()
	p.Title.Text = "Light factors of twinkling points"
	p.X.Label.Text = "light factor"
	p.Y.Label.Text = "points"

	h, err := plotter.NewHist(plotter.Values(s.lightFactors), bins)
	if err != nil {
		return fmt.Errorf("histogram: %v", err)
	}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save %s: %v", path, err)
	}
	return nil
}
