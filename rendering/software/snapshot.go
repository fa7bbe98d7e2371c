package software

import (
	"fmt"
	"image"
	"time"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"

	"github.com/TheRayOfSeasons/tech-sharing-globe/core"
)

// Snapshot renders scene at elapsed time since start. The frame is drawn at
// supersample times the requested size and reduced with a bilinear filter.
// The scene is left resized to the supersampled target. Each configure func
// runs on the updater before it starts.
func Snapshot(scene *core.Scene, width, height, supersample int, elapsed time.Duration, configure ...func(*core.FrameUpdater)) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid snapshot size %dx%d", width, height)
	}
	if supersample < 1 {
		supersample = 1
	}

	w, h := width*supersample, height*supersample
	renderer := NewRenderer(w, h)
	updater := core.NewFrameUpdater(scene, renderer, w, h)
	for _, fn := range configure {
		fn(updater)
	}
	updater.Resize(w, h)
	if err := updater.Start(); err != nil {
		return nil, err
	}
	if err := updater.Tick(elapsed); err != nil {
		return nil, err
	}

	im := image.Image(renderer.Image())
	if supersample > 1 {
		im = resize.Resize(uint(width), uint(height), im, resize.Bilinear)
	}
	return im, nil
}

// SavePNG writes a snapshot to path
func SavePNG(path string, im image.Image) error {
	if err := fauxgl.SavePNG(path, im); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %v", path, err)
	}
	return nil
}
