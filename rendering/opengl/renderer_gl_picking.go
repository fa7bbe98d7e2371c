package opengl

import (
	"fmt"

	"github.com/TheRayOfSeasons/tech-sharing-globe/core"
)

// clickSlop is how far in pixels the cursor may travel between press and
// release for the gesture to still count as a click
const clickSlop = 3

// handleClick reports the globe position under the cursor
func (r *GlobeRenderer) handleClick(xpos, ypos float64) {
	if r.scene == nil {
		return
	}

	// Cursor positions are in window coordinates, not framebuffer pixels
	width, height := r.window.GetSize()
	g, ok := r.scene.Pick(xpos, ypos, width, height)
	if !ok {
		return
	}

	region := "outside"
	if r.scene.Highlighted(g) {
		region = "inside"
	}
	fmt.Printf("\nPicked %s (%s the color mask)\n", formatGeographic(g), region)
}

func formatGeographic(g core.Geographic) string {
	ns, ew := 'N', 'E'
	lat, lon := g.Lat, g.Lon
	if lat < 0 {
		ns, lat = 'S', -lat
	}
	if lon < 0 {
		ew, lon = 'W', -lon
	}
	return fmt.Sprintf("%.2f°%c, %.2f°%c", lat, ns, lon, ew)
}
