// Command inspect_cloud builds the globe's point cloud without opening a
// window and reports how many points each mask keeps.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/TheRayOfSeasons/tech-sharing-globe/config"
	"github.com/TheRayOfSeasons/tech-sharing-globe/core"
	"github.com/TheRayOfSeasons/tech-sharing-globe/rendering/textures"
)

func main() {
	var (
		configPath = flag.String("config", "settings.json", "Settings file")
		seed       = flag.Int64("seed", 1, "Light factor seed (0 = random)")
		noMasks    = flag.Bool("no-masks", false, "Skip the alpha and color masks")
		histPath   = flag.String("hist", "", "Write a light factor histogram to this image")
		bins       = flag.Int("bins", 20, "Histogram bins")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	fmt.Println("=== Point Cloud Inspection ===")

	scene := core.NewScene(settings.Window.Width, settings.Window.Height,
		settings.SceneOptions(), core.NewRandomSource(*seed))
	masks := scene.Masks
	if !*noMasks {
		alpha, err := textures.LoadMask(settings.Textures.Alpha, settings.Textures.MaxSize)
		if err != nil {
			log.Fatalf("Failed to load alpha mask: %v", err)
		}
		color, err := textures.LoadMask(settings.Textures.Color, settings.Textures.MaxSize)
		if err != nil {
			log.Fatalf("Failed to load color mask: %v", err)
		}
		masks.Alpha = alpha
		masks.Color = color
	}

	stats := collectStats(scene.Cloud, &masks)
	stats.print(os.Stdout)

	fmt.Println("\nShare of twinkling points past the mix midpoint:")
	times := []float32{0, 0.5, 1, 2, 5, 10}
	for i, share := range stats.mixSamples(times) {
		fmt.Printf("  t=%5.1fs: %5.1f%%\n", times[i], share*100)
	}

	if *histPath != "" {
		if err := stats.saveHistogram(*histPath, *bins); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("✅ Histogram written to %s\n", *histPath)
	}
}
