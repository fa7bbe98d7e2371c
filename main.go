package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/TheRayOfSeasons/tech-sharing-globe/config"
	"github.com/TheRayOfSeasons/tech-sharing-globe/core"
	"github.com/TheRayOfSeasons/tech-sharing-globe/rendering/opengl"
	"github.com/TheRayOfSeasons/tech-sharing-globe/rendering/software"
	"github.com/TheRayOfSeasons/tech-sharing-globe/rendering/textures"
	"github.com/TheRayOfSeasons/tech-sharing-globe/server"
)

func main() {
	runtime.LockOSThread()

	// Parse command line flags
	var (
		configPath   = flag.String("config", "settings.json", "Settings file")
		width        = flag.Int("width", 0, "Window width (overrides settings)")
		height       = flag.Int("height", 0, "Window height (overrides settings)")
		seed         = flag.Int64("seed", 0, "Light factor seed (0 = random)")
		snapshotPath = flag.String("snapshot", "", "Render one frame to this PNG and exit")
		snapshotTime = flag.Duration("snapshot-time", 0, "Elapsed time of the snapshot frame")
		debugAddr    = flag.String("debug-addr", "", "Serve the frame state stream on this address")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *width > 0 {
		settings.Window.Width = *width
	}
	if *height > 0 {
		settings.Window.Height = *height
	}
	if *seed != 0 {
		settings.Scene.Seed = *seed
	}
	if *debugAddr != "" {
		settings.Server.Addr = *debugAddr
	}

	fmt.Println("=== Particle Globe ===")
	fmt.Printf("Sphere: radius %.1f, %dx%d segments\n",
		settings.Scene.Radius, settings.Scene.WidthSegments, settings.Scene.HeightSegments)
	fmt.Printf("Window: %dx%d\n", settings.Window.Width, settings.Window.Height)

	// Build the scene
	scene := core.NewScene(settings.Window.Width, settings.Window.Height,
		settings.SceneOptions(), core.NewRandomSource(settings.Scene.Seed))
	fmt.Printf("✅ Point cloud built: %d vertices\n", scene.Cloud.Len())

	// Load masks
	shape, err := textures.LoadMask(settings.Textures.Shape, settings.Textures.MaxSize)
	if err != nil {
		log.Fatalf("Failed to load shape mask: %v", err)
	}
	alpha, err := textures.LoadMask(settings.Textures.Alpha, settings.Textures.MaxSize)
	if err != nil {
		log.Fatalf("Failed to load alpha mask: %v", err)
	}
	color, err := textures.LoadMask(settings.Textures.Color, settings.Textures.MaxSize)
	if err != nil {
		log.Fatalf("Failed to load color mask: %v", err)
	}
	scene.Masks = core.Masks{Shape: shape, Alpha: alpha, Color: color}
	fmt.Println("✅ Masks loaded")

	configure := func(u *core.FrameUpdater) {
		u.RotationSpeed = settings.Scene.RotationSpeed
		u.TimeScale = settings.Scene.TimeScale
	}

	if *snapshotPath != "" {
		im, err := software.Snapshot(scene, settings.Window.Width, settings.Window.Height,
			settings.Snapshot.Supersample, *snapshotTime, configure)
		if err != nil {
			log.Fatalf("Failed to render snapshot: %v", err)
		}
		if err := software.SavePNG(*snapshotPath, im); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("✅ Snapshot written to %s\n", *snapshotPath)
		return
	}

	// Create native OpenGL renderer
	renderer, err := opengl.NewGlobeRenderer(settings.Window)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Terminate()

	renderer.CreateBuffers(scene)
	renderer.UploadMasks(shape, alpha, color)

	// The framebuffer can be larger than the window on HiDPI displays
	fbWidth, fbHeight := renderer.FramebufferSize()
	updater := core.NewFrameUpdater(scene, renderer, fbWidth, fbHeight)
	configure(updater)
	updater.Resize(fbWidth, fbHeight)
	renderer.OnResize = updater.Resize

	if settings.Server.Addr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		stream := server.NewStateServer(settings.Server.Addr)
		updater.AddObserver(stream)
		go func() {
			if err := stream.ListenAndServe(ctx); err != nil {
				log.Println(err)
			}
		}()
	}

	fmt.Println("\nControls:")
	fmt.Println("  Left drag: Rotate")
	fmt.Println("  Middle drag / Scroll: Zoom in/out")
	fmt.Println("  Right drag: Pan")
	fmt.Println("  Left click: Print the position under the cursor")
	fmt.Println("  ESC: Exit")
	fmt.Println("\nStarting...")

	if err := updater.Start(); err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	frameCount := 0
	lastFPSTime := start

	// Main loop
	for !renderer.ShouldClose() {
		renderer.PollEvents()

		now := time.Now()
		if err := updater.Tick(now.Sub(start)); err != nil {
			log.Fatal(err)
		}

		// FPS counter
		frameCount++
		if now.Sub(lastFPSTime).Seconds() >= 1.0 {
			fps := float64(frameCount) / now.Sub(lastFPSTime).Seconds()
			fmt.Printf("\rFPS: %.1f | Time: %.1f s", fps, scene.Params.Time)
			frameCount = 0
			lastFPSTime = now
		}
	}

	fmt.Println("\nShutting down...")
}
