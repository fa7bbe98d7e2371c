package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/TheRayOfSeasons/tech-sharing-globe/core"
)

type Settings struct {
	Window   WindowSettings   `json:"window"`
	Scene    SceneSettings    `json:"scene"`
	Camera   CameraSettings   `json:"camera"`
	Textures TextureSettings  `json:"textures"`
	Server   ServerSettings   `json:"server"`
	Snapshot SnapshotSettings `json:"snapshot"`
}

type WindowSettings struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	VSync  bool   `json:"vsync"`
}

type SceneSettings struct {
	Radius         float32 `json:"radius"`
	WidthSegments  int     `json:"widthSegments"`
	HeightSegments int     `json:"heightSegments"`
	Seed           int64   `json:"seed"` // 0 = seed from the clock
	PointSize      float32 `json:"pointSize"`
	MinColor       string  `json:"minColor"`
	MaxColor       string  `json:"maxColor"`
	CountryColor   string  `json:"countryColor"`
	RotationSpeed  float32 `json:"rotationSpeed"` // radians per millisecond
	TimeScale      float32 `json:"timeScale"`     // shader seconds per millisecond
}

type CameraSettings struct {
	FOV           float32 `json:"fov"`
	Near          float32 `json:"near"`
	Far           float32 `json:"far"`
	Distance      float32 `json:"distance"`
	EnableDamping bool    `json:"enableDamping"`
	DampingFactor float32 `json:"dampingFactor"`
}

type TextureSettings struct {
	Shape   string `json:"shape"`
	Alpha   string `json:"alpha"`
	Color   string `json:"color"`
	MaxSize int    `json:"maxSize"` // larger masks are downscaled, 0 = keep
}

type ServerSettings struct {
	Addr string `json:"addr"` // empty disables the debug stream
}

type SnapshotSettings struct {
	Supersample int `json:"supersample"`
}

// Default returns the stock settings
func Default() *Settings {
	return &Settings{
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "Particle Globe",
			VSync:  true,
		},
		Scene: SceneSettings{
			Radius:         8,
			WidthSegments:  500,
			HeightSegments: 500,
			PointSize:      0.04,
			MinColor:       "#FF5733",
			MaxColor:       "#FFFFFF",
			CountryColor:   "#00FF00",
			RotationSpeed:  0.0001,
			TimeScale:      0.001,
		},
		Camera: CameraSettings{
			FOV:           75,
			Near:          0.1,
			Far:           2000,
			Distance:      15,
			DampingFactor: 0.05,
		},
		Textures: TextureSettings{
			Shape:   "assets/circle.png",
			Alpha:   "assets/earth-spec.jpeg",
			Color:   "assets/earth-spec-color-map.png",
			MaxSize: 4096,
		},
		Snapshot: SnapshotSettings{
			Supersample: 2,
		},
	}
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error.
func Load(path string) (*Settings, error) {
	settings := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("No %s found, using defaults\n", path)
			return settings, nil
		}
		return nil, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("error parsing %s: %v", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %v", path, err)
	}

	fmt.Printf("Loaded settings: %dx%d segments (~%d points)\n",
		settings.Scene.WidthSegments,
		settings.Scene.HeightSegments,
		getApproximatePointCount(settings.Scene.WidthSegments, settings.Scene.HeightSegments))

	return settings, nil
}

// Validate rejects settings the scene cannot be built from
func (s *Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d", s.Window.Width, s.Window.Height)
	}
	if s.Scene.Radius <= 0 {
		return fmt.Errorf("scene radius %v", s.Scene.Radius)
	}
	if s.Scene.WidthSegments < 3 || s.Scene.HeightSegments < 2 {
		return fmt.Errorf("scene segments %dx%d", s.Scene.WidthSegments, s.Scene.HeightSegments)
	}
	for name, hex := range map[string]string{
		"minColor":     s.Scene.MinColor,
		"maxColor":     s.Scene.MaxColor,
		"countryColor": s.Scene.CountryColor,
	} {
		if !validHex(hex) {
			return fmt.Errorf("%s %q is not a hex color", name, hex)
		}
	}
	if s.Camera.FOV <= 0 || s.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov %v", s.Camera.FOV)
	}
	if s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near {
		return fmt.Errorf("camera clip range %v..%v", s.Camera.Near, s.Camera.Far)
	}
	if s.Snapshot.Supersample < 1 {
		return fmt.Errorf("snapshot supersample %d", s.Snapshot.Supersample)
	}
	return nil
}

// SceneOptions converts the settings into core scene options
func (s *Settings) SceneOptions() core.SceneOptions {
	return core.SceneOptions{
		Radius:         s.Scene.Radius,
		WidthSegments:  s.Scene.WidthSegments,
		HeightSegments: s.Scene.HeightSegments,
		PointSize:      s.Scene.PointSize,
		MinColor:       ParseColor(s.Scene.MinColor),
		MaxColor:       ParseColor(s.Scene.MaxColor),
		CountryColor:   ParseColor(s.Scene.CountryColor),
		FOV:            s.Camera.FOV,
		Near:           s.Camera.Near,
		Far:            s.Camera.Far,
		CameraDistance: s.Camera.Distance,
		EnableDamping:  s.Camera.EnableDamping,
		DampingFactor:  s.Camera.DampingFactor,
	}
}

// ParseColor converts "#RRGGBB" (or "#RGB") to 0..1 rgb, each channel byte/255
func ParseColor(hex string) mgl32.Vec3 {
	c := fauxgl.HexColor(hex)
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}

func validHex(x string) bool {
	x = strings.TrimPrefix(x, "#")
	switch len(x) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range x {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func getApproximatePointCount(widthSegments, heightSegments int) int {
	// half the vertices are thinned out by the alternating vertex IDs
	return (widthSegments + 1) * (heightSegments + 1) / 2
}
