package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheRayOfSeasons/tech-sharing-globe/core"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), settings)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeSettings(t, `{
		"window": {"width": 800, "height": 600},
		"scene": {"seed": 99, "countryColor": "#0000FF"},
		"server": {"addr": "localhost:9000"}
	}`)

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, settings.Window.Width)
	assert.Equal(t, 600, settings.Window.Height)
	assert.Equal(t, "Particle Globe", settings.Window.Title)
	assert.Equal(t, int64(99), settings.Scene.Seed)
	assert.Equal(t, 500, settings.Scene.WidthSegments)
	assert.Equal(t, "localhost:9000", settings.Server.Addr)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, settings.SceneOptions().CountryColor)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `{"window": `},
		{"unknown key", `{"window": {"fullscreen": true}}`},
		{"bad color", `{"scene": {"minColor": "orange"}}`},
		{"bad size", `{"window": {"width": 0}}`},
		{"bad clip", `{"camera": {"near": 10, "far": 1}}`},
		{"bad segments", `{"scene": {"widthSegments": 1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSettings(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestSceneOptionsMatchCoreDefaults(t *testing.T) {
	got := Default().SceneOptions()
	want := core.DefaultSceneOptions()

	assert.Equal(t, want.Radius, got.Radius)
	assert.Equal(t, want.WidthSegments, got.WidthSegments)
	assert.Equal(t, want.HeightSegments, got.HeightSegments)
	assert.Equal(t, want.PointSize, got.PointSize)
	assert.Equal(t, want.FOV, got.FOV)
	assert.Equal(t, want.CameraDistance, got.CameraDistance)
	assert.True(t, want.MinColor.ApproxEqualThreshold(got.MinColor, 1e-6))
	assert.True(t, want.MaxColor.ApproxEqualThreshold(got.MaxColor, 1e-6))
	assert.True(t, want.CountryColor.ApproxEqualThreshold(got.CountryColor, 1e-6))
}

func TestParseColor(t *testing.T) {
	c := ParseColor("#FF5733")
	assert.InDelta(t, 1.0, c[0], 1e-6)
	assert.InDelta(t, 0x57/255.0, c[1], 1e-6)
	assert.InDelta(t, 0x33/255.0, c[2], 1e-6)
}
