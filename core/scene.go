package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SceneOptions are the fixed parameters of the globe scene
type SceneOptions struct {
	Radius         float32
	WidthSegments  int
	HeightSegments int

	PointSize    float32
	MinColor     mgl32.Vec3
	MaxColor     mgl32.Vec3
	CountryColor mgl32.Vec3

	FOV            float32 // degrees
	Near           float32
	Far            float32
	CameraDistance float32
	EnableDamping  bool
	DampingFactor  float32
}

// DefaultSceneOptions returns the stock globe: radius 8, 500x500 segments,
// camera 15 units out on +Z with a 75 degree field of view.
func DefaultSceneOptions() SceneOptions {
	return SceneOptions{
		Radius:         8,
		WidthSegments:  500,
		HeightSegments: 500,
		PointSize:      0.04,
		MinColor:       mgl32.Vec3{1, 0x57 / 255.0, 0x33 / 255.0},
		MaxColor:       mgl32.Vec3{1, 1, 1},
		CountryColor:   mgl32.Vec3{0, 1, 0},
		FOV:            75,
		Near:           0.1,
		Far:            2000,
		CameraDistance: 15,
		DampingFactor:  0.05,
	}
}

// Scene is the complete render state of the globe
type Scene struct {
	Cloud    *PointCloud
	Params   FrameParams
	Masks    Masks
	Camera   *PerspectiveCamera
	Controls *OrbitControls

	// RotationY is the globe's rotation about its vertical axis, in radians
	RotationY float32
}

// NewScene builds the point cloud, camera and controller for a render
// surface of width x height pixels. Masks default to "draw everything";
// the caller replaces them with loaded textures.
func NewScene(width, height int, opts SceneOptions, rng RandomSource) *Scene {
	cloud := NewPointCloud(opts.Radius, opts.WidthSegments, opts.HeightSegments, rng)

	camera := NewPerspectiveCamera(opts.FOV, aspect(width, height), opts.Near, opts.Far)
	camera.Position = mgl32.Vec3{0, 0, opts.CameraDistance}

	controls := NewOrbitControls(camera)
	controls.EnableDamping = opts.EnableDamping
	controls.DampingFactor = opts.DampingFactor
	controls.SetViewHeight(height)

	return &Scene{
		Cloud: cloud,
		Params: FrameParams{
			MinColor:     opts.MinColor,
			MaxColor:     opts.MaxColor,
			CountryColor: opts.CountryColor,
			PointSize:    opts.PointSize,
			Scale:        float32(height),
		},
		Masks: Masks{
			Shape: Solid(mgl32.Vec4{1, 1, 1, 1}),
			Alpha: Solid(mgl32.Vec4{0, 0, 0, 1}),
			Color: Solid(mgl32.Vec4{0, 0, 0, 1}),
		},
		Camera:   camera,
		Controls: controls,
	}
}

// Model returns the globe's model matrix
func (s *Scene) Model() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(s.RotationY)
}

// ModelView returns view * model for the current camera
func (s *Scene) ModelView() mgl32.Mat4 {
	return s.Camera.View().Mul4(s.Model())
}

func aspect(width, height int) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
