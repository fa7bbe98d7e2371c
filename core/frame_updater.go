package core

import (
	"errors"
	"time"
)

var (
	ErrAlreadyRunning = errors.New("frame updater already running")
	ErrNotRunning     = errors.New("frame updater not started")
)

// UpdaterState is the lifecycle of a FrameUpdater
type UpdaterState int

const (
	Idle UpdaterState = iota
	Running
)

func (s UpdaterState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	}
	return "unknown"
}

// Renderer draws a scene and owns the render target
type Renderer interface {
	Render(scene *Scene)
	SetSize(width, height int)
}

// Observer receives a snapshot after every tick and resize. Publish must not block.
type Observer interface {
	Publish(state FrameState)
}

// FrameState is a copy of the per-frame values, safe to hand to other goroutines
type FrameState struct {
	Frame          uint64     `json:"frame"`
	ElapsedMs      float64    `json:"elapsedMs"`
	Time           float32    `json:"time"`
	RotationY      float32    `json:"rotationY"`
	Scale          float32    `json:"scale"`
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	Aspect         float32    `json:"aspect"`
	CameraPosition [3]float32 `json:"cameraPosition"`
	SubCamera      Geographic `json:"subCamera"`
}

// FrameUpdater advances the scene once per displayed frame and reacts to
// surface resizes. It is not safe for concurrent use; every call is expected
// on the render thread.
type FrameUpdater struct {
	scene    *Scene
	renderer Renderer

	// RotationSpeed is radians of globe rotation per elapsed millisecond
	RotationSpeed float32
	// TimeScale converts elapsed milliseconds to the shader time in seconds
	TimeScale float32

	state     UpdaterState
	frame     uint64
	elapsed   time.Duration
	width     int
	height    int
	observers []Observer
}

// NewFrameUpdater creates an idle updater for scene drawn by renderer
func NewFrameUpdater(scene *Scene, renderer Renderer, width, height int) *FrameUpdater {
	return &FrameUpdater{
		scene:         scene,
		renderer:      renderer,
		RotationSpeed: 0.0001,
		TimeScale:     0.001,
		width:         width,
		height:        height,
	}
}

// AddObserver registers o for frame snapshots
func (u *FrameUpdater) AddObserver(o Observer) {
	u.observers = append(u.observers, o)
}

// State returns the current lifecycle state
func (u *FrameUpdater) State() UpdaterState {
	return u.state
}

// Start moves the updater from Idle to Running. There is no way back.
func (u *FrameUpdater) Start() error {
	if u.state == Running {
		return ErrAlreadyRunning
	}
	u.state = Running
	return nil
}

// Tick advances to elapsed (time since start) and renders one frame.
// Rotation and shader time are pure functions of elapsed, so dropped or
// delayed frames do not accumulate drift.
func (u *FrameUpdater) Tick(elapsed time.Duration) error {
	if u.state != Running {
		return ErrNotRunning
	}

	ms := float32(elapsed.Seconds() * 1000)
	u.elapsed = elapsed
	u.scene.RotationY = ms * u.RotationSpeed
	u.scene.Params.Time = ms * u.TimeScale
	u.scene.Controls.Update()

	u.renderer.Render(u.scene)
	u.frame++
	u.notify()
	return nil
}

// Resize handles a new render surface size. Zero-area sizes (minimized
// windows) are ignored.
func (u *FrameUpdater) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	u.width, u.height = width, height

	camera := u.scene.Camera
	camera.Aspect = aspect(width, height)
	camera.UpdateProjectionMatrix()

	u.renderer.SetSize(width, height)
	u.scene.Controls.SetViewHeight(height)
	u.scene.Params.Scale = float32(height)
	u.notify()
}

// Size returns the current render surface size
func (u *FrameUpdater) Size() (width, height int) {
	return u.width, u.height
}

// Snapshot returns the current frame state
func (u *FrameUpdater) Snapshot() FrameState {
	pos := u.scene.Camera.Position
	return FrameState{
		Frame:          u.frame,
		ElapsedMs:      u.elapsed.Seconds() * 1000,
		Time:           u.scene.Params.Time,
		RotationY:      u.scene.RotationY,
		Scale:          u.scene.Params.Scale,
		Width:          u.width,
		Height:         u.height,
		Aspect:         u.scene.Camera.Aspect,
		CameraPosition: [3]float32{pos[0], pos[1], pos[2]},
		SubCamera:      u.scene.SubCameraPoint(),
	}
}

func (u *FrameUpdater) notify() {
	if len(u.observers) == 0 {
		return
	}
	state := u.Snapshot()
	for _, o := range u.observers {
		o.Publish(state)
	}
}
