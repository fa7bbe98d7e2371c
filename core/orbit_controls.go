package core

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PointerAction is what a held pointer button does while dragging
type PointerAction int

const (
	PointerNone PointerAction = iota
	PointerRotate
	PointerDolly
	PointerPan
)

const polarEpsilon = 1e-6

// OrbitControls moves a camera on a sphere around Target from pointer drags
// and wheel steps. Input only accumulates deltas; Update applies them.
type OrbitControls struct {
	camera *PerspectiveCamera

	Target mgl32.Vec3

	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32
	MaxPolarAngle float32

	EnableDamping bool
	DampingFactor float32

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32

	// accumulated input
	deltaTheta float32
	deltaPhi   float32
	scale      float32
	panOffset  mgl32.Vec3

	action     PointerAction
	lastX      float64
	lastY      float64
	viewHeight float32
}

// NewOrbitControls binds a controller to camera with unclamped defaults
func NewOrbitControls(camera *PerspectiveCamera) *OrbitControls {
	oc := &OrbitControls{
		camera:        camera,
		MinDistance:   0,
		MaxDistance:   float32(math.Inf(1)),
		MinPolarAngle: 0,
		MaxPolarAngle: math32.Pi,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		scale:         1,
		viewHeight:    1,
	}
	camera.LookAt(oc.Target)
	return oc
}

// SetViewHeight records the height in pixels of the element the pointer
// moves over; drags are measured relative to it.
func (oc *OrbitControls) SetViewHeight(height int) {
	if height > 0 {
		oc.viewHeight = float32(height)
	}
}

// PointerDown starts a drag at (x, y)
func (oc *OrbitControls) PointerDown(action PointerAction, x, y float64) {
	oc.action = action
	oc.lastX, oc.lastY = x, y
}

// PointerUp ends the current drag
func (oc *OrbitControls) PointerUp() {
	oc.action = PointerNone
}

// Dragging reports whether a button is held
func (oc *OrbitControls) Dragging() bool {
	return oc.action != PointerNone
}

// PointerMove feeds a cursor position; it only has an effect while dragging
func (oc *OrbitControls) PointerMove(x, y float64) {
	if oc.action == PointerNone {
		return
	}
	dx := float32(x - oc.lastX)
	dy := float32(y - oc.lastY)
	oc.lastX, oc.lastY = x, y

	switch oc.action {
	case PointerRotate:
		oc.Rotate(dx, dy)
	case PointerDolly:
		if dy > 0 {
			oc.DollyOut(oc.zoomScale())
		} else if dy < 0 {
			oc.DollyIn(oc.zoomScale())
		}
	case PointerPan:
		oc.Pan(dx, dy)
	}
}

// Wheel applies one scroll step. Positive yoff scrolls up, which zooms in.
func (oc *OrbitControls) Wheel(yoff float64) {
	if yoff > 0 {
		oc.DollyIn(oc.zoomScale())
	} else if yoff < 0 {
		oc.DollyOut(oc.zoomScale())
	}
}

// Rotate queues a rotation from a drag of (dx, dy) pixels. A drag across the
// full view height turns the camera a full circle.
func (oc *OrbitControls) Rotate(dx, dy float32) {
	oc.deltaTheta -= 2 * math32.Pi * dx / oc.viewHeight * oc.RotateSpeed
	oc.deltaPhi -= 2 * math32.Pi * dy / oc.viewHeight * oc.RotateSpeed
}

// DollyIn moves the camera towards the target by factor s (< 1)
func (oc *OrbitControls) DollyIn(s float32) {
	oc.scale *= s
}

// DollyOut moves the camera away from the target by factor 1/s
func (oc *OrbitControls) DollyOut(s float32) {
	oc.scale /= s
}

// Pan queues a screen-space translation of camera and target
func (oc *OrbitControls) Pan(dx, dy float32) {
	offset := oc.camera.Position.Sub(oc.Target)
	targetDistance := offset.Len() * math32.Tan(mgl32.DegToRad(oc.camera.FOV)/2)

	right, up := oc.camera.Axes()
	left := right.Mul(-2 * dx * targetDistance / oc.viewHeight * oc.PanSpeed)
	upward := up.Mul(2 * dy * targetDistance / oc.viewHeight * oc.PanSpeed)
	oc.panOffset = oc.panOffset.Add(left).Add(upward)
}

func (oc *OrbitControls) zoomScale() float32 {
	return math32.Pow(0.95, oc.ZoomSpeed)
}

// Update applies the queued input to the camera and reports whether it moved.
// With damping on, only a fraction of the pending motion is applied per call
// and the rest decays over following frames.
func (oc *OrbitControls) Update() bool {
	offset := oc.camera.Position.Sub(oc.Target)

	radius := offset.Len()
	var theta, phi float32
	if radius > 0 {
		theta = math32.Atan2(offset.X(), offset.Z())
		phi = math32.Acos(mgl32.Clamp(offset.Y()/radius, -1, 1))
	}

	factor := float32(1)
	if oc.EnableDamping {
		factor = oc.DampingFactor
	}

	theta += oc.deltaTheta * factor
	phi += oc.deltaPhi * factor

	phi = mgl32.Clamp(phi, oc.MinPolarAngle, oc.MaxPolarAngle)
	phi = mgl32.Clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)

	radius *= oc.scale
	radius = float32(math.Max(float64(oc.MinDistance), math.Min(float64(oc.MaxDistance), float64(radius))))

	oc.Target = oc.Target.Add(oc.panOffset.Mul(factor))

	sinPhi := math32.Sin(phi)
	offset = mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	}

	previous := oc.camera.Position
	oc.camera.Position = oc.Target.Add(offset)
	oc.camera.LookAt(oc.Target)

	if oc.EnableDamping {
		oc.deltaTheta *= 1 - oc.DampingFactor
		oc.deltaPhi *= 1 - oc.DampingFactor
		oc.panOffset = oc.panOffset.Mul(1 - oc.DampingFactor)
	} else {
		oc.deltaTheta = 0
		oc.deltaPhi = 0
		oc.panOffset = mgl32.Vec3{}
	}
	oc.scale = 1

	return previous.Sub(oc.camera.Position).Len() > 1e-4
}
