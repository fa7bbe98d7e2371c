package opengl

import (
	"fmt"
	"math"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/TheRayOfSeasons/tech-sharing-globe/config"
	"github.com/TheRayOfSeasons/tech-sharing-globe/core"
	"github.com/TheRayOfSeasons/tech-sharing-globe/rendering/opengl/shaders"
	"github.com/TheRayOfSeasons/tech-sharing-globe/rendering/textures"
)

// GlobeRenderer draws the particle globe into a glfw window
type GlobeRenderer struct {
	window *glfw.Window

	// Shader program
	pointsProgram uint32
	uniforms      map[string]int32

	// Point cloud
	pointsVAO   uint32
	pointsVBO   uint32
	pointsCount int32

	// Mask textures, indexed by texture unit
	maskTextures [3]uint32

	// Input targets
	scene    *core.Scene
	controls *core.OrbitControls
	pressX   float64
	pressY   float64

	// OnResize is called with the new framebuffer size
	OnResize func(width, height int)
}

var uniformNames = []string{
	"modelViewMatrix", "projectionMatrix", "uSize", "uScale",
	"uTime", "uMinColor", "uMaxColor", "uCountryColor",
	"uShape", "uAlphaMap", "uColorMap",
}

// NewGlobeRenderer opens the window and compiles the globe program
func NewGlobeRenderer(settings config.WindowSettings) (*GlobeRenderer, error) {
	runtime.LockOSThread()

	// Initialize GLFW
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// Configure OpenGL context
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	// Create window
	window, err := glfw.CreateWindow(settings.Width, settings.Height, settings.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %v", err)
	}

	window.MakeContextCurrent()

	// Frames are paced by the display refresh
	if settings.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %v", err)
	}

	// Print OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Println("OpenGL version:", version)

	r := &GlobeRenderer{
		window:   window,
		uniforms: make(map[string]int32),
	}

	// Setup OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.BLEND)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)

	program, err := shaders.CreateGlobePointsProgram()
	if err != nil {
		r.Terminate()
		return nil, fmt.Errorf("failed to compile globe shaders: %v", err)
	}
	r.pointsProgram = program
	fmt.Println("✅ Globe point shaders compiled successfully")

	for _, name := range uniformNames {
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		if loc < 0 {
			fmt.Printf("WARNING: %s uniform not found in shader!\n", name)
		}
		r.uniforms[name] = loc
	}

	// Setup callbacks
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		r.onResize(width, height)
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		r.onKey(key, scancode, action, mods)
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		r.onScroll(xoff, yoff)
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		r.onMouseButton(button, action, mods)
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		r.onMouseMove(xpos, ypos)
	})

	return r, nil
}

// FramebufferSize returns the drawable size in pixels
func (r *GlobeRenderer) FramebufferSize() (width, height int) {
	return r.window.GetFramebufferSize()
}

// CreateBuffers uploads the point cloud and binds the orbit controller to
// pointer input.
func (r *GlobeRenderer) CreateBuffers(scene *core.Scene) {
	data := scene.Cloud.Interleaved()
	const stride = 7 * 4

	gl.GenVertexArrays(1, &r.pointsVAO)
	gl.GenBuffers(1, &r.pointsVBO)

	gl.BindVertexArray(r.pointsVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.pointsVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(shaders.PositionLocation, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(shaders.PositionLocation)
	gl.VertexAttribPointerWithOffset(shaders.UVLocation, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(shaders.UVLocation)
	gl.VertexAttribPointerWithOffset(shaders.VertexIDLocation, 1, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(shaders.VertexIDLocation)
	gl.VertexAttribPointerWithOffset(shaders.LightFactorLocation, 1, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(shaders.LightFactorLocation)

	gl.BindVertexArray(0)

	r.pointsCount = int32(scene.Cloud.Len())
	r.scene = scene
	r.controls = scene.Controls
}

// UploadMasks creates the three mask textures
func (r *GlobeRenderer) UploadMasks(shape, alpha, color *textures.Mask) {
	r.maskTextures[shaders.ShapeUnit] = uploadMask(shape, shaders.ShapeUnit)
	r.maskTextures[shaders.AlphaUnit] = uploadMask(alpha, shaders.AlphaUnit)
	r.maskTextures[shaders.ColorUnit] = uploadMask(color, shaders.ColorUnit)
}

// Render performs one frame of globe rendering
func (r *GlobeRenderer) Render(scene *core.Scene) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	program := r.pointsProgram
	gl.UseProgram(program)

	// Set uniforms
	modelView := scene.ModelView()
	p := &scene.Params
	gl.UniformMatrix4fv(r.uniforms["modelViewMatrix"], 1, false, &modelView[0])
	gl.UniformMatrix4fv(r.uniforms["projectionMatrix"], 1, false, &scene.Camera.Projection[0])
	gl.Uniform1f(r.uniforms["uSize"], p.PointSize)
	gl.Uniform1f(r.uniforms["uScale"], p.Scale)
	gl.Uniform1f(r.uniforms["uTime"], p.Time)
	gl.Uniform3fv(r.uniforms["uMinColor"], 1, &p.MinColor[0])
	gl.Uniform3fv(r.uniforms["uMaxColor"], 1, &p.MaxColor[0])
	gl.Uniform3fv(r.uniforms["uCountryColor"], 1, &p.CountryColor[0])

	// Bind masks
	for unit, tex := range r.maskTextures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}
	gl.Uniform1i(r.uniforms["uShape"], shaders.ShapeUnit)
	gl.Uniform1i(r.uniforms["uAlphaMap"], shaders.AlphaUnit)
	gl.Uniform1i(r.uniforms["uColorMap"], shaders.ColorUnit)

	gl.BindVertexArray(r.pointsVAO)
	gl.DrawArrays(gl.POINTS, 0, r.pointsCount)
	gl.BindVertexArray(0)

	// Check for errors after draw
	if err := gl.GetError(); err != gl.NO_ERROR {
		fmt.Printf("OpenGL error after draw: 0x%x\n", err)
	}

	r.window.SwapBuffers()
}

// SetSize resizes the render target
func (r *GlobeRenderer) SetSize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Event handlers
func (r *GlobeRenderer) onResize(width, height int) {
	if r.OnResize != nil {
		r.OnResize(width, height)
	}
}

func (r *GlobeRenderer) onKey(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape:
		r.window.SetShouldClose(true)
	}
}

func (r *GlobeRenderer) onScroll(xoff, yoff float64) {
	if r.controls != nil {
		r.controls.Wheel(yoff)
	}
}

// onMouseButton maps buttons to orbit actions: left rotates, middle dollies,
// right pans. A left click without a drag picks the point under the cursor.
func (r *GlobeRenderer) onMouseButton(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if r.controls == nil {
		return
	}

	x, y := r.window.GetCursorPos()
	if action == glfw.Release {
		r.controls.PointerUp()
		if button == glfw.MouseButtonLeft && math.Abs(x-r.pressX) <= clickSlop && math.Abs(y-r.pressY) <= clickSlop {
			r.handleClick(x, y)
		}
		return
	}
	if action != glfw.Press {
		return
	}

	r.pressX, r.pressY = x, y
	switch button {
	case glfw.MouseButtonLeft:
		r.controls.PointerDown(core.PointerRotate, x, y)
	case glfw.MouseButtonMiddle:
		r.controls.PointerDown(core.PointerDolly, x, y)
	case glfw.MouseButtonRight:
		r.controls.PointerDown(core.PointerPan, x, y)
	}
}

// onMouseMove handles mouse movement
func (r *GlobeRenderer) onMouseMove(xpos, ypos float64) {
	if r.controls != nil {
		r.controls.PointerMove(xpos, ypos)
	}
}

// ShouldClose returns true if the window should close
func (r *GlobeRenderer) ShouldClose() bool {
	return r.window.ShouldClose()
}

// PollEvents processes window events
func (r *GlobeRenderer) PollEvents() {
	glfw.PollEvents()
}

// Terminate cleans up OpenGL resources
func (r *GlobeRenderer) Terminate() {
	if r.pointsProgram != 0 {
		gl.DeleteProgram(r.pointsProgram)
	}
	if r.pointsVAO != 0 {
		gl.DeleteVertexArrays(1, &r.pointsVAO)
		gl.DeleteBuffers(1, &r.pointsVBO)
	}
	for _, tex := range r.maskTextures {
		if tex != 0 {
			gl.DeleteTextures(1, &tex)
		}
	}
	r.window.Destroy()
	glfw.Terminate()
}
